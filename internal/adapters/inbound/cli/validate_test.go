package cli_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ff6editor/pluginvet/internal/adapters/inbound/cli"
	"github.com/ff6editor/pluginvet/internal/domain"
	"github.com/ff6editor/pluginvet/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCmd_ValidPlugin(t *testing.T) {
	dir := testutil.CopyFixture(t, "stats-display")

	out, err := execute(t, "validate", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "VALIDATION PASSED")
	assert.FileExists(t, filepath.Join(dir, domain.ChecksumFile))
}

func TestValidateCmd_JSON(t *testing.T) {
	dir := testutil.CopyFixture(t, "stats-display")

	out, err := execute(t, "validate", dir, "--json")
	require.NoError(t, err)

	var run domain.ValidationRun
	require.NoError(t, json.Unmarshal([]byte(out), &run))
	assert.True(t, run.Passed)
	assert.Equal(t, "stats-display", run.Report.Plugin)
	assert.NotEmpty(t, run.Report.Results)
}

func TestValidateCmd_FailingPlugin(t *testing.T) {
	dir := testutil.CopyFixture(t, "stats-display")
	testutil.RemoveFiles(t, dir, domain.ReadmeFile)

	out, err := execute(t, "validate", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, cli.ErrValidationFailed))
	assert.Contains(t, out, "VALIDATION FAILED")
	assert.Contains(t, out, "Missing required file: README.md")
}

func TestValidateCmd_Markdown(t *testing.T) {
	dir := testutil.CopyFixture(t, "stats-display")

	out, err := execute(t, "validate", dir, "--markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# stats-display")
	assert.Contains(t, out, "| Status | Severity | Message |")
}

func TestValidateCmd_HTML(t *testing.T) {
	dir := testutil.CopyFixture(t, "stats-display")
	htmlFile := filepath.Join(t.TempDir(), "report.html")

	_, err := execute(t, "validate", dir, "--html", htmlFile)
	require.NoError(t, err)

	data, err := os.ReadFile(htmlFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<table>")
	assert.Contains(t, string(data), "stats-display")
}

func TestValidateCmd_StrictFailsOnWarnings(t *testing.T) {
	dir := testutil.CopyFixture(t, "stats-display")
	testutil.WriteFiles(t, dir, map[string]string{domain.ChangelogFile: "# Changelog\n\nNothing yet.\n"})

	_, err := execute(t, "validate", dir)
	require.NoError(t, err, "warnings alone must not fail a run")

	_, err = execute(t, "validate", dir, "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "warnings in strict mode")
}

func TestValidateCmd_All(t *testing.T) {
	root := t.TempDir()
	good := testutil.CopyFixture(t, "stats-display")
	require.NoError(t, os.Rename(good, filepath.Join(root, "stats-display")))

	bad := filepath.Join(root, "broken-plugin")
	require.NoError(t, os.Mkdir(bad, 0755))
	require.NoError(t, os.Mkdir(filepath.Join(root, ".drafts"), 0755))

	out, err := execute(t, "validate", root, "--all", "--json")
	require.Error(t, err)

	var runs []domain.ValidationRun
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 2)
	assert.Equal(t, "broken-plugin", runs[0].Report.Plugin)
	assert.False(t, runs[0].Passed)
	assert.Equal(t, "stats-display", runs[1].Report.Plugin)
	assert.True(t, runs[1].Passed)
}

func TestValidateCmd_MetricsFile(t *testing.T) {
	dir := testutil.CopyFixture(t, "stats-display")
	metricsFile := filepath.Join(t.TempDir(), "pluginvet.prom")

	_, err := execute(t, "validate", dir, "--metrics-file", metricsFile)
	require.NoError(t, err)

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pluginvet_runs_total")
}

func TestValidateCmd_HistoryDB(t *testing.T) {
	dir := testutil.CopyFixture(t, "stats-display")
	db := filepath.Join(t.TempDir(), "history.db")

	_, err := execute(t, "validate", dir, "--history-db", db)
	require.NoError(t, err)

	out, err := execute(t, "history", "stats-display", "--history-db", db, "--json")
	require.NoError(t, err)

	var entries []domain.HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Passed)
}

func TestValidateCmd_RequiresArgument(t *testing.T) {
	_, err := execute(t, "validate")
	assert.Error(t, err)
}

func TestValidateCmd_WatchWithAllRejected(t *testing.T) {
	_, err := execute(t, "validate", t.TempDir(), "--all", "--watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--watch cannot be combined with --all")
}
