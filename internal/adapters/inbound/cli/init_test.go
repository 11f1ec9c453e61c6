package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ff6editor/pluginvet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCmd_ScaffoldValidatesCleanly(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "party-tools")

	out, err := execute(t, "init", dir, "--author", "Jane Doe", "--category", "enhancement")
	require.NoError(t, err)
	assert.Contains(t, out, "Created plugin party-tools")

	for _, name := range domain.DefaultRules().RequiredFiles {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	data, err := os.ReadFile(filepath.Join(dir, domain.MetadataFile))
	require.NoError(t, err)
	var meta map[string]any
	require.NoError(t, json.Unmarshal(data, &meta))
	assert.Equal(t, "party-tools", meta["id"])
	assert.Equal(t, "Party Tools", meta["name"])
	assert.Equal(t, "enhancement", meta["category"])

	out, err = execute(t, "validate", dir, "--json", "--strict")
	require.NoError(t, err)

	var run domain.ValidationRun
	require.NoError(t, json.Unmarshal([]byte(out), &run))
	assert.Equal(t, 0, run.Errors)
	assert.Equal(t, 0, run.Warnings)
}

func TestInitCmd_RejectsInvalidID(t *testing.T) {
	for _, name := range []string{"Bad_Name", "trailing-", "two--hyphens"} {
		_, err := execute(t, "init", filepath.Join(t.TempDir(), name))
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), "invalid plugin id")
	}
}

func TestInitCmd_RejectsUnknownCategory(t *testing.T) {
	_, err := execute(t, "init", filepath.Join(t.TempDir(), "x"), "--category", "games")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestInitCmd_FailsIfExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "existing")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ReadmeFile), []byte("keep me"), 0644))

	_, err := execute(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	data, err := os.ReadFile(filepath.Join(dir, domain.ReadmeFile))
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data))
}

func TestInitCmd_ForceOverwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "existing")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ReadmeFile), []byte("old"), 0644))

	_, err := execute(t, "init", dir, "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, domain.ReadmeFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "## Installation")
}
