package check_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ff6editor/pluginvet/internal/adapters/outbound/pluginfs"
	"github.com/ff6editor/pluginvet/internal/domain"
	"github.com/ff6editor/pluginvet/internal/domain/check"
	"github.com/ff6editor/pluginvet/internal/testutil"
	"github.com/stretchr/testify/require"
)

func newTarget(dir string) check.Target {
	return check.NewTarget(dir, pluginfs.New(), domain.DefaultRules())
}

// validPlugin returns a fresh copy of the stats-display fixture.
func validPlugin(t *testing.T) string {
	t.Helper()
	return testutil.CopyFixture(t, "stats-display")
}

func failing(results []domain.CheckResult) []domain.CheckResult {
	var out []domain.CheckResult
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}

func messages(results []domain.CheckResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Message
	}
	return out
}

func editDescriptor(t *testing.T, dir string, edit func(d map[string]any)) {
	t.Helper()
	path := filepath.Join(dir, domain.MetadataFile)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var d map[string]any
	require.NoError(t, json.Unmarshal(data, &d))
	edit(d)

	out, err := json.MarshalIndent(d, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, out, 0644))
}

func writeScript(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ScriptFile), []byte(content), 0644))
}

// readOnlyFS fails every write.
type readOnlyFS struct{ *pluginfs.OSFS }

func (readOnlyFS) WriteFile(string, []byte) error { return os.ErrPermission }
