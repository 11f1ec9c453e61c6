// Package testutil holds fixture helpers shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// FixtureRoot returns the absolute path of testdata/plugins.
func FixtureRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok, "locating fixture root")
	return filepath.Join(filepath.Dir(file), "..", "..", "testdata", "plugins")
}

// CopyFixture copies testdata/plugins/<name> into a fresh temp directory and
// returns the copy's path. The copy keeps the fixture's directory name so
// the plugin ID check still applies.
func CopyFixture(t *testing.T, name string) string {
	t.Helper()
	src := filepath.Join(FixtureRoot(t), name)
	dst := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(dst, 0755))

	entries, err := os.ReadDir(src)
	require.NoError(t, err)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(src, e.Name()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dst, e.Name()), data, 0644))
	}
	return dst
}

// WriteFiles writes name->content pairs into dir.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

// RemoveFiles deletes the named files from dir.
func RemoveFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.Remove(filepath.Join(dir, name)))
	}
}
