package pluginfs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ff6editor/pluginvet/internal/adapters/outbound/pluginfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile_CreatesAndOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checksum.sha256")
	fsys := pluginfs.New()

	require.NoError(t, fsys.WriteFile(path, []byte("first")))
	require.NoError(t, fsys.WriteFile(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestWriteFile_LeavesNoTempOrLockFiles(t *testing.T) {
	dir := t.TempDir()
	fsys := pluginfs.New()
	require.NoError(t, fsys.WriteFile(filepath.Join(dir, "checksum.sha256"), []byte("abc")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "checksum.sha256", entries[0].Name())
}

func TestWriteFile_MissingDirectoryFails(t *testing.T) {
	fsys := pluginfs.New()
	err := fsys.WriteFile(filepath.Join(t.TempDir(), "nope", "checksum.sha256"), []byte("abc"))
	assert.Error(t, err)
}

func TestStatAndReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plugin.lua")
	require.NoError(t, os.WriteFile(path, []byte("function main() end"), 0644))

	fsys := pluginfs.New()
	info, err := fsys.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(19), info.Size())

	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "function main() end", string(data))

	entries, err := fsys.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
