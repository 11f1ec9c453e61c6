package config_test

import (
	"os"
	"path/filepath"
	"testing"

	appconfig "github.com/ff6editor/pluginvet/internal/adapters/outbound/config"
	"github.com/ff6editor/pluginvet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, appconfig.FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	loader := appconfig.New()

	cfg, err := loader.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_MissingExplicitFileReturnsDefaults(t *testing.T) {
	cfg, err := appconfig.New().Load(filepath.Join(t.TempDir(), "custom.yaml"))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
log_level: debug
strict: true
history_db: .pluginvet/history.db
size_limits:
  plugin.lua: 5242880
  icon.png: 65536
forbidden_patterns:
  - name: network access
    pattern: '\bsocket\b'
`)

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Strict)
	assert.Equal(t, ".pluginvet/history.db", cfg.HistoryDB)
	assert.Equal(t, int64(5242880), cfg.SizeLimits["plugin.lua"])
	require.Len(t, cfg.ForbiddenPatterns, 1)
	assert.Equal(t, `\bsocket\b`, cfg.ForbiddenPatterns[0].Pattern)
}

func TestYAMLLoader_ExplicitFilePath(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "strict: true\n")

	cfg, err := appconfig.New().Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "info", cfg.LogLevel, "unset fields keep defaults")
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{{{invalid yaml`)

	_, err := appconfig.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .pluginvet.yaml")
}

func TestYAMLLoader_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"log level", "log_level: chatty\n", "unknown log_level"},
		{"negative limit", "size_limits:\n  plugin.lua: -1\n", "must be > 0"},
		{"bad pattern", "forbidden_patterns:\n  - name: broken\n    pattern: '('\n", "broken"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := appconfig.New().Load(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid .pluginvet.yaml")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
