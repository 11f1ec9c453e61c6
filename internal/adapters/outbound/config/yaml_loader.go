package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ff6editor/pluginvet/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up inside a directory.
const FileName = ".pluginvet.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .pluginvet.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads the config at path. A directory is searched for .pluginvet.yaml;
// any other path is read as the config file itself. A missing file yields
// DefaultConfig.
func (l *YAMLLoader) Load(path string) (domain.Config, error) {
	file := path
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		file = filepath.Join(path, FileName)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, err
	}

	cfg := domain.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", filepath.Base(file), err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", filepath.Base(file), err)
	}

	return cfg, nil
}
