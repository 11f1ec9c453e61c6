package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ValidLogLevels enumerates accepted log_level values.
var ValidLogLevels = []string{"trace", "debug", "info", "warn", "warning", "error"}

// Config holds validator configuration loaded from .pluginvet.yaml.
type Config struct {
	LogLevel          string           `yaml:"log_level"          json:"log_level,omitempty"`
	Strict            bool             `yaml:"strict"             json:"strict,omitempty"`
	HistoryDB         string           `yaml:"history_db"         json:"history_db,omitempty"`
	MetricsFile       string           `yaml:"metrics_file"       json:"metrics_file,omitempty"`
	SizeLimits        map[string]int64 `yaml:"size_limits"        json:"size_limits,omitempty"`
	ForbiddenPatterns []PatternRule    `yaml:"forbidden_patterns" json:"forbidden_patterns,omitempty"`
}

// DefaultConfig returns a config that leaves the default rules untouched.
func DefaultConfig() Config {
	return Config{LogLevel: "info"}
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	if c.LogLevel != "" && !contains(ValidLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("unknown log_level %q (valid: %s)", c.LogLevel, strings.Join(ValidLogLevels, ", "))
	}

	for file, limit := range c.SizeLimits {
		if strings.TrimSpace(file) == "" {
			return fmt.Errorf("size_limits has an empty file name")
		}
		if limit <= 0 {
			return fmt.Errorf("size_limits[%q] must be > 0 (got %d)", file, limit)
		}
	}

	for i, p := range c.ForbiddenPatterns {
		if p.Name == "" {
			return fmt.Errorf("forbidden_patterns[%d].name must not be empty", i)
		}
		if p.Pattern == "" {
			return fmt.Errorf("forbidden_patterns[%d].pattern must not be empty", i)
		}
		if _, err := regexp.Compile(p.Pattern); err != nil {
			return fmt.Errorf("forbidden_patterns[%d] (%s): %w", i, p.Name, err)
		}
	}

	return nil
}

// Apply overlays the config on a rule set. Size limits for known files are
// replaced in place and unknown files are appended; extra forbidden patterns
// are appended after the built-in list.
func (c Config) Apply(rules Rules) Rules {
	out := rules
	out.SizeLimits = append([]SizeLimit(nil), rules.SizeLimits...)
	out.ForbiddenPatterns = append([]PatternRule(nil), rules.ForbiddenPatterns...)

	seen := make(map[string]bool, len(out.SizeLimits))
	for i, l := range out.SizeLimits {
		seen[l.File] = true
		if v, ok := c.SizeLimits[l.File]; ok {
			out.SizeLimits[i].MaxBytes = v
		}
	}
	for _, file := range sortedKeys(c.SizeLimits) {
		if !seen[file] {
			out.SizeLimits = append(out.SizeLimits, SizeLimit{File: file, MaxBytes: c.SizeLimits[file]})
		}
	}

	out.ForbiddenPatterns = append(out.ForbiddenPatterns, c.ForbiddenPatterns...)
	return out
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
