// Package check implements the validation passes run against a plugin
// submission directory. Every pass returns its results as values; a pass that
// hits an I/O or decoding problem reports it as a failing result instead of
// returning an error, so one unreadable file never stops later passes.
package check

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"syscall"
	"unicode/utf8"

	"github.com/fatih/camelcase"

	"github.com/ff6editor/pluginvet/internal/domain"
)

// Target is the plugin directory a validation run inspects.
type Target struct {
	Dir   string
	ID    string
	FS    domain.PluginFS
	Rules domain.Rules

	patterns    []domain.CompiledPattern
	patternErrs []error
}

// NewTarget binds a directory to a file system and rule set. The plugin ID
// expected by the metadata pass is the directory's base name.
func NewTarget(dir string, fsys domain.PluginFS, rules domain.Rules) Target {
	patterns, errs := rules.CompilePatterns()
	return Target{
		Dir:         dir,
		ID:          DirID(dir),
		FS:          fsys,
		Rules:       rules,
		patterns:    patterns,
		patternErrs: errs,
	}
}

// DirID returns the last element of dir, resolving "." and similar paths.
func DirID(dir string) string {
	base := filepath.Base(filepath.Clean(dir))
	if base == "." || base == string(filepath.Separator) {
		if abs, err := filepath.Abs(dir); err == nil {
			base = filepath.Base(abs)
		}
	}
	if base == string(filepath.Separator) {
		return ""
	}
	return base
}

func (t Target) path(name string) string {
	return filepath.Join(t.Dir, name)
}

// present reports whether name should be treated as existing. Errors other
// than "does not exist" count as present so the read that follows can report
// them.
func (t Target) present(name string) bool {
	_, err := t.FS.Stat(t.path(name))
	return err == nil || !isNotExist(err)
}

func (t Target) readText(name string) (string, error) {
	data, err := t.FS.ReadFile(t.path(name))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s is not valid UTF-8", name)
	}
	return string(data), nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

// fieldLabel turns a descriptor key such as "longDescription" into
// "Long description".
func fieldLabel(field string) string {
	words := camelcase.Split(field)
	if len(words) == 0 {
		return field
	}
	for i := range words {
		words[i] = strings.ToLower(words[i])
	}
	s := strings.Join(words, " ")
	return strings.ToUpper(s[:1]) + s[1:]
}
