package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Well-known file names inside a plugin submission.
const (
	ScriptFile     = "plugin.lua"
	MetadataFile   = "metadata.json"
	ReadmeFile     = "README.md"
	ChangelogFile  = "CHANGELOG.md"
	LicenseFile    = "LICENSE"
	ChecksumFile   = "checksum.sha256"
	ScreenshotFile = "screenshot.png"
)

const (
	kb = 1024
	mb = 1024 * kb
)

// SizeLimit is a byte ceiling for one file.
type SizeLimit struct {
	File     string `json:"file" yaml:"file"`
	MaxBytes int64  `json:"max_bytes" yaml:"max_bytes"`
}

// PatternRule is a forbidden pattern in plugin scripts.
type PatternRule struct {
	Name    string `json:"name" yaml:"name"`
	Pattern string `json:"pattern" yaml:"pattern"`
}

// LengthBounds is an inclusive [Min, Max] character range.
type LengthBounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether n lies within the bounds.
func (b LengthBounds) Contains(n int) bool { return n >= b.Min && n <= b.Max }

// Rules holds every table the validation passes consult.
type Rules struct {
	RequiredFiles      []string                `json:"required_files"`
	OptionalFiles      []string                `json:"optional_files"` // informational: published with the rules, never checked
	SizeLimits         []SizeLimit             `json:"size_limits"`
	RequiredFields     []string                `json:"required_fields"`
	Categories         []string                `json:"categories"`
	Permissions        []string                `json:"permissions"`
	ForbiddenPatterns  []PatternRule           `json:"forbidden_patterns"`
	MetadataComments   []string                `json:"metadata_comments"`
	ReadmeSections     []string                `json:"readme_sections"`
	FieldLengths       map[string]LengthBounds `json:"field_lengths"`
	TagCount           LengthBounds            `json:"tag_count"`
	ChecksumFile       string                  `json:"checksum_file"`
	ChecksumPrefixSize int                     `json:"checksum_prefix_size"`
}

// DefaultRules returns the registry's submission rules.
func DefaultRules() Rules {
	return Rules{
		RequiredFiles: []string{ScriptFile, MetadataFile, ReadmeFile, ChangelogFile},
		OptionalFiles: []string{LicenseFile, ChecksumFile},
		SizeLimits: []SizeLimit{
			{File: ScriptFile, MaxBytes: 10 * mb},
			{File: MetadataFile, MaxBytes: 100 * kb},
			{File: ReadmeFile, MaxBytes: 1 * mb},
			{File: ChangelogFile, MaxBytes: 500 * kb},
			{File: ScreenshotFile, MaxBytes: 2 * mb},
		},
		RequiredFields: []string{
			"id", "name", "version", "author", "contact", "description",
			"longDescription", "category", "tags", "permissions",
			"minEditorVersion", "homepage",
		},
		Categories:  []string{"utility", "automation", "analysis", "enhancement", "debug"},
		Permissions: []string{"read_save", "write_save", "ui_display", "events"},
		ForbiddenPatterns: []PatternRule{
			{Name: "os module access", Pattern: `\bos\.`},
			{Name: "io module access", Pattern: `\bio\.`},
			{Name: "debug module access", Pattern: `\bdebug\.`},
			{Name: "package module access", Pattern: `\bpackage\.`},
			{Name: "require call", Pattern: `\brequire\b`},
			{Name: "load function", Pattern: `\bload\b`},
			{Name: "loadfile function", Pattern: `\bloadfile\b`},
			{Name: "loadstring function", Pattern: `\bloadstring\b`},
			{Name: "dofile function", Pattern: `\bdofile\b`},
			{Name: "setfenv function", Pattern: `\bsetfenv\b`},
			{Name: "getfenv function", Pattern: `\bgetfenv\b`},
		},
		MetadataComments: []string{"@id:", "@name:", "@version:", "@author:", "@description:", "@permissions:"},
		ReadmeSections:   []string{"Installation", "Usage", "Permissions"},
		FieldLengths: map[string]LengthBounds{
			"description":     {Min: 20, Max: 200},
			"longDescription": {Min: 50, Max: 2000},
		},
		TagCount:           LengthBounds{Min: 1, Max: 5},
		ChecksumFile:       ChecksumFile,
		ChecksumPrefixSize: 16,
	}
}

// IsValidCategory reports whether c is an accepted category.
func (r Rules) IsValidCategory(c string) bool { return contains(r.Categories, c) }

// IsValidPermission reports whether p is an accepted permission.
func (r Rules) IsValidPermission(p string) bool { return contains(r.Permissions, p) }

// CompiledPattern is a PatternRule with its compiled expression.
type CompiledPattern struct {
	PatternRule
	Re *regexp.Regexp
}

// CompilePatterns compiles the forbidden pattern table. Patterns that fail to
// compile are returned separately so callers can report them.
func (r Rules) CompilePatterns() ([]CompiledPattern, []error) {
	compiled := make([]CompiledPattern, 0, len(r.ForbiddenPatterns))
	var errs []error
	for _, p := range r.ForbiddenPatterns {
		// (?m) matches the multiline scan of the registry tooling.
		re, err := regexp.Compile("(?m)" + UnicodeBoundaries(p.Pattern))
		if err != nil {
			errs = append(errs, fmt.Errorf("pattern %q (%s): %w", p.Pattern, p.Name, err))
			continue
		}
		compiled = append(compiled, CompiledPattern{PatternRule: p, Re: re})
	}
	return compiled, errs
}

// Unicode-aware stand-ins for \b at either end of a pattern. RE2's \b only
// knows ASCII word characters, so "años." would otherwise match \bos\.
const (
	leadingBoundary  = `(?:^|[^\p{L}\p{N}_])`
	trailingBoundary = `(?:[^\p{L}\p{N}_]|$)`
)

// UnicodeBoundaries rewrites a leading and a trailing \b so that any Unicode
// letter or digit counts as a word character. Boundaries elsewhere in the
// pattern are left as they are.
func UnicodeBoundaries(pattern string) string {
	out := pattern
	if strings.HasPrefix(out, `\b`) {
		out = leadingBoundary + out[2:]
	}
	if strings.HasSuffix(out, `\b`) && !escapedAt(out, len(out)-2) {
		out = out[:len(out)-2] + trailingBoundary
	}
	return out
}

// escapedAt reports whether the backslash at i is itself escaped by an odd
// run of backslashes before it.
func escapedAt(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
