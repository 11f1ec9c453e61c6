package check

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ff6editor/pluginvet/internal/domain"
)

var changelogVersionPattern = regexp.MustCompile(`\[[\p{Nd}.]+\]`)

// Docs checks README.md for the required sections and CHANGELOG.md for at
// least one bracketed version entry. Either file being absent skips its half.
func Docs(t Target) []domain.CheckResult {
	const pass = domain.PassDocs
	var results []domain.CheckResult

	if t.present(domain.ReadmeFile) {
		content, err := t.readText(domain.ReadmeFile)
		if err != nil {
			results = append(results, domain.Fail(pass, fmt.Sprintf("Error reading %s: %v", domain.ReadmeFile, err)))
		} else {
			missing := MissingSections(content, t.Rules.ReadmeSections)
			if len(missing) == 0 {
				results = append(results, domain.Warn(pass, true, domain.ReadmeFile+" has required sections"))
			} else {
				results = append(results, domain.Warn(pass, false,
					fmt.Sprintf("%s missing sections: %s", domain.ReadmeFile, strings.Join(missing, ", "))))
			}
		}
	}

	if t.present(domain.ChangelogFile) {
		content, err := t.readText(domain.ChangelogFile)
		if err != nil {
			results = append(results, domain.Fail(pass, fmt.Sprintf("Error reading %s: %v", domain.ChangelogFile, err)))
		} else {
			ok := changelogVersionPattern.MatchString(content)
			results = append(results, domain.Warn(pass, ok, pick(ok,
				domain.ChangelogFile+" has version entries",
				domain.ChangelogFile+" missing version entries")))
		}
	}

	return results
}

// MissingSections returns the sections whose names do not occur anywhere in
// content, compared case-insensitively.
func MissingSections(content string, sections []string) []string {
	lower := strings.ToLower(content)
	var missing []string
	for _, s := range sections {
		if !strings.Contains(lower, strings.ToLower(s)) {
			missing = append(missing, s)
		}
	}
	return missing
}
