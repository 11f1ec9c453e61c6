package check

import (
	"fmt"

	"github.com/ff6editor/pluginvet/internal/domain"
)

// Security scans plugin.lua for forbidden patterns. It reports one failure per
// distinct pattern that matched, or a single pass when nothing matched. This
// is a deny-list over raw text; obfuscated access is not detected.
func Security(t Target) []domain.CheckResult {
	const pass = domain.PassSecurity
	if !t.present(domain.ScriptFile) {
		return nil
	}

	content, err := t.readText(domain.ScriptFile)
	if err != nil {
		return []domain.CheckResult{domain.Fail(pass, fmt.Sprintf("Error checking security: %v", err))}
	}

	var results []domain.CheckResult
	for _, perr := range t.patternErrs {
		results = append(results, domain.Fail(pass, fmt.Sprintf("Invalid forbidden pattern: %v", perr)))
	}

	violations := ForbiddenMatches(t.patterns, content)
	if len(violations) == 0 {
		return append(results, domain.Pass(pass, "No forbidden patterns detected"))
	}
	for _, v := range violations {
		results = append(results, domain.Fail(pass,
			fmt.Sprintf("Forbidden pattern found: %s (%s)", v.Pattern, v.Name)))
	}
	return results
}

// ForbiddenMatches returns the patterns that match content at least once,
// in table order.
func ForbiddenMatches(patterns []domain.CompiledPattern, content string) []domain.CompiledPattern {
	var matched []domain.CompiledPattern
	for _, p := range patterns {
		if p.Re.MatchString(content) {
			matched = append(matched, p)
		}
	}
	return matched
}
