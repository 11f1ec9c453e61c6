package check

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ff6editor/pluginvet/internal/domain"
)

var mainFuncPattern = regexp.MustCompile(`function[\s\x{85}\p{Z}]+main[\s\x{85}\p{Z}]*\(`)

// ScriptSyntax runs shallow structural heuristics over plugin.lua. Counting
// is neither nesting- nor string-aware; this is a smoke test, not a parser.
func ScriptSyntax(t Target) []domain.CheckResult {
	const pass = domain.PassScriptSyntax
	if !t.present(domain.ScriptFile) {
		return nil
	}

	content, err := t.readText(domain.ScriptFile)
	if err != nil {
		return []domain.CheckResult{domain.Fail(pass, fmt.Sprintf("Error reading %s: %v", domain.ScriptFile, err))}
	}

	hasMain := mainFuncPattern.MatchString(content)
	parens := Balanced(content, '(', ')')
	brackets := Balanced(content, '[', ']')
	looksLikeCode := LooksLikeLua(content)

	results := []domain.CheckResult{
		domain.Check(pass, hasMain, pick(hasMain, "main() function defined", "main() function not found")),
		domain.Check(pass, parens, pick(parens, "Parentheses balanced", "Unbalanced parentheses")),
		domain.Check(pass, brackets, pick(brackets, "Brackets balanced", "Unbalanced brackets")),
	}
	results = append(results, domain.Warn(pass, looksLikeCode,
		pick(looksLikeCode, "Contains Lua code structure", "Doesn't appear to be valid Lua code")))

	return results
}

// Balanced reports whether open and close occur equally often in s.
func Balanced(s string, open, close rune) bool {
	return strings.Count(s, string(open)) == strings.Count(s, string(close))
}

// LooksLikeLua reports whether s mentions "function" and either "local" or
// "return" anywhere.
func LooksLikeLua(s string) bool {
	return strings.Contains(s, "function") &&
		(strings.Contains(s, "local") || strings.Contains(s, "return"))
}

// ScriptComments checks that each metadata comment tag appears somewhere in
// plugin.lua. Missing tags are warnings.
func ScriptComments(t Target) []domain.CheckResult {
	const pass = domain.PassScriptComments
	if !t.present(domain.ScriptFile) {
		return nil
	}

	content, err := t.readText(domain.ScriptFile)
	if err != nil {
		return []domain.CheckResult{domain.Fail(pass, fmt.Sprintf("Error reading %s metadata: %v", domain.ScriptFile, err))}
	}

	results := make([]domain.CheckResult, 0, len(t.Rules.MetadataComments))
	for _, tag := range t.Rules.MetadataComments {
		found := strings.Contains(content, tag)
		results = append(results, domain.Warn(pass, found,
			pick(found, "Metadata comment found: "+tag, "Missing metadata comment: "+tag)))
	}
	return results
}

func pick(cond bool, ok, notOK string) string {
	if cond {
		return ok
	}
	return notOK
}
