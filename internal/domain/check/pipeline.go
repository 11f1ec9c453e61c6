package check

import "github.com/ff6editor/pluginvet/internal/domain"

// Step is one named pass in the validation pipeline.
type Step struct {
	Name domain.PassName
	Run  func(Target) []domain.CheckResult
}

// Pipeline returns the passes in the order a validation run executes them.
func Pipeline() []Step {
	return []Step{
		{Name: domain.PassStructure, Run: Structure},
		{Name: domain.PassSize, Run: Size},
		{Name: domain.PassMetadata, Run: func(t Target) []domain.CheckResult {
			results, _ := Metadata(t)
			return results
		}},
		{Name: domain.PassScriptSyntax, Run: ScriptSyntax},
		{Name: domain.PassScriptComments, Run: ScriptComments},
		{Name: domain.PassSecurity, Run: Security},
		{Name: domain.PassDocs, Run: Docs},
		{Name: domain.PassChecksum, Run: Checksum},
	}
}
