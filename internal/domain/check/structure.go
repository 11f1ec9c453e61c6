package check

import (
	"fmt"

	"github.com/ff6editor/pluginvet/internal/domain"
)

// Structure verifies the plugin directory exists and holds every required
// file. Optional files are not checked.
func Structure(t Target) []domain.CheckResult {
	const pass = domain.PassStructure

	info, err := t.FS.Stat(t.Dir)
	if err != nil {
		if isNotExist(err) {
			return []domain.CheckResult{domain.Fail(pass, fmt.Sprintf("Plugin directory not found: %s", t.Dir))}
		}
		return []domain.CheckResult{domain.Fail(pass, fmt.Sprintf("Plugin directory not accessible: %v", err))}
	}

	results := []domain.CheckResult{domain.Pass(pass, "Plugin directory exists")}
	if !info.IsDir() {
		return append(results, domain.Fail(pass, fmt.Sprintf("Not a directory: %s", t.Dir)))
	}

	for _, name := range t.Rules.RequiredFiles {
		if t.present(name) {
			results = append(results, domain.Pass(pass, fmt.Sprintf("Required file found: %s", name)))
		} else {
			results = append(results, domain.Fail(pass, fmt.Sprintf("Missing required file: %s", name)))
		}
	}
	return results
}
