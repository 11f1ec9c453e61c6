package check

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ff6editor/pluginvet/internal/domain"
)

var (
	pluginIDPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	versionPattern  = regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+$`)
)

// Metadata parses metadata.json and validates every descriptor field
// independently. It returns the parsed descriptor, or nil when the file is
// missing, unreadable or not a JSON object.
func Metadata(t Target) ([]domain.CheckResult, domain.Descriptor) {
	const pass = domain.PassMetadata
	name := domain.MetadataFile

	if !t.present(name) {
		return []domain.CheckResult{domain.Fail(pass, name+" not found")}, nil
	}

	content, err := t.readText(name)
	if err != nil {
		return []domain.CheckResult{domain.Fail(pass, fmt.Sprintf("Error reading %s: %v", name, err))}, nil
	}

	desc, err := domain.ParseDescriptor([]byte(content))
	if err != nil {
		return []domain.CheckResult{domain.Fail(pass, fmt.Sprintf("Invalid JSON in %s: %v", name, err))}, nil
	}

	results := []domain.CheckResult{domain.Pass(pass, "Valid JSON format")}

	for _, field := range t.Rules.RequiredFields {
		if desc.Has(field) {
			results = append(results, domain.Pass(pass, "Required field present: "+field))
		} else {
			results = append(results, domain.Fail(pass, "Missing required field: "+field))
		}
	}

	results = append(results, checkID(t, desc)...)
	results = append(results, checkVersion(desc)...)
	results = append(results, checkCategory(t.Rules, desc)...)
	results = append(results, checkPermissions(t.Rules, desc)...)
	results = append(results, checkLengths(t.Rules, desc)...)
	results = append(results, checkTags(t.Rules, desc)...)

	return results, desc
}

// ValidID reports whether id is lowercase alphanumeric segments joined by
// single hyphens.
func ValidID(id string) bool { return pluginIDPattern.MatchString(id) }

func checkID(t Target, desc domain.Descriptor) []domain.CheckResult {
	const pass = domain.PassMetadata
	if !desc.Has("id") {
		return nil
	}

	id, isString := desc.String("id")
	display := domain.Display(desc["id"])

	var results []domain.CheckResult
	if isString && id == t.ID {
		results = append(results, domain.Pass(pass, "Plugin ID matches directory name: "+id))
	} else {
		results = append(results, domain.Fail(pass,
			fmt.Sprintf("Plugin ID '%s' doesn't match directory '%s'", display, t.ID)))
	}

	if isString && pluginIDPattern.MatchString(id) {
		results = append(results, domain.Pass(pass, "Plugin ID format valid (lowercase, hyphens)"))
	} else {
		results = append(results, domain.Fail(pass, "Plugin ID must be lowercase alphanumeric with hyphens only"))
	}
	return results
}

func checkVersion(desc domain.Descriptor) []domain.CheckResult {
	const pass = domain.PassMetadata
	if !desc.Has("version") {
		return nil
	}
	v, ok := desc.String("version")
	if ok && versionPattern.MatchString(v) {
		return []domain.CheckResult{domain.Pass(pass, "Version format valid: "+v)}
	}
	return []domain.CheckResult{domain.Fail(pass, "Version must be semantic (X.Y.Z): "+domain.Display(desc["version"]))}
}

func checkCategory(rules domain.Rules, desc domain.Descriptor) []domain.CheckResult {
	const pass = domain.PassMetadata
	if !desc.Has("category") {
		return nil
	}
	c, ok := desc.String("category")
	if ok && rules.IsValidCategory(c) {
		return []domain.CheckResult{domain.Pass(pass, "Category valid: "+c)}
	}
	return []domain.CheckResult{domain.Fail(pass, fmt.Sprintf("Invalid category: %s. Must be one of: %s",
		domain.Display(desc["category"]), strings.Join(rules.Categories, ", ")))}
}

func checkPermissions(rules domain.Rules, desc domain.Descriptor) []domain.CheckResult {
	const pass = domain.PassMetadata
	if !desc.Has("permissions") {
		return nil
	}
	perms, ok := desc.List("permissions")
	if !ok || len(perms) == 0 {
		return []domain.CheckResult{domain.Fail(pass, "Permissions must be non-empty array")}
	}

	var valid, invalid []string
	for _, p := range perms {
		s, isString := p.(string)
		if isString && rules.IsValidPermission(s) {
			valid = append(valid, s)
		} else {
			invalid = append(invalid, domain.Display(p))
		}
	}
	if len(invalid) > 0 {
		return []domain.CheckResult{domain.Fail(pass, "Invalid permissions: "+strings.Join(invalid, ", "))}
	}
	return []domain.CheckResult{domain.Pass(pass, "Permissions valid: "+strings.Join(valid, ", "))}
}

// checkLengths walks RequiredFields so results come out in a stable order.
func checkLengths(rules domain.Rules, desc domain.Descriptor) []domain.CheckResult {
	const pass = domain.PassMetadata
	var results []domain.CheckResult
	for _, field := range rules.RequiredFields {
		bounds, limited := rules.FieldLengths[field]
		if !limited || !desc.Has(field) {
			continue
		}
		label := fieldLabel(field)
		s, ok := desc.String(field)
		if !ok {
			results = append(results, domain.Fail(pass, fmt.Sprintf("%s must be a string", label)))
			continue
		}
		n := utf8.RuneCountInString(s)
		if bounds.Contains(n) {
			results = append(results, domain.Pass(pass, fmt.Sprintf("%s length valid: %d chars", label, n)))
		} else {
			results = append(results, domain.Fail(pass,
				fmt.Sprintf("%s must be %d-%d characters: %d chars", label, bounds.Min, bounds.Max, n)))
		}
	}
	return results
}

func checkTags(rules domain.Rules, desc domain.Descriptor) []domain.CheckResult {
	const pass = domain.PassMetadata
	if !desc.Has("tags") {
		return nil
	}
	tags, ok := desc.List("tags")
	if ok && rules.TagCount.Contains(len(tags)) {
		return []domain.CheckResult{domain.Pass(pass, fmt.Sprintf("Tag count valid: %d", len(tags)))}
	}
	return []domain.CheckResult{domain.Fail(pass,
		fmt.Sprintf("Tags must have %d-%d items: %d", rules.TagCount.Min, rules.TagCount.Max, len(tags)))}
}
