// Package report renders validation runs as Markdown and HTML for registry
// pull request pages.
package report

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/ff6editor/pluginvet/internal/domain"
)

// Markdown renders one run as a GitHub-flavoured Markdown document.
func Markdown(run *domain.ValidationRun) string {
	var b strings.Builder
	writeRun(&b, run, "#")
	return b.String()
}

// MarkdownAll renders a registry-wide summary table followed by every run.
func MarkdownAll(runs []*domain.ValidationRun) string {
	var b strings.Builder
	b.WriteString("# Plugin registry validation\n\n")
	b.WriteString("| Plugin | Result | Errors | Warnings |\n")
	b.WriteString("|---|---|---:|---:|\n")
	failed := 0
	for _, run := range runs {
		if !run.Passed {
			failed++
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %d |\n", escapeCell(run.Report.Plugin), verdict(run.Passed), run.Errors, run.Warnings)
	}
	fmt.Fprintf(&b, "\n%d plugins, %d failed.\n\n", len(runs), failed)

	for _, run := range runs {
		writeRun(&b, run, "##")
	}
	return b.String()
}

func writeRun(b *strings.Builder, run *domain.ValidationRun, heading string) {
	report := run.Report
	fmt.Fprintf(b, "%s %s\n\n", heading, escapeInline(report.Plugin))
	fmt.Fprintf(b, "**Result:** %s (%d errors, %d warnings, %d checks)\n\n",
		verdict(run.Passed), run.Errors, run.Warnings, len(report.Results))
	if run.CommitHash != "" {
		fmt.Fprintf(b, "Commit: `%s`\n\n", run.CommitHash)
	}

	for _, group := range report.ByPass() {
		fmt.Fprintf(b, "%s# %s\n\n", heading, group.Pass.Title())
		b.WriteString("| Status | Severity | Message |\n")
		b.WriteString("|---|---|---|\n")
		for _, r := range group.Results {
			fmt.Fprintf(b, "| %s | %s | %s |\n", status(r), r.Severity, escapeCell(r.Message))
		}
		b.WriteString("\n")
	}
}

// HTML converts rendered Markdown into a standalone HTML page.
func HTML(title, markdown string) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("converting report to HTML: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>%s</title>\n", html.EscapeString(title))
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

func verdict(passed bool) string {
	if passed {
		return "PASSED"
	}
	return "FAILED"
}

func status(r domain.CheckResult) string {
	switch {
	case r.Passed:
		return "pass"
	case r.IsWarning():
		return "warn"
	default:
		return "fail"
	}
}

// escapeInline keeps regexp patterns and other punctuation literal.
func escapeInline(s string) string {
	return strings.NewReplacer(`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "<", "&lt;").Replace(s)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(escapeInline(s), "|", `\|`)
}
