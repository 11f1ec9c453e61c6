package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ff6editor/pluginvet/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3")
	dim     = lipgloss.Color("#6B7280")
	faint   = lipgloss.Color("#3F3F46")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	passNameStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// Icons used per result. Exposed so tests can look for them.
const (
	IconPass = "✓"
	IconWarn = "⚠"
	IconFail = "✗"
)

// RenderReport renders a validation run grouped by pass, followed by totals
// and a PASSED/FAILED banner.
func RenderReport(run *domain.ValidationRun) string {
	var b strings.Builder
	report := run.Report

	title := headerStyle.Render("pluginvet")
	subtitle := dimStyle.Render("Validating " + report.Dir)
	b.WriteString(boxStyle.Render(title + "\n" + subtitle))
	b.WriteString("\n\n")

	for _, group := range report.ByPass() {
		fmt.Fprintf(&b, "  %s\n", passNameStyle.Render(group.Pass.Title()))
		for _, r := range group.Results {
			fmt.Fprintf(&b, "    %s %s\n", icon(r), r.Message)
		}
		b.WriteString("\n")
	}

	b.WriteString("  " + separatorLine + "\n\n")
	b.WriteString("  " + titleStyle.Render("Summary") + "  ")
	b.WriteString(errorTagStyle.Render(fmt.Sprintf("%d errors", run.Errors)))
	b.WriteString("  ")
	b.WriteString(warnTagStyle.Render(fmt.Sprintf("%d warnings", run.Warnings)))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d checks", len(report.Results))))
	b.WriteString("\n\n")

	if run.Passed {
		b.WriteString("  " + passStyle.Bold(true).Render(IconPass+" VALIDATION PASSED") + "\n")
	} else {
		b.WriteString("  " + failStyle.Bold(true).Render(IconFail+" VALIDATION FAILED") + "\n")
	}
	return b.String()
}

// RenderSummary renders one line per run for registry-wide validation.
func RenderSummary(runs []*domain.ValidationRun) string {
	if len(runs) == 0 {
		return "  " + dimStyle.Render("No plugins found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Registry Summary") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	failed := 0
	for _, run := range runs {
		status := passStyle.Render(IconPass)
		if !run.Passed {
			status = failStyle.Render(IconFail)
			failed++
		}
		fmt.Fprintf(&b, "  %s %s  %s\n", status, padRight(run.Report.Plugin, 28),
			dimStyle.Render(fmt.Sprintf("%d errors, %d warnings", run.Errors, run.Warnings)))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %d plugins, %d failed\n", len(runs), failed)
	return b.String()
}

// RenderChecksum renders the outcome of a sidecar verification.
func RenderChecksum(dir string, v domain.ChecksumVerification) string {
	switch v.Status {
	case domain.ChecksumMatch:
		return fmt.Sprintf("  %s %s  %s\n", passStyle.Render(IconPass), dir, dimStyle.Render("checksum matches "+short(v.Actual)))
	case domain.ChecksumMismatch:
		return fmt.Sprintf("  %s %s  %s\n    expected %s\n    actual   %s\n",
			failStyle.Render(IconFail), dir, failStyle.Render("checksum mismatch"), v.Expected, v.Actual)
	default:
		return fmt.Sprintf("  %s %s  %s\n", warnStyle.Render(IconWarn), dir, warnStyle.Render("no checksum to verify"))
	}
}

// RenderHistory formats stored runs, newest first, for terminal output.
func RenderHistory(entries []domain.HistoryEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No validation history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Validation History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}

		status := passStyle.Render("passed")
		if !e.Passed {
			status = failStyle.Render("failed")
		}

		line := fmt.Sprintf("  %s  %s  %-20s %s  %s",
			dimStyle.Render(e.StartedAt.Format("2006-01-02 15:04")),
			faintStyle.Render(hash),
			e.Plugin,
			status,
			dimStyle.Render(fmt.Sprintf("%d errors, %d warnings", e.Errors, e.Warnings)),
		)

		// entries run newest first, so compare with the next (older) one.
		if i+1 < len(entries) {
			diff := e.Errors - entries[i+1].Errors
			if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			} else if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func icon(r domain.CheckResult) string {
	switch {
	case r.Passed:
		return passStyle.Render(IconPass)
	case r.IsWarning():
		return warnStyle.Render(IconWarn)
	default:
		return failStyle.Render(IconFail)
	}
}

func short(sum string) string {
	if len(sum) > 16 {
		return sum[:16] + "..."
	}
	return sum
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
