package validator

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ReportStyles controls how Report decorates its sections.
type ReportStyles struct {
	Header  lipgloss.Style
	Passed  lipgloss.Style
	Failed  lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

// DefaultReportStyles returns colored styles for terminal output.
func DefaultReportStyles() (styles ReportStyles) {
	styles = ReportStyles{
		Header:  lipgloss.NewStyle().Bold(true),
		Passed:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Failed:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	}
	return styles
}

// PlainReportStyles returns styles that render text unchanged.
func PlainReportStyles() (styles ReportStyles) {
	plain := lipgloss.NewStyle()
	styles = ReportStyles{
		Header:  plain,
		Passed:  plain,
		Failed:  plain,
		Error:   plain,
		Warning: plain,
	}
	return styles
}

// Report renders a validation result as a numbered, human-readable report.
func Report(result Result, styles ReportStyles) (report string) {
	var b strings.Builder

	b.WriteString(styles.Header.Render("=== Resume Data Validation Report ==="))
	b.WriteString("\n\n")

	if result.IsValid {
		b.WriteString(styles.Passed.Render("Validation PASSED"))
	} else {
		b.WriteString(styles.Failed.Render("Validation FAILED"))
	}
	b.WriteString("\n")

	if len(result.Errors) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.Header.Render("ERRORS:"))
		b.WriteString("\n")
		for i, e := range result.Errors {
			b.WriteString(styles.Error.Render(fmt.Sprintf("%d. %s", i+1, e)))
			b.WriteString("\n")
		}
	}

	if len(result.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.Header.Render("WARNINGS:"))
		b.WriteString("\n")
		for i, w := range result.Warnings {
			b.WriteString(styles.Warning.Render(fmt.Sprintf("%d. %s", i+1, w)))
			b.WriteString("\n")
		}
	}

	if len(result.Errors) == 0 && len(result.Warnings) == 0 {
		b.WriteString("\nNo issues found!\n")
	}

	report = b.String()
	return report
}
