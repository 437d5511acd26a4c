package tui

import (
	"fmt"
	"strings"

	"github.com/braindrive/chat-plugin/internal/health"
	"github.com/braindrive/chat-plugin/internal/i18n"
	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(true).
			Padding(0, 1)

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			MarginLeft(4)

	descSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				MarginLeft(4)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	codeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// Check renders a pass/fail line
func Check(label string, ok bool) string {
	mark := okStyle.Render("✓")
	if !ok {
		mark = failStyle.Render("✗")
	}
	return fmt.Sprintf("  %s %s", mark, label)
}

// Field renders an aligned "label: value" line
func Field(label, value string) string {
	return fmt.Sprintf("  %s %s", labelStyle.Render(fmt.Sprintf("%-14s", label+":")), value)
}

// Success renders text in the success color
func Success(text string) string {
	return okStyle.Render(text)
}

// Failure renders text in the failure color
func Failure(text string) string {
	return failStyle.Render(text)
}

// HealthReport renders a health report as a titled checklist
func HealthReport(path string, r health.Report) string {
	var b strings.Builder

	status := Success(i18n.T("health.healthy", nil))
	if !r.Healthy {
		status = Failure(i18n.T("health.unhealthy", nil))
	}
	b.WriteString(titleStyle.Render(i18n.T("health.title", nil)) + " " + status + "\n")
	b.WriteString(Field(i18n.T("label.path", nil), path) + "\n")

	d := r.Details
	b.WriteString(Check(i18n.T("health.bundle", map[string]any{"Size": d.BundleSize}), d.BundleExists && d.BundleSize > 0) + "\n")
	b.WriteString(Check(i18n.T("health.manifest", nil), d.ManifestValid) + "\n")
	b.WriteString(Check(i18n.T("health.assets", nil), d.AssetsPresent) + "\n")
	b.WriteString(Check(i18n.T("health.components", nil), d.ComponentsPresent))

	return b.String()
}
