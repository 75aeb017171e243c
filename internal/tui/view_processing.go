package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/promptforge/internal/analysis"
)

var loadingStages = []string{
	"Intent",
	"Critique",
	fmt.Sprintf("%d variations", analysis.VariationCount),
}

// renderLoading shows the spinner, the current status and a stage list
// derived from it
func (a *App) renderLoading() string {
	status := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Render(a.spinner.View() + " " + a.state.loading.status)

	current := 0
	switch {
	case strings.HasPrefix(a.state.loading.status, "Consulting"):
		current = 1
	case strings.HasPrefix(a.state.loading.status, "Drafting"):
		current = 2
	}

	var lines []string
	for i, stage := range loadingStages {
		var icon string
		var style lipgloss.Style

		if i < current {
			icon = "[x]"
			style = lipgloss.NewStyle().Foreground(colorSuccess)
		} else if i == current {
			icon = "[>]"
			style = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true)
		} else {
			icon = "[ ]"
			style = lipgloss.NewStyle().Foreground(colorMuted)
		}
		lines = append(lines, style.Render(fmt.Sprintf("  %s  %s", icon, stage)))
	}

	box := styleBox.Copy().
		Width(min(40, a.contentWidth())).
		Render(strings.Join(lines, "\n"))

	m := a.state.currentMode()
	if a.state.request != nil {
		m = a.state.request.Mode
	}
	mode := styleSubtitle.Render("Mode: " + m.String())
	return lipgloss.JoinVertical(lipgloss.Center, status, "", box, mode)
}
