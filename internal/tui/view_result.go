package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/promptforge/internal/analysis"
)

const gaugeWidth = 30

// renderResultBody is the scrollable dashboard: score, critique,
// suggestions and the variant cards
func (a *App) renderResultBody() string {
	res := a.state.result
	w := a.contentWidth()

	var b strings.Builder

	b.WriteString(styleHeading.Render("ORIGINAL QUALITY"))
	b.WriteString("\n")
	b.WriteString(renderGauge(res))
	b.WriteString("\n\n")

	b.WriteString(styleHeading.Render("CRITIQUE"))
	b.WriteString("\n")
	critique := lipgloss.NewStyle().Italic(true).Foreground(colorWhite).
		Render(wrapText(`"`+res.Critique+`"`, w-2))
	b.WriteString(critique)
	b.WriteString("\n\n")

	b.WriteString(styleHeading.Render("KEY IMPROVEMENTS"))
	b.WriteString("\n")
	bullet := lipgloss.NewStyle().Foreground(colorInfo).Render("•")
	for _, s := range res.Suggestions {
		b.WriteString(bullet + " " + wrapText(s, w-4))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(divider("Optimized Variations", w))
	b.WriteString("\n\n")

	for i, c := range a.state.cards {
		b.WriteString(c.render(w-2, i == a.state.selected && a.focus == focusResults, a.markdown))
		b.WriteString("\n")
	}

	return b.String()
}

func renderGauge(res *analysis.Result) string {
	color := scoreColor(res.ScoreBand())
	filled := res.OriginalScore * gaugeWidth / analysis.MaxScore

	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(colorDark).Render(strings.Repeat("░", gaugeWidth-filled))
	score := lipgloss.NewStyle().Foreground(color).Bold(true).
		Render(fmt.Sprintf("%3d/100", res.OriginalScore))
	return bar + "  " + score
}

func divider(title string, width int) string {
	label := " " + title + " "
	side := (width - lipgloss.Width(label)) / 2
	if side < 2 {
		side = 2
	}
	line := lipgloss.NewStyle().Foreground(colorDark).Render(strings.Repeat("─", side))
	return line + lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render(label) + line
}
