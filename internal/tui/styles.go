package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// truncate shortens s to maxLen cells, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if maxLen <= 3 {
		return runewidth.Truncate(s, maxLen, "")
	}
	return runewidth.Truncate(s, maxLen, "...")
}

// wrapText wraps text to fit within maxWidth, preserving words and line breaks
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		maxWidth = 60
	}

	var out []string
	for _, para := range strings.Split(text, "\n") {
		if len(para) <= maxWidth {
			out = append(out, para)
			continue
		}

		var line strings.Builder
		for _, word := range strings.Fields(para) {
			if line.Len() > 0 && line.Len()+1+len(word) > maxWidth {
				out = append(out, line.String())
				line.Reset()
			}
			if line.Len() > 0 {
				line.WriteString(" ")
			}
			line.WriteString(word)
		}
		out = append(out, line.String())
	}
	return strings.Join(out, "\n")
}

var (
	// Colors
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#06B6D4")
	colorSuccess   = lipgloss.Color("#10B981")
	colorWarning   = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
	colorWhite     = lipgloss.Color("#F9FAFB")
	colorDark      = lipgloss.Color("#1F2937")
	colorInfo      = lipgloss.Color("#3B82F6")

	// One badge colour per variant card
	cardColors = []lipgloss.Color{colorPrimary, colorInfo, colorSuccess}

	styleLogo = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleSubtitle = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBadge = lipgloss.NewStyle().
			Foreground(colorMuted).
			Background(colorDark).
			Padding(0, 1)

	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	styleHeading = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	styleTab = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	styleTabActive = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(colorDark).
			Bold(true).
			Padding(0, 1)

	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleCopied = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)
)

// scoreColor follows the score bands: green above 75, yellow above 50
func scoreColor(band string) lipgloss.Color {
	switch band {
	case "high":
		return colorSuccess
	case "medium":
		return colorWarning
	default:
		return colorError
	}
}
