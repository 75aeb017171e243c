package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/promptforge/internal/config"
)

func (a *App) renderError() string {
	var b strings.Builder
	w := a.contentWidth()

	title := lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true).
		Render("Something went wrong")
	b.WriteString(title)
	b.WriteString("\n")

	errMsg := a.state.errMsg
	errBox := styleBox.Copy().
		Width(w).
		BorderForeground(colorError).
		Foreground(colorError).
		Render(wrapText(errMsg, w-4))
	b.WriteString(errBox)

	if hints := errorHints(errMsg); len(hints) > 0 {
		b.WriteString("\n")
		hintBox := styleBox.Copy().
			Width(w).
			BorderForeground(colorMuted).
			Render("Suggestions:\n" + strings.Join(hints, "\n"))
		b.WriteString(hintBox)
	}

	b.WriteString("\n")
	b.WriteString(styleStatusBar.Render("[ctrl+s] Retry  [ctrl+c] Quit"))
	return b.String()
}

// errorHints suggests next steps based on the error text
func errorHints(errMsg string) []string {
	var hints []string
	errLower := strings.ToLower(errMsg)

	switch {
	case strings.Contains(errLower, "api key") || strings.Contains(errLower, "401") || strings.Contains(errLower, "unauthorized"):
		path, err := config.ConfigPath()
		if err != nil {
			path = "~/.config/promptforge/config.yaml"
		}
		hints = append(hints, "Check your API key in "+path)
		hints = append(hints, "Or export PROMPTFORGE_API_KEY and restart")
	case strings.Contains(errLower, "ollama"):
		hints = append(hints, "Make sure Ollama is running: ollama serve")
		hints = append(hints, "Or switch to a cloud provider in the config file")
	case strings.Contains(errLower, "connection") || strings.Contains(errLower, "connect") || strings.Contains(errLower, "timeout"):
		hints = append(hints, "Check your internet connection")
		hints = append(hints, "Or try using Ollama for offline mode")
	case strings.Contains(errLower, "rate limit") || strings.Contains(errLower, "429") || strings.Contains(errLower, "quota"):
		hints = append(hints, "You've hit the API rate limit")
		hints = append(hints, "Wait a moment and try again")
	case strings.Contains(errLower, "could not be read") || strings.Contains(errLower, "no response"):
		hints = append(hints, "Models occasionally return malformed output")
		hints = append(hints, "Press ctrl+s to try again")
	}

	return hints
}
