package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/promptforge/internal/analysis"
)

func (a *App) renderHeader() string {
	title := styleLogo.Render("PromptForge")
	badge := styleBadge.Render("Powered by " + a.modelDisplayName())
	line := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", badge)
	tagline := styleSubtitle.Render("Don't just write. Engineer.")
	return lipgloss.JoinVertical(lipgloss.Center, line, tagline)
}

func (a *App) renderInput() string {
	w := a.contentWidth()

	border := colorMuted
	if a.focus == focusEditor {
		border = colorSecondary
	}
	editor := styleBox.Copy().
		Width(w).
		BorderForeground(border).
		Render(a.editor.View())

	var tabs []string
	for i, m := range analysis.Modes {
		if i == a.state.mode {
			tabs = append(tabs, styleTabActive.Render(m.String()))
		} else {
			tabs = append(tabs, styleTab.Render(m.String()))
		}
	}
	left := strings.Join(tabs, " ")

	action := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render("[ctrl+s] Enhance Prompt")
	if a.state.submitting() {
		action = styleSubtitle.Render(a.spinner.View() + " Processing")
	} else if strings.TrimSpace(a.editor.Value()) == "" {
		action = styleSubtitle.Render("[ctrl+s] Enhance Prompt")
	}

	if text := a.editor.Value(); text != "" {
		action = styleStatusBar.Render(fmt.Sprintf("~%d tokens  ", estimateTokens(text))) + action
	}

	gap := w - lipgloss.Width(left) - lipgloss.Width(action)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + action

	return lipgloss.JoinVertical(lipgloss.Left, editor, bar)
}

// estimateTokens returns approximate token count (~4 chars per token)
func estimateTokens(text string) int {
	return (len(text) + 3) / 4
}

// modelDisplayName returns a friendly model name for the header badge
func (a *App) modelDisplayName() string {
	model := a.gen.Model()
	provider := a.gen.ProviderName()

	displayModel := model
	switch {
	case strings.Contains(model, "gemini-3-flash"):
		displayModel = "Gemini 3 Flash"
	case strings.Contains(model, "gemini-2.5-flash"):
		displayModel = "Gemini 2.5 Flash"
	case strings.Contains(model, "gemini-2.5-pro"):
		displayModel = "Gemini 2.5 Pro"
	case strings.Contains(model, "claude-sonnet-4"):
		displayModel = "Claude Sonnet 4.5"
	case strings.Contains(model, "claude-haiku-4"):
		displayModel = "Claude Haiku 4.5"
	case strings.Contains(model, "gpt-4o-mini"):
		displayModel = "GPT-4o mini"
	case strings.Contains(model, "gpt-4o"):
		displayModel = "GPT-4o"
	case strings.Contains(model, "gpt-4.1"):
		displayModel = "GPT-4.1"
	case strings.Contains(model, "llama-3.3"):
		displayModel = "Llama 3.3"
	case strings.Contains(model, "llama3.1"), strings.Contains(model, "llama-3.1"):
		displayModel = "Llama 3.1"
	}

	if displayModel == "" {
		return provider
	}
	if provider != "" && !strings.Contains(strings.ToLower(displayModel), strings.ToLower(provider)) {
		return fmt.Sprintf("%s via %s", displayModel, provider)
	}
	return displayModel
}

func (a *App) center(content string) string {
	if a.width == 0 {
		return content
	}
	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, content)
}
