package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/promptforge/internal/analysis"
)

// card renders one prompt variant and remembers whether it was just copied
type card struct {
	variant analysis.Variant
	index   int

	copied bool
	// copySeq identifies the latest copy so an older reset timer cannot
	// clear a newer copy
	copySeq int
}

func newCards(variants []analysis.Variant) []*card {
	cards := make([]*card, len(variants))
	for i, v := range variants {
		cards[i] = &card{variant: v, index: i}
	}
	return cards
}

// markCopied sets the copied flag and returns the sequence its reset must carry
func (c *card) markCopied() int {
	c.copied = true
	c.copySeq++
	return c.copySeq
}

// resetCopied clears the flag if seq is still the latest copy
func (c *card) resetCopied(seq int) bool {
	if !c.copied || seq != c.copySeq {
		return false
	}
	c.copied = false
	return true
}

func (c *card) render(width int, selected bool, md *glamour.TermRenderer) string {
	inner := width - 4
	if inner < 20 {
		inner = 20
	}

	badgeColor := cardColors[c.index%len(cardColors)]
	badge := lipgloss.NewStyle().
		Foreground(colorWhite).
		Background(badgeColor).
		Bold(true).
		Padding(0, 1).
		Render(fmt.Sprintf("%d", c.index+1))

	copyHint := styleStatusBar.Render(fmt.Sprintf("[%d] Copy", c.index+1))
	if c.copied {
		copyHint = styleCopied.Render("Copied!")
	}

	maxTitle := inner - lipgloss.Width(badge) - lipgloss.Width(copyHint) - 2
	title := lipgloss.NewStyle().Foreground(colorWhite).Bold(true).Render(truncate(c.variant.Title, max(maxTitle, 10)))

	header := badge + " " + title
	gap := inner - lipgloss.Width(header) - lipgloss.Width(copyHint)
	if gap < 1 {
		gap = 1
	}
	header += strings.Repeat(" ", gap) + copyHint

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(styleSubtitle.Render(wrapText(c.variant.Method, inner)))
	b.WriteString("\n\n")
	b.WriteString(renderContent(c.variant.Content, inner, md))
	b.WriteString("\n\n")

	why := lipgloss.NewStyle().Foreground(colorInfo).Bold(true).Render("Why this works:")
	b.WriteString(why + " " + wrapText(c.variant.Explanation, inner-16))

	border := colorMuted
	if selected {
		border = colorSecondary
	}
	return styleBox.Copy().
		Width(width).
		BorderForeground(border).
		Render(b.String())
}

// renderContent shows the prompt as markdown, or as wrapped text when the
// renderer is unavailable or fails
func renderContent(content string, width int, md *glamour.TermRenderer) string {
	if md != nil {
		if out, err := md.Render(content); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	return lipgloss.NewStyle().Foreground(colorWhite).Render(wrapText(content, width))
}

func newMarkdownRenderer(width int) *glamour.TermRenderer {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}
