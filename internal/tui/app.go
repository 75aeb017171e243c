package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/sant0-9/promptforge/internal/analysis"
)

// Generator is the part of the generation client the UI uses
type Generator interface {
	Generate(ctx context.Context, rawText string, mode analysis.Mode) (*analysis.Result, error)
	ProviderName() string
	Model() string
}

// Clipboard writes text to the system clipboard
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

type focus int

const (
	focusEditor focus = iota
	focusResults
)

type App struct {
	width    int
	height   int
	focus    focus
	state    *state
	quitting bool

	gen       Generator
	clipboard Clipboard
	logger    *zap.Logger
	ctx       context.Context
	after     func(time.Duration, tea.Msg) tea.Cmd

	editor   textarea.Model
	spinner  spinner.Model
	results  viewport.Model
	help     help.Model
	keys     keyMap
	markdown *glamour.TermRenderer
}

type Option func(*App)

func WithClipboard(c Clipboard) Option {
	return func(a *App) { a.clipboard = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithContext sets the parent of every request context
func WithContext(ctx context.Context) Option {
	return func(a *App) { a.ctx = ctx }
}

func NewApp(gen Generator, opts ...Option) *App {
	editor := textarea.New()
	editor.Placeholder = "e.g., I want to write a blog post about coffee, but I want it to be funny and SEO friendly..."
	editor.ShowLineNumbers = false
	editor.CharLimit = 8000
	editor.SetWidth(80)
	editor.SetHeight(5)
	editor.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleLogo

	a := &App{
		state:     newState(),
		gen:       gen,
		clipboard: systemClipboard{},
		logger:    zap.NewNop(),
		ctx:       context.Background(),
		after:     tick,
		editor:    editor,
		spinner:   sp,
		results:   viewport.New(80, 20),
		help:      help.New(),
		keys:      keys,
		markdown:  newMarkdownRenderer(72),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(tea.WindowSize(), textarea.Blink)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := a.handleKey(msg)
		if handled {
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case statusMsg:
		a.state.applyStatus(msg.seq, msg.status)
		return a, nil

	case resultMsg:
		if !a.state.settle(msg.seq, msg.result, msg.err) {
			a.logger.Debug("dropped stale result", zap.Int("seq", msg.seq))
			return a, nil
		}
		if a.state.result != nil {
			a.setFocus(focusResults)
			a.results.GotoTop()
		}
		a.refreshResults()
		return a, nil

	case copyResetMsg:
		if msg.reqSeq == a.state.reqSeq && msg.card < len(a.state.cards) {
			if a.state.cards[msg.card].resetCopied(msg.seq) {
				a.refreshResults()
			}
		}
		return a, nil

	case spinner.TickMsg:
		// Ticks stop once the request settles
		if !a.state.submitting() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	switch a.focus {
	case focusEditor:
		var cmd tea.Cmd
		a.editor, cmd = a.editor.Update(msg)
		cmds = append(cmds, cmd)
	case focusResults:
		var cmd tea.Cmd
		a.results, cmd = a.results.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

// handleKey returns handled=false for keys the focused widget should receive
func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		return a.quit(), true

	case key.Matches(msg, keys.Submit):
		return a.submit(), true

	case key.Matches(msg, keys.Mode):
		a.state.cycleMode(1)
		return nil, true

	case key.Matches(msg, keys.ModePrev):
		a.state.cycleMode(-1)
		return nil, true

	case key.Matches(msg, keys.Focus):
		if a.focus == focusEditor && a.state.result != nil {
			a.setFocus(focusResults)
			return nil, true
		}
		a.setFocus(focusEditor)
		return textarea.Blink, true

	case key.Matches(msg, keys.Back):
		if a.focus == focusResults {
			a.setFocus(focusEditor)
			return textarea.Blink, true
		}
		return a.quit(), true
	}

	if a.focus != focusResults {
		return nil, false
	}

	switch {
	case key.Matches(msg, keys.Left):
		a.state.selectCard(-1)
		a.refreshResults()
		return nil, true

	case key.Matches(msg, keys.Right):
		a.state.selectCard(1)
		a.refreshResults()
		return nil, true

	case key.Matches(msg, keys.Copy):
		return a.copyCard(a.state.selected), true

	case key.Matches(msg, keys.CopyN):
		return a.copyCard(int(msg.String()[0] - '1')), true

	case key.Matches(msg, keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return nil, true
	}

	return nil, false
}

func (a *App) submit() tea.Cmd {
	ctx, req, seq, ok := a.state.beginSubmit(a.ctx, a.editor.Value())
	if !ok {
		return nil
	}
	a.logger.Debug("submit", zap.Int("seq", seq), zap.String("mode", req.Mode.String()))
	a.setFocus(focusEditor)
	a.refreshResults()

	consulting := fmt.Sprintf("Consulting the %s architect...", a.gen.ProviderName())
	return tea.Batch(
		generateCmd(ctx, a.gen, seq, req),
		a.after(firstStatusDelay, statusMsg{seq: seq, status: consulting}),
		a.after(secondStatusDelay, statusMsg{seq: seq, status: "Drafting variations..."}),
		a.spinner.Tick,
	)
}

func (a *App) copyCard(i int) tea.Cmd {
	if i < 0 || i >= len(a.state.cards) {
		return nil
	}
	c := a.state.cards[i]

	// Best effort: a missing clipboard must not break the UI
	if err := a.clipboard.WriteAll(c.variant.Content); err != nil {
		a.logger.Warn("clipboard write failed", zap.Error(err))
	}

	seq := c.markCopied()
	a.state.selected = i
	a.refreshResults()
	return a.after(copyResetDelay, copyResetMsg{reqSeq: a.state.reqSeq, card: i, seq: seq})
}

func (a *App) quit() tea.Cmd {
	a.state.teardown()
	a.quitting = true
	return tea.Quit
}

func (a *App) setFocus(f focus) {
	a.focus = f
	a.keys.inResults = f == focusResults
	if f == focusEditor {
		a.editor.Focus()
	} else {
		a.editor.Blur()
	}
}

func (a *App) contentWidth() int {
	if a.width == 0 {
		return 80
	}
	return max(min(100, a.width-4), 40)
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	w := a.contentWidth()
	a.editor.SetWidth(w - 4)
	a.results.Width = w
	a.results.Height = max(height-18, 5)
	a.help.Width = w
	a.markdown = newMarkdownRenderer(w - 8)
	a.refreshResults()
}

func (a *App) refreshResults() {
	if a.state.result == nil {
		a.results.SetContent("")
		return
	}
	a.results.SetContent(a.renderResultBody())
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	sections := []string{a.renderHeader(), a.renderInput()}

	switch {
	case a.state.loading.active:
		sections = append(sections, a.renderLoading())
	case a.state.errMsg != "":
		sections = append(sections, a.renderError())
	case a.state.result != nil:
		sections = append(sections, a.results.View())
	}

	sections = append(sections, a.help.View(a.keys))

	for i, s := range sections {
		sections[i] = a.center(s)
	}
	return strings.Join(sections, "\n\n")
}
