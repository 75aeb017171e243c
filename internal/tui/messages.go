package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sant0-9/promptforge/internal/analysis"
)

const (
	firstStatusDelay  = 1 * time.Second
	secondStatusDelay = 2500 * time.Millisecond
	copyResetDelay    = 2 * time.Second
)

// statusMsg replaces the loading message of request seq
type statusMsg struct {
	seq    int
	status string
}

// resultMsg settles request seq
type resultMsg struct {
	seq    int
	result *analysis.Result
	err    error
}

// copyResetMsg clears the copied flag of one card
type copyResetMsg struct {
	reqSeq int
	card   int
	seq    int
}

// tick delivers msg after d
func tick(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

func generateCmd(ctx context.Context, gen Generator, seq int, req *analysis.Request) tea.Cmd {
	return func() tea.Msg {
		res, err := gen.Generate(ctx, req.RawText, req.Mode)
		return resultMsg{seq: seq, result: res, err: err}
	}
}
