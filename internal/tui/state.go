package tui

import (
	"context"

	"github.com/sant0-9/promptforge/internal/analysis"
	"github.com/sant0-9/promptforge/internal/generate"
)

type phase int

const (
	phaseIdle phase = iota
	phaseSubmitting
	phaseSettled
)

const statusAnalyzing = "Analyzing your intent..."

type loadingPhase struct {
	active bool
	status string
}

// state is owned by the Update loop. Every message that can arrive late
// carries the request sequence it belongs to and is dropped when that
// request is no longer current.
type state struct {
	phase   phase
	mode    int
	loading loadingPhase
	// request is the submission in flight or last settled
	request *analysis.Request

	result *analysis.Result
	errMsg string

	cards    []*card
	selected int

	reqSeq int
	cancel context.CancelFunc
}

func newState() *state {
	return &state{}
}

func (s *state) currentMode() analysis.Mode {
	return analysis.Modes[s.mode]
}

// cycleMode changes the selected mode. The mode of a request in flight
// is fixed, so it is a no-op while submitting.
func (s *state) cycleMode(delta int) {
	if s.submitting() {
		return
	}
	n := len(analysis.Modes)
	s.mode = ((s.mode+delta)%n + n) % n
}

func (s *state) submitting() bool {
	return s.phase == phaseSubmitting
}

// beginSubmit moves to Submitting. It refuses blank text and a second
// submission while one is in flight.
func (s *state) beginSubmit(parent context.Context, text string) (context.Context, *analysis.Request, int, bool) {
	if s.submitting() {
		return nil, nil, 0, false
	}
	req, err := analysis.NewRequest(text, s.currentMode())
	if err != nil {
		return nil, nil, 0, false
	}

	s.result = nil
	s.errMsg = ""
	s.cards = nil
	s.selected = 0
	s.loading = loadingPhase{active: true, status: statusAnalyzing}
	s.phase = phaseSubmitting
	s.request = req

	s.reqSeq++
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	return ctx, req, s.reqSeq, true
}

// applyStatus updates the loading message for the in-flight request only
func (s *state) applyStatus(seq int, status string) bool {
	if !s.submitting() || seq != s.reqSeq {
		return false
	}
	s.loading.status = status
	return true
}

// settle stores the outcome of request seq. Outcomes of superseded or
// already settled requests are ignored.
func (s *state) settle(seq int, result *analysis.Result, err error) bool {
	if !s.submitting() || seq != s.reqSeq {
		return false
	}

	s.release()
	s.loading = loadingPhase{}
	s.phase = phaseSettled

	if err != nil || result == nil {
		if err == nil {
			err = generate.ErrEmptyResponse
		}
		s.result = nil
		s.cards = nil
		s.errMsg = generate.Describe(err)
		return true
	}

	s.result = result
	s.errMsg = ""
	s.cards = newCards(result.Variations)
	s.selected = 0
	return true
}

// teardown cancels the in-flight request, if any
func (s *state) teardown() {
	s.release()
}

func (s *state) release() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *state) selectCard(delta int) {
	if len(s.cards) == 0 {
		return
	}
	s.selected = min(max(s.selected+delta, 0), len(s.cards)-1)
}
