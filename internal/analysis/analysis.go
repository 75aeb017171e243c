// Package analysis defines the prompt analysis result and the task modes
// that parameterize a request.
package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// Mode is the task category the user's prompt belongs to
type Mode string

const (
	ModeGeneral  Mode = "General"
	ModeCoding   Mode = "Coding"
	ModeCreative Mode = "Creative"
	ModeBusiness Mode = "Business"
)

// Modes lists the recognized modes in display order
var Modes = []Mode{ModeGeneral, ModeCoding, ModeCreative, ModeBusiness}

func (m Mode) String() string {
	return string(m)
}

// Known reports whether m is one of the recognized modes
func (m Mode) Known() bool {
	for _, known := range Modes {
		if m == known {
			return true
		}
	}
	return false
}

// ParseMode resolves a mode name case-insensitively. An empty name is General.
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ModeGeneral, nil
	}
	for _, m := range Modes {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q (want one of: %s)", s, modeNames())
}

func modeNames() string {
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// Request is one user submission
type Request struct {
	RawText string
	Mode    Mode
}

// NewRequest trims the text and rejects blank input
func NewRequest(text string, mode Mode) (*Request, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	return &Request{RawText: text, Mode: mode}, nil
}

// ErrEmptyInput is returned for blank or whitespace-only prompts
var ErrEmptyInput = errors.New("prompt text is empty")

const (
	// SuggestionCount is the number of improvement suggestions in a result
	SuggestionCount = 3
	// VariationCount is the number of rewritten prompts in a result
	VariationCount = 3

	MinScore = 0
	MaxScore = 100
)

// Variant is one rewritten version of the user's prompt
type Variant struct {
	Title       string `json:"title"`
	Method      string `json:"method"`
	Content     string `json:"content"`
	Explanation string `json:"explanation"`
}

// Result is the model's analysis of a prompt
type Result struct {
	OriginalScore int       `json:"originalScore"`
	Critique      string    `json:"critique"`
	Suggestions   []string  `json:"suggestions"`
	Variations    []Variant `json:"variations"`
}

// ScoreBand buckets the score for display: "high" above 75, "medium" above
// 50, "low" otherwise.
func (r *Result) ScoreBand() string {
	switch {
	case r.OriginalScore > 75:
		return "high"
	case r.OriginalScore > 50:
		return "medium"
	default:
		return "low"
	}
}

// Validate checks the structural contract of a result and returns every
// violation joined into one error.
func (r *Result) Validate() error {
	if r == nil {
		return errors.New("result is nil")
	}

	var errs []error
	if r.OriginalScore < MinScore || r.OriginalScore > MaxScore {
		errs = append(errs, fmt.Errorf("originalScore %d outside [%d,%d]", r.OriginalScore, MinScore, MaxScore))
	}
	if strings.TrimSpace(r.Critique) == "" {
		errs = append(errs, errors.New("critique is empty"))
	}

	if len(r.Suggestions) != SuggestionCount {
		errs = append(errs, fmt.Errorf("got %d suggestions, want %d", len(r.Suggestions), SuggestionCount))
	}
	for i, s := range r.Suggestions {
		if strings.TrimSpace(s) == "" {
			errs = append(errs, fmt.Errorf("suggestions[%d] is empty", i))
		}
	}

	if len(r.Variations) != VariationCount {
		errs = append(errs, fmt.Errorf("got %d variations, want %d", len(r.Variations), VariationCount))
	}
	for i, v := range r.Variations {
		if err := v.validate(); err != nil {
			errs = append(errs, fmt.Errorf("variations[%d]: %w", i, err))
		}
	}

	return errors.Join(errs...)
}

func (v Variant) validate() error {
	var missing []string
	if strings.TrimSpace(v.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(v.Method) == "" {
		missing = append(missing, "method")
	}
	if strings.TrimSpace(v.Content) == "" {
		missing = append(missing, "content")
	}
	if strings.TrimSpace(v.Explanation) == "" {
		missing = append(missing, "explanation")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	return nil
}
