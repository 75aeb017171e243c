package generate

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sant0-9/promptforge/internal/analysis"
	"github.com/sant0-9/promptforge/internal/llm"
)

// ResponseSchema is the output shape declared to the model
func ResponseSchema() *llm.Schema {
	variant := &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"title":       {Type: llm.TypeString, Description: "Name of the prompt strategy (e.g. 'The CO-STAR Framework')"},
			"method":      {Type: llm.TypeString, Description: "Brief description of the methodology used"},
			"content":     {Type: llm.TypeString, Description: "The full, optimized prompt text ready to be copied"},
			"explanation": {Type: llm.TypeString, Description: "Why this version works better"},
		},
		Required: []string{"title", "method", "content", "explanation"},
		Order:    []string{"title", "method", "content", "explanation"},
	}

	return &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"originalScore": {
				Type:        llm.TypeInteger,
				Description: "Score from 0 to 100 representing quality of user input",
				Minimum:     llm.FloatPtr(analysis.MinScore),
				Maximum:     llm.FloatPtr(analysis.MaxScore),
			},
			"critique": {
				Type:        llm.TypeString,
				Description: "Honest critique of the original input",
			},
			"suggestions": {
				Type:        llm.TypeArray,
				Description: "List of 3 short bullet points on how to improve",
				Items:       &llm.Schema{Type: llm.TypeString},
				MinItems:    llm.IntPtr(analysis.SuggestionCount),
				MaxItems:    llm.IntPtr(analysis.SuggestionCount),
			},
			"variations": {
				Type:        llm.TypeArray,
				Description: "Three optimized prompt variations, each using a different framework",
				Items:       variant,
				MinItems:    llm.IntPtr(analysis.VariationCount),
				MaxItems:    llm.IntPtr(analysis.VariationCount),
			},
		},
		Required: []string{"originalScore", "critique", "suggestions", "variations"},
		Order:    []string{"originalScore", "critique", "suggestions", "variations"},
	}
}

type wireResult struct {
	OriginalScore json.RawMessage    `json:"originalScore"`
	Critique      string             `json:"critique"`
	Suggestions   []string           `json:"suggestions"`
	Variations    []analysis.Variant `json:"variations"`
}

// parseResult decodes and validates a model reply. Any failure is a
// *ParseError carrying the raw text.
func parseResult(text string) (*analysis.Result, error) {
	payload := stripFences(text)

	var wire wireResult
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return nil, &ParseError{Raw: text, Err: err}
	}

	score, err := parseScore(wire.OriginalScore)
	if err != nil {
		return nil, &ParseError{Raw: text, Err: err}
	}

	result := &analysis.Result{
		OriginalScore: score,
		Critique:      wire.Critique,
		Suggestions:   wire.Suggestions,
		Variations:    wire.Variations,
	}
	if err := result.Validate(); err != nil {
		return nil, &ParseError{Raw: text, Err: err}
	}

	return result, nil
}

// parseScore accepts JSON numbers that are integers or integral floats
// such as 85.0. Strings and other types are rejected.
func parseScore(raw json.RawMessage) (int, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, errors.New("originalScore is missing")
	}

	var n json.Number
	if s[0] == '"' || json.Unmarshal(raw, &n) != nil {
		return 0, fmt.Errorf("originalScore %s is not a number", s)
	}
	if i, err := n.Int64(); err == nil {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("originalScore %s is not an integer", s)
	}
	return int(f), nil
}

// stripFences removes a surrounding markdown code fence, if any
func stripFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
