package generate

import (
	"context"
	"errors"
	"strings"

	"github.com/sant0-9/promptforge/internal/analysis"
)

var (
	// ErrConfiguration covers every problem that stops a call before it is
	// made: a missing credential or a provider that cannot be built.
	ErrConfiguration = errors.New("configuration error")

	// ErrMissingCredential means the provider needs an API key and none was given
	ErrMissingCredential = configError("API key is not configured")

	// ErrEmptyResponse means the model answered with no text
	ErrEmptyResponse = errors.New("no response text received from the model")
)

func configError(msg string) error {
	return &wrapped{msg: msg, err: ErrConfiguration}
}

type wrapped struct {
	msg string
	err error
}

func (w *wrapped) Error() string { return w.msg }
func (w *wrapped) Unwrap() error { return w.err }

// ProviderError is a transport or provider-side failure. Its message is the
// provider's own, unchanged.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string { return e.Err.Error() }
func (e *ProviderError) Unwrap() error { return e.Err }

// ParseError means the reply was not valid JSON or did not have the declared
// shape. Raw holds the payload for diagnostics; it is never shown to users.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string { return "malformed model response: " + e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

const (
	msgEmpty     = "No response text received from the model."
	msgParse     = "The model returned a response that could not be read. Please try again."
	msgCancelled = "Request cancelled."
	msgGeneric   = "Something went wrong. Please try again."
)

// Describe turns an error from Generate into the message a user sees
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var parseErr *ParseError
	switch {
	case errors.Is(err, context.Canceled):
		return msgCancelled
	case errors.Is(err, analysis.ErrEmptyInput):
		return "Please enter a prompt to analyze."
	case errors.Is(err, ErrConfiguration):
		return err.Error()
	case errors.Is(err, ErrEmptyResponse):
		return msgEmpty
	case errors.As(err, &parseErr):
		return msgParse
	}

	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return msgGeneric
}
