package llm

import (
	"context"
	"fmt"
)

// Provider is the interface all LLM providers must implement
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends a completion request and returns the full response
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
}

// CompletionRequest represents a request to the LLM
type CompletionRequest struct {
	Model       string
	System      string
	Messages    []Message
	MaxTokens   int
	Temperature float64

	// JSON asks the provider for a JSON document instead of prose.
	JSON bool
	// Schema, when set, is the shape the JSON document must follow.
	// Providers without native schema support receive it as an instruction.
	Schema *Schema
}

// Message represents a chat message
type Message struct {
	Role    string
	Content string
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// CompletionResponse represents the full response
type CompletionResponse struct {
	Content      string
	Model        string
	FinishReason string
	Usage        Usage
}

// Usage tracks token usage
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// NewJSONRequest creates a single-turn request that expects a JSON reply
// shaped like schema.
func NewJSONRequest(model, systemPrompt, userPrompt string, schema *Schema) *CompletionRequest {
	return &CompletionRequest{
		Model:  model,
		System: systemPrompt,
		Messages: []Message{
			{Role: RoleUser, Content: userPrompt},
		},
		MaxTokens:   4096,
		Temperature: 0.7,
		JSON:        true,
		Schema:      schema,
	}
}

// APIError is a non-2xx reply from a provider's HTTP API
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}
