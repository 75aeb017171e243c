// Package llmtest provides a scripted llm.Provider for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/sant0-9/promptforge/internal/llm"
)

// Provider answers every call with Reply or Err, or with Func when set.
// It records the requests it receives.
type Provider struct {
	Reply string
	Err   error
	Func  func(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error)

	mu       sync.Mutex
	requests []*llm.CompletionRequest
}

func (p *Provider) Name() string {
	return "scripted"
}

func (p *Provider) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.mu.Unlock()

	if p.Func != nil {
		return p.Func(ctx, req)
	}
	if p.Err != nil {
		return nil, p.Err
	}
	return &llm.CompletionResponse{Content: p.Reply, Model: req.Model}, nil
}

// Calls returns how many requests were made
func (p *Provider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.requests)
}

// LastRequest returns the most recent request, or nil
func (p *Provider) LastRequest() *llm.CompletionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.requests) == 0 {
		return nil
	}
	return p.requests[len(p.requests)-1]
}

// ValidReply is a well-formed analysis answer
const ValidReply = `{
  "originalScore": 35,
  "critique": "The request names a topic but no audience, tone, length or goal.",
  "suggestions": [
    "State who the blog post is for",
    "Set the tone and length",
    "Say what the reader should do afterwards"
  ],
  "variations": [
    {
      "title": "The CO-STAR Framework",
      "method": "Context, Objective, Style, Tone, Audience, Response",
      "content": "# CONTEXT\nYou write for a specialty coffee blog.\n# OBJECTIVE\nWrite an 800 word post about coffee.",
      "explanation": "Every dimension the model needs is spelled out."
    },
    {
      "title": "Persona-Based",
      "method": "Assigns an expert role",
      "content": "You are an award-winning barista and food writer. Write a blog post about coffee.",
      "explanation": "A persona anchors vocabulary and depth."
    },
    {
      "title": "Chain-of-Thought",
      "method": "Plan first, then write",
      "content": "First outline five sections about coffee, then write each one.",
      "explanation": "Planning before writing improves structure."
    }
  ]
}`
