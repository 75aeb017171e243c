// Package generate turns a raw prompt into an analysis by asking the
// configured model once and validating what comes back.
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sant0-9/promptforge/internal/analysis"
	"github.com/sant0-9/promptforge/internal/config"
	"github.com/sant0-9/promptforge/internal/llm"
	"github.com/sant0-9/promptforge/internal/prompts"
)

// maxLoggedPayload bounds how much of a malformed reply goes to the log
const maxLoggedPayload = 2000

// ProviderFactory builds the provider on first use
type ProviderFactory func(ctx context.Context, cfg *config.Config) (llm.Provider, error)

// Client is safe for concurrent use.
type Client struct {
	cfg     *config.Config
	logger  *zap.Logger
	factory ProviderFactory

	mu       sync.Mutex
	provider llm.Provider
}

type Option func(*Client)

// WithProvider uses p instead of building one from the config
func WithProvider(p llm.Provider) Option {
	return func(c *Client) { c.provider = p }
}

// WithProviderFactory replaces llm.NewProvider
func WithProviderFactory(f ProviderFactory) Option {
	return func(c *Client) { c.factory = f }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for cfg. The provider is built lazily so that a
// missing credential surfaces on the first call, not at startup.
func New(cfg *config.Config, opts ...Option) *Client {
	c := &Client{
		cfg:     cfg,
		logger:  zap.NewNop(),
		factory: llm.NewProvider,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProviderName returns the configured provider's display name
func (c *Client) ProviderName() string {
	if p := config.GetProvider(c.cfg.Provider); p != nil {
		return p.Name
	}
	return c.cfg.Provider
}

func (c *Client) Model() string {
	return c.cfg.Model
}

// Generate analyzes rawText for the given mode. The mode is not validated
// here; unknown values are written into the instruction as they are.
func (c *Client) Generate(ctx context.Context, rawText string, mode analysis.Mode) (*analysis.Result, error) {
	request, err := analysis.NewRequest(rawText, mode)
	if err != nil {
		return nil, err
	}

	if !c.cfg.HasCredential() {
		return nil, c.missingCredential()
	}

	provider, err := c.getProvider(ctx)
	if err != nil {
		return nil, err
	}

	reqID := uuid.NewString()
	log := c.logger.With(
		zap.String("request_id", reqID),
		zap.String("provider", provider.Name()),
		zap.String("model", c.cfg.Model),
		zap.String("mode", string(request.Mode)),
	)
	if !request.Mode.Known() {
		log.Debug("unrecognized mode passed through")
	}
	log.Info("generation started", zap.Int("input_chars", len(request.RawText)))
	start := time.Now()

	req := llm.NewJSONRequest(
		c.cfg.Model,
		prompts.BuildInstruction(request.Mode),
		prompts.BuildUserPrompt(request.RawText),
		ResponseSchema(),
	)

	resp, err := provider.Complete(ctx, req)
	if err != nil {
		log.Error("generation failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, &ProviderError{Provider: provider.Name(), Err: err}
	}

	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		log.Warn("empty model response", zap.Duration("elapsed", time.Since(start)))
		return nil, ErrEmptyResponse
	}

	result, err := parseResult(resp.Content)
	if err != nil {
		log.Warn("malformed model response",
			zap.Error(err),
			zap.String("payload", truncate(resp.Content, maxLoggedPayload)),
			zap.String("finish_reason", resp.FinishReason),
		)
		return nil, err
	}

	log.Info("generation finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("score", result.OriginalScore),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)
	return result, nil
}

func (c *Client) getProvider(ctx context.Context) (llm.Provider, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.provider != nil {
		return c.provider, nil
	}

	p, err := c.factory(ctx, c.cfg)
	if err != nil {
		c.logger.Error("provider setup failed", zap.String("provider", c.cfg.Provider), zap.Error(err))
		return nil, &wrapped{msg: fmt.Sprintf("cannot set up %s: %v", c.ProviderName(), err), err: errors.Join(ErrConfiguration, err)}
	}
	c.provider = p
	return p, nil
}

func (c *Client) missingCredential() error {
	hint := "PROMPTFORGE_API_KEY"
	p := config.GetProvider(c.cfg.Provider)
	if p != nil && p.EnvVar != "" {
		hint = p.EnvVar + " (or PROMPTFORGE_API_KEY)"
	}
	msg := fmt.Sprintf("%s for %s: set %s or api_key in the config file", ErrMissingCredential.Error(), c.ProviderName(), hint)
	if p != nil && p.SignupURL != "" {
		msg += ". Get a key at " + p.SignupURL
	}
	return &wrapped{msg: msg, err: ErrMissingCredential}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
