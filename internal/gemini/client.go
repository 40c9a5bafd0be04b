// Package gemini wraps the Gemini API as the pipeline's text-generation
// collaborator. The client rotates across API keys when one runs out of
// quota and retries transient failures with exponential backoff.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"transcriptflow/internal/logger"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 1 * time.Second
	defaultMaxDelay    = 10 * time.Second
)

// callFunc performs one raw generation request with one API key.
type callFunc func(ctx context.Context, apiKey, model, prompt string) (string, error)

type implGenerator struct {
	logger logger.Logger
	model  string

	mu         sync.Mutex
	apiKeys    []string
	currentKey int

	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
	sleeper     func(context.Context, time.Duration) error
	call        callFunc
}

// Option customizes the generator.
type Option func(*implGenerator)

// WithMaxAttempts overrides the bounded retry count.
func WithMaxAttempts(attempts int) Option {
	return func(g *implGenerator) {
		if attempts > 0 {
			g.maxAttempts = attempts
		}
	}
}

// WithBackoff overrides the retry delays.
func WithBackoff(base, max time.Duration) Option {
	return func(g *implGenerator) {
		g.baseDelay = base
		g.maxDelay = max
	}
}

// WithSleeper overrides how retry waits are performed (tests).
func WithSleeper(sleeper func(context.Context, time.Duration) error) Option {
	return func(g *implGenerator) {
		g.sleeper = sleeper
	}
}

// WithCallFunc overrides the raw API call (tests).
func WithCallFunc(call callFunc) Option {
	return func(g *implGenerator) {
		g.call = call
	}
}

// New creates a Generator that rotates through the supplied API keys.
func New(apiKeys []string, model string, log logger.Logger, opts ...Option) Generator {
	g := &implGenerator{
		logger:      log,
		model:       model,
		apiKeys:     apiKeys,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		maxDelay:    defaultMaxDelay,
		call:        callGemini,
	}
	g.sleeper = func(ctx context.Context, d time.Duration) error {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate runs one prompt through the model. Rate limits rotate to the
// next key and retry; timeouts retry with backoff; terminal classifications
// return immediately.
func (g *implGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", fmt.Errorf("%w: no api keys configured", ErrInvalidCredentials)
	}

	var lastErr error
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := g.call(ctx, g.pickKey(), g.model, prompt)
		if err == nil {
			return text, nil
		}

		classified := classify(err)
		if !Retryable(classified) || attempt == g.maxAttempts {
			return "", classified
		}
		if errors.Is(classified, ErrRateLimited) {
			g.rotateKey()
		}

		delay := g.backoffDelay(attempt)
		g.logger.Warn(ctx, "Generation attempt %d/%d failed (%v), retrying in %s", attempt, g.maxAttempts, classified, delay)
		if err := g.sleeper(ctx, delay); err != nil {
			return "", err
		}
		lastErr = classified
	}

	return "", fmt.Errorf("generation failed after %d attempts: %w", g.maxAttempts, lastErr)
}

func (g *implGenerator) pickKey() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKeys[g.currentKey]
}

func (g *implGenerator) rotateKey() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}

// attempt 1 -> base, attempt 2 -> base*2, attempt 3 -> base*4, capped.
func (g *implGenerator) backoffDelay(attempt int) time.Duration {
	delay := g.baseDelay
	for i := 1; i < attempt; i++ {
		if delay > g.maxDelay/2 {
			return g.maxDelay
		}
		delay *= 2
	}
	if delay > g.maxDelay {
		return g.maxDelay
	}
	return delay
}

// classify maps raw API errors onto the generation error taxonomy.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429"),
		strings.Contains(msg, "quota"),
		strings.Contains(msg, "resource_exhausted"):
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	case strings.Contains(msg, "timeout"),
		strings.Contains(msg, "deadline"):
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	case strings.Contains(msg, "401"),
		strings.Contains(msg, "403"),
		strings.Contains(msg, "api key"),
		strings.Contains(msg, "unauthenticated"),
		strings.Contains(msg, "permission_denied"):
		return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	case strings.Contains(msg, "safety"),
		strings.Contains(msg, "blocked"),
		strings.Contains(msg, "prohibited"):
		return fmt.Errorf("%w: %w", ErrContentRejected, err)
	default:
		return err
	}
}

// callGemini performs one real API request. A fresh client per call keeps
// key rotation simple, matching how quota exhaustion is recovered from.
func callGemini(ctx context.Context, apiKey, model, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text string
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}
		if text != "" {
			return text, nil
		}
	}

	return "", fmt.Errorf("empty response from model")
}
