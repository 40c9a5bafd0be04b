package gemini

import (
	"context"
	"errors"
)

// Generator produces rewritten text for one prompt. One call corresponds to
// one transcript chunk.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Generation failures fall into two groups: retryable conditions that the
// client retries with backoff before giving up, and terminal conditions
// that fail the surrounding job immediately.
var (
	ErrRateLimited        = errors.New("generation rate limited")
	ErrTimeout            = errors.New("generation timed out")
	ErrInvalidCredentials = errors.New("invalid generation credentials")
	ErrContentRejected    = errors.New("content rejected by generation service")
)

// Retryable reports whether the error is worth another attempt.
func Retryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrTimeout)
}

// Terminal reports whether the error can never succeed on retry.
func Terminal(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrContentRejected)
}
