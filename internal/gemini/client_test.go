package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"transcriptflow/internal/logger"
)

func noSleep(ctx context.Context, d time.Duration) error { return nil }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"quota message", errors.New("googleapi: Error 429: RESOURCE_EXHAUSTED"), ErrRateLimited},
		{"timeout message", errors.New("request timeout"), ErrTimeout},
		{"deadline", context.DeadlineExceeded, ErrTimeout},
		{"bad key", errors.New("Error 401: API key not valid"), ErrInvalidCredentials},
		{"safety block", errors.New("candidate blocked: SAFETY"), ErrContentRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.err); !errors.Is(got, tt.want) {
				t.Errorf("classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyPassesThroughUnknown(t *testing.T) {
	raw := errors.New("something odd")
	got := classify(raw)
	if Retryable(got) || Terminal(got) {
		t.Errorf("unknown error was classified: %v", got)
	}
}

func TestGenerateRetriesRateLimitAndRotatesKey(t *testing.T) {
	var usedKeys []string
	call := func(ctx context.Context, apiKey, model, prompt string) (string, error) {
		usedKeys = append(usedKeys, apiKey)
		if len(usedKeys) < 3 {
			return "", errors.New("429 quota exceeded")
		}
		return "ok", nil
	}

	g := New([]string{"k1", "k2", "k3"}, "m", logger.Nop(),
		WithCallFunc(call), WithSleeper(noSleep), WithMaxAttempts(5))

	text, err := g.Generate(context.Background(), "p")
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if text != "ok" {
		t.Errorf("text = %q", text)
	}
	want := []string{"k1", "k2", "k3"}
	if len(usedKeys) != len(want) {
		t.Fatalf("used keys %v, want %v", usedKeys, want)
	}
	for i := range want {
		if usedKeys[i] != want[i] {
			t.Errorf("attempt %d used key %q, want %q", i, usedKeys[i], want[i])
		}
	}
}

func TestGenerateTerminalFailsImmediately(t *testing.T) {
	calls := 0
	call := func(ctx context.Context, apiKey, model, prompt string) (string, error) {
		calls++
		return "", errors.New("401 API key not valid")
	}

	g := New([]string{"k1"}, "m", logger.Nop(), WithCallFunc(call), WithSleeper(noSleep))

	_, err := g.Generate(context.Background(), "p")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
	if calls != 1 {
		t.Errorf("terminal failure retried: %d calls", calls)
	}
}

func TestGenerateExhaustsAttempts(t *testing.T) {
	calls := 0
	call := func(ctx context.Context, apiKey, model, prompt string) (string, error) {
		calls++
		return "", errors.New("timeout")
	}

	g := New([]string{"k1"}, "m", logger.Nop(),
		WithCallFunc(call), WithSleeper(noSleep), WithMaxAttempts(3))

	_, err := g.Generate(context.Background(), "p")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("error = %v, want ErrTimeout", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestGenerateNoKeys(t *testing.T) {
	g := New(nil, "m", logger.Nop())
	if _, err := g.Generate(context.Background(), "p"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestBackoffDelayDoublesAndCaps(t *testing.T) {
	g := New([]string{"k"}, "m", logger.Nop(),
		WithBackoff(time.Second, 10*time.Second)).(*implGenerator)

	wants := []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		10 * time.Second,
		10 * time.Second,
	}
	for i, want := range wants {
		if got := g.backoffDelay(i + 1); got != want {
			t.Errorf("backoffDelay(%d) = %s, want %s", i+1, got, want)
		}
	}
}
