package policy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonwraymond/callops/call"
)

func TestNewRetry(t *testing.T) {
	r := NewRetry(RetryConfig{})

	if r.config.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", r.config.MaxAttempts)
	}
	if r.config.InitialDelay != 100*time.Millisecond {
		t.Errorf("InitialDelay = %v, want 100ms", r.config.InitialDelay)
	}
	if r.config.MaxDelay != 30*time.Second {
		t.Errorf("MaxDelay = %v, want 30s", r.config.MaxDelay)
	}
	if r.config.Multiplier != 2.0 {
		t.Errorf("Multiplier = %f, want 2.0", r.config.Multiplier)
	}
}

func TestRetry_SuccessOnFirstAttempt(t *testing.T) {
	r := NewRetry(RetryConfig{MaxAttempts: 3})

	attempts := 0
	wrapped := r.Wrap(call.NewFunc(call.Meta{Name: "work"}, func(ctx context.Context, args call.Args) (any, error) {
		attempts++
		return "done", nil
	}))

	result, err := wrapped.Invoke(context.Background(), call.Args{})
	if err != nil {
		t.Errorf("Invoke() error = %v", err)
	}
	if result != "done" {
		t.Errorf("Invoke() = %v, want %q", result, "done")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestRetry_SuccessOnRetry(t *testing.T) {
	r := NewRetry(RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
	})

	attempts := 0
	testErr := errors.New("test error")

	wrapped := r.Wrap(call.NewFunc(call.Meta{Name: "work"}, func(ctx context.Context, args call.Args) (any, error) {
		attempts++
		if attempts < 3 {
			return nil, testErr
		}
		return "recovered", nil
	}))

	result, err := wrapped.Invoke(context.Background(), call.Args{})
	if err != nil {
		t.Errorf("Invoke() error = %v", err)
	}
	if result != "recovered" {
		t.Errorf("Invoke() = %v, want %q", result, "recovered")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestRetry_ExhaustedAttempts(t *testing.T) {
	r := NewRetry(RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
	})

	attempts := 0
	testErr := errors.New("persistent error")

	wrapped := r.Wrap(call.NewFunc(call.Meta{Name: "work"}, func(ctx context.Context, args call.Args) (any, error) {
		attempts++
		return nil, testErr
	}))

	_, err := wrapped.Invoke(context.Background(), call.Args{})

	var exhausted *RetryExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("Invoke() error = %v, want *RetryExhaustedError", err)
	}
	if exhausted.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", exhausted.Attempts)
	}
	// Last error identity is preserved through Unwrap.
	if !errors.Is(err, testErr) {
		t.Errorf("errors.Is(err, testErr) = false, want true")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestRetry_SingleAttemptIsPassThrough(t *testing.T) {
	r := NewRetry(RetryConfig{MaxAttempts: 1, OnRetry: func(attempt int, err error, delay time.Duration) {
		t.Error("OnRetry should never fire with MaxAttempts=1")
	}})

	attempts := 0
	testErr := errors.New("boom")

	wrapped := r.Wrap(call.NewFunc(call.Meta{Name: "work"}, func(ctx context.Context, args call.Args) (any, error) {
		attempts++
		return nil, testErr
	}))

	start := time.Now()
	_, err := wrapped.Invoke(context.Background(), call.Args{})
	elapsed := time.Since(start)

	if !errors.Is(err, testErr) {
		t.Errorf("Invoke() error = %v, want wrapped %v", err, testErr)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
	if elapsed > 50*time.Millisecond {
		t.Errorf("elapsed = %v, expected no retry delay", elapsed)
	}
}

func TestRetry_NonRetryableError(t *testing.T) {
	fatal := errors.New("fatal")
	r := NewRetry(RetryConfig{
		MaxAttempts:  5,
		InitialDelay: time.Millisecond,
		RetryIf:      func(err error) bool { return !errors.Is(err, fatal) },
	})

	attempts := 0
	wrapped := r.Wrap(call.NewFunc(call.Meta{Name: "work"}, func(ctx context.Context, args call.Args) (any, error) {
		attempts++
		return nil, fatal
	}))

	_, err := wrapped.Invoke(context.Background(), call.Args{})
	if err != fatal {
		t.Errorf("Invoke() error = %v, want %v unchanged", err, fatal)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestRetry_ContextCancellation(t *testing.T) {
	r := NewRetry(RetryConfig{
		MaxAttempts:  10,
		InitialDelay: 100 * time.Millisecond,
		Strategy:     BackoffConstant,
	})

	ctx, cancel := context.WithCancel(context.Background())
	testErr := errors.New("test error")

	wrapped := r.Wrap(call.NewFunc(call.Meta{Name: "work"}, func(ctx context.Context, args call.Args) (any, error) {
		return nil, testErr
	}))

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := wrapped.Invoke(ctx, call.Args{})
	if err != context.Canceled {
		t.Errorf("Invoke() error = %v, want context.Canceled", err)
	}
}

func TestRetry_OnRetryCallback(t *testing.T) {
	var retryAttempts []int

	r := NewRetry(RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		OnRetry: func(attempt int, err error, delay time.Duration) {
			retryAttempts = append(retryAttempts, attempt)
		},
	})

	wrapped := r.Wrap(call.NewFunc(call.Meta{Name: "work"}, func(ctx context.Context, args call.Args) (any, error) {
		return nil, errors.New("always fails")
	}))

	_, _ = wrapped.Invoke(context.Background(), call.Args{})

	if len(retryAttempts) != 2 {
		t.Fatalf("OnRetry fired %d times, want 2", len(retryAttempts))
	}
	if retryAttempts[0] != 1 || retryAttempts[1] != 2 {
		t.Errorf("retryAttempts = %v, want [1 2]", retryAttempts)
	}
}

func TestRetry_CalculateDelay(t *testing.T) {
	tests := []struct {
		name    string
		config  RetryConfig
		attempt int
		want    time.Duration
	}{
		{"constant", RetryConfig{Strategy: BackoffConstant, InitialDelay: 10 * time.Millisecond}, 3, 10 * time.Millisecond},
		{"linear", RetryConfig{Strategy: BackoffLinear, InitialDelay: 10 * time.Millisecond}, 3, 30 * time.Millisecond},
		{"exponential", RetryConfig{Strategy: BackoffExponential, InitialDelay: 10 * time.Millisecond, Multiplier: 2.0}, 3, 40 * time.Millisecond},
		{"capped", RetryConfig{Strategy: BackoffExponential, InitialDelay: 10 * time.Millisecond, Multiplier: 2.0, MaxDelay: 15 * time.Millisecond}, 3, 15 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRetry(tt.config)
			if got := r.calculateDelay(tt.attempt); got != tt.want {
				t.Errorf("calculateDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
			}
		})
	}
}

func TestRetry_PreservesMetadata(t *testing.T) {
	r := NewRetry(RetryConfig{})
	wrapped := r.Wrap(call.NewFunc(call.Meta{Name: "fetch", Doc: "fetches things"}, nil))

	if wrapped.Meta().Name != "fetch" {
		t.Errorf("Meta().Name = %q, want %q", wrapped.Meta().Name, "fetch")
	}
	if wrapped.Meta().Doc != "fetches things" {
		t.Errorf("Meta().Doc = %q, want %q", wrapped.Meta().Doc, "fetches things")
	}
}
