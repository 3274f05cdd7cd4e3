package policy

import (
	"errors"
	"testing"
	"time"
)

func TestRetryExhaustedError(t *testing.T) {
	inner := errors.New("connection refused")
	err := &RetryExhaustedError{Attempts: 3, Err: inner}

	want := "policy: retry exhausted after 3 attempts: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is should reach the wrapped error")
	}
}

func TestRateLimitError(t *testing.T) {
	err := &RateLimitError{Limit: 3, Window: 10 * time.Second}

	want := "policy: rate limit exceeded: 3 calls per 10s"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestSentinelErrors_Distinct(t *testing.T) {
	sentinels := []error{ErrCircuitOpen, ErrBulkheadFull, ErrTimeout}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v should not match %v", a, b)
			}
		}
	}
}
