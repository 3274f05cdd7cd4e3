package policy

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for call policies.
var (
	// ErrCircuitOpen is returned when the circuit breaker is open.
	ErrCircuitOpen = errors.New("policy: circuit breaker is open")

	// ErrBulkheadFull is returned when the bulkhead is at capacity.
	ErrBulkheadFull = errors.New("policy: bulkhead at capacity")

	// ErrTimeout is returned when an invocation times out.
	ErrTimeout = errors.New("policy: invocation timed out")
)

// RetryExhaustedError is returned when all retry attempts fail. It wraps
// the last observed error, so errors.Is and errors.As reach the
// underlying failure.
type RetryExhaustedError struct {
	// Attempts is the number of invocations performed.
	Attempts int

	// Err is the error from the final attempt.
	Err error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("policy: retry exhausted after %d attempts: %v", e.Attempts, e.Err)
}

// Unwrap returns the final attempt's error.
func (e *RetryExhaustedError) Unwrap() error {
	return e.Err
}

// RateLimitError is returned when the sliding-window rate limit rejects
// an invocation. It carries the configured limit and window.
type RateLimitError struct {
	// Limit is the maximum number of calls allowed per window.
	Limit int

	// Window is the sliding window duration.
	Window time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("policy: rate limit exceeded: %d calls per %s", e.Limit, e.Window)
}
