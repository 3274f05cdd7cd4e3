package policy

import (
	"context"
	"time"

	"github.com/jonwraymond/callops/call"
)

// TimeoutConfig configures the timeout policy.
type TimeoutConfig struct {
	// Timeout is the maximum duration for the invocation.
	// Default: 30 seconds
	Timeout time.Duration
}

// Timeout bounds invocation duration.
type Timeout struct {
	config TimeoutConfig
}

// NewTimeout creates a new timeout policy.
func NewTimeout(config TimeoutConfig) *Timeout {
	// Apply defaults
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &Timeout{config: config}
}

// Config returns the timeout configuration.
func (t *Timeout) Config() TimeoutConfig {
	return t.config
}

// Wrap produces a Callable whose invocations fail with ErrTimeout when
// the inner callable does not complete within the configured duration.
func (t *Timeout) Wrap(inner call.Callable) call.Callable {
	return &timeLimited{timeout: t, inner: inner}
}

type timeLimited struct {
	timeout *Timeout
	inner   call.Callable
}

type invokeOutcome struct {
	result any
	err    error
}

func (c *timeLimited) Meta() call.Meta {
	return c.inner.Meta()
}

func (c *timeLimited) Invoke(ctx context.Context, args call.Args) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout.config.Timeout)
	defer cancel()

	done := make(chan invokeOutcome, 1)

	go func() {
		result, err := c.inner.Invoke(ctx, args)
		done <- invokeOutcome{result: result, err: err}
	}()

	select {
	case out := <-done:
		return out.result, out.err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrTimeout
		}
		return nil, ctx.Err()
	}
}
