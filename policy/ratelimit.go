package policy

import (
	"context"
	"sync"
	"time"

	"github.com/jonwraymond/callops/call"
)

// RateLimitConfig configures the sliding-window rate limiter.
type RateLimitConfig struct {
	// MaxCalls is the maximum number of invocations allowed per window.
	// Default: 100
	MaxCalls int

	// Window is the trailing interval over which calls are counted.
	// Default: 1 second
	Window time.Duration

	// Now is the clock source used for window computations.
	// Default: time.Now
	Now func() time.Time
}

// RateLimiter implements a sliding-window counter: an invocation is
// admitted when fewer than MaxCalls invocations were accepted within the
// trailing Window. Bursts up to MaxCalls are allowed at window
// boundaries; this is not a token bucket.
type RateLimiter struct {
	config RateLimitConfig

	mu     sync.Mutex
	stamps []time.Time
}

// NewRateLimiter creates a new sliding-window rate limiter.
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	// Apply defaults
	if config.MaxCalls <= 0 {
		config.MaxCalls = 100
	}
	if config.Window <= 0 {
		config.Window = time.Second
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	return &RateLimiter{config: config}
}

// Allow reports whether a call is admitted under the rate limit and
// records it when admitted. Timestamps older than the window are pruned
// before the admission check.
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.config.Now()
	rl.pruneLocked(now)

	if len(rl.stamps) >= rl.config.MaxCalls {
		return false
	}

	rl.stamps = append(rl.stamps, now)
	return true
}

// Active returns the number of admitted calls still inside the window.
func (rl *RateLimiter) Active() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.pruneLocked(rl.config.Now())
	return len(rl.stamps)
}

// Reset clears all recorded call timestamps.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.stamps = nil
}

// Config returns the rate limiter configuration.
func (rl *RateLimiter) Config() RateLimitConfig {
	return rl.config
}

// pruneLocked drops timestamps that have fallen out of the window.
// Stamps are appended in time order, so the first retained index is the
// new start of the slice.
func (rl *RateLimiter) pruneLocked(now time.Time) {
	cutoff := now.Add(-rl.config.Window)

	keep := 0
	for keep < len(rl.stamps) && !rl.stamps[keep].After(cutoff) {
		keep++
	}
	if keep > 0 {
		rl.stamps = append(rl.stamps[:0], rl.stamps[keep:]...)
	}
}

// Wrap produces a Callable that rejects invocations over the limit with
// a *RateLimitError, without invoking the inner callable.
func (rl *RateLimiter) Wrap(inner call.Callable) call.Callable {
	return &rateLimited{limiter: rl, inner: inner}
}

type rateLimited struct {
	limiter *RateLimiter
	inner   call.Callable
}

func (c *rateLimited) Meta() call.Meta {
	return c.inner.Meta()
}

func (c *rateLimited) Invoke(ctx context.Context, args call.Args) (any, error) {
	if !c.limiter.Allow() {
		return nil, &RateLimitError{
			Limit:  c.limiter.config.MaxCalls,
			Window: c.limiter.config.Window,
		}
	}
	return c.inner.Invoke(ctx, args)
}
