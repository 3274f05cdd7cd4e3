package policy

import (
	"context"
	"sync"
	"time"

	"github.com/jonwraymond/callops/call"
)

// TallyConfig configures the tally policy.
type TallyConfig struct {
	// Now is the clock source used for duration measurement.
	// Default: time.Now
	Now func() time.Time
}

// Tally accumulates running statistics across invocations: total call
// count, failure count, and total/average duration.
type Tally struct {
	config TallyConfig

	mu       sync.Mutex
	calls    int64
	failures int64
	total    time.Duration
}

// TallyStats is a snapshot of accumulated statistics.
type TallyStats struct {
	Calls    int64
	Failures int64
	Total    time.Duration
	Average  time.Duration
}

// NewTally creates a new tally policy.
func NewTally(config TallyConfig) *Tally {
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Tally{config: config}
}

// Stats returns a snapshot of the accumulated statistics.
func (t *Tally) Stats() TallyStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats := TallyStats{
		Calls:    t.calls,
		Failures: t.failures,
		Total:    t.total,
	}
	if t.calls > 0 {
		stats.Average = t.total / time.Duration(t.calls)
	}
	return stats
}

// Reset clears the accumulated statistics.
func (t *Tally) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = 0
	t.failures = 0
	t.total = 0
}

// Wrap produces a Callable that records duration and outcome of every
// invocation. Results and errors pass through unchanged.
func (t *Tally) Wrap(inner call.Callable) call.Callable {
	return &tallied{tally: t, inner: inner}
}

type tallied struct {
	tally *Tally
	inner call.Callable
}

func (c *tallied) Meta() call.Meta {
	return c.inner.Meta()
}

func (c *tallied) Invoke(ctx context.Context, args call.Args) (any, error) {
	start := c.tally.config.Now()
	result, err := c.inner.Invoke(ctx, args)
	elapsed := c.tally.config.Now().Sub(start)

	c.tally.mu.Lock()
	c.tally.calls++
	if err != nil {
		c.tally.failures++
	}
	c.tally.total += elapsed
	c.tally.mu.Unlock()

	return result, err
}
