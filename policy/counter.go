package policy

import (
	"context"
	"sync"

	"github.com/jonwraymond/callops/call"
)

// Counter counts invocations of the callables it wraps. The count is an
// explicit, named operation on the policy instance rather than a field
// attached to the wrapped callable.
type Counter struct {
	mu    sync.Mutex
	count int64
}

// NewCounter creates a new call counter.
func NewCounter() *Counter {
	return &Counter{}
}

// Count returns the number of invocations observed so far.
func (c *Counter) Count() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Reset sets the count back to zero.
func (c *Counter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count = 0
}

// Wrap produces a Callable that increments the counter on every
// invocation, successful or not, before forwarding to the inner callable.
func (c *Counter) Wrap(inner call.Callable) call.Callable {
	return &counted{counter: c, inner: inner}
}

type counted struct {
	counter *Counter
	inner   call.Callable
}

func (w *counted) Meta() call.Meta {
	return w.inner.Meta()
}

func (w *counted) Invoke(ctx context.Context, args call.Args) (any, error) {
	w.counter.mu.Lock()
	w.counter.count++
	w.counter.mu.Unlock()

	return w.inner.Invoke(ctx, args)
}
