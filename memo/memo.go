package memo

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/callops/call"
)

// Config configures a Memoizer.
type Config struct {
	// Keyer derives cache keys from arguments.
	// Default: DefaultKeyer
	Keyer Keyer

	// Store holds computed results.
	// Default: a fresh unbounded MemoryStore
	Store Store
}

// Stats is a snapshot of memoizer counters.
type Stats struct {
	// Entries is the current number of stored results.
	Entries int

	// Hits is the number of invocations answered from the store.
	Hits int64

	// Misses is the number of invocations that reached the inner callable.
	Misses int64
}

// Memoizer caches results of callable invocations by canonical argument
// key. Results for a previously-seen key are never recomputed within the
// memoizer's lifetime; failed computations leave no entry.
type Memoizer struct {
	keyer Keyer
	store Store
	group singleflight.Group

	mu     sync.Mutex
	hits   int64
	misses int64
}

// New creates a new Memoizer.
func New(config Config) *Memoizer {
	// Apply defaults
	if config.Keyer == nil {
		config.Keyer = NewDefaultKeyer()
	}
	if config.Store == nil {
		config.Store = NewMemoryStore()
	}

	return &Memoizer{
		keyer: config.Keyer,
		store: config.Store,
	}
}

// Len returns the current entry count.
func (m *Memoizer) Len() int {
	return m.store.Len()
}

// Clear removes all stored results and resets the hit/miss counters.
func (m *Memoizer) Clear() {
	m.store.Clear()
	m.mu.Lock()
	m.hits = 0
	m.misses = 0
	m.mu.Unlock()
}

// Stats returns a snapshot of the memoizer counters.
func (m *Memoizer) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Stats{
		Entries: m.store.Len(),
		Hits:    m.hits,
		Misses:  m.misses,
	}
}

// Wrap produces a Callable that memoizes the inner callable's results.
func (m *Memoizer) Wrap(inner call.Callable) call.Callable {
	return &memoized{memo: m, inner: inner}
}

type memoized struct {
	memo  *Memoizer
	inner call.Callable
}

func (c *memoized) Meta() call.Meta {
	return c.inner.Meta()
}

func (c *memoized) Invoke(ctx context.Context, args call.Args) (any, error) {
	key, err := c.memo.keyer.Key(c.inner.Meta(), args)
	if err != nil {
		// Key derivation failed - invoke without memoization.
		return c.inner.Invoke(ctx, args)
	}

	if cached, ok := c.memo.store.Get(key); ok {
		c.memo.recordHit()
		return cached, nil
	}

	c.memo.recordMiss()

	// Collapse concurrent computations for the same key into one.
	result, err, _ := c.memo.group.Do(key, func() (any, error) {
		if cached, ok := c.memo.store.Get(key); ok {
			return cached, nil
		}

		result, err := c.inner.Invoke(ctx, args)
		if err != nil {
			// Failures are not cached; the next identical
			// invocation re-attempts the computation.
			return nil, err
		}

		c.memo.store.Set(key, result)
		return result, nil
	})

	return result, err
}

func (m *Memoizer) recordHit() {
	m.mu.Lock()
	m.hits++
	m.mu.Unlock()
}

func (m *Memoizer) recordMiss() {
	m.mu.Lock()
	m.misses++
	m.mu.Unlock()
}
