package introspect

import (
	"errors"
	"sync"
)

// ErrSourceNotFound indicates the named stats source is not registered.
var ErrSourceNotFound = errors.New("introspect: source not found")

// Source exposes a named snapshot of runtime statistics.
//
// Contract:
// - Concurrency: Stats must be safe for concurrent use.
// - Errors: Stats must not panic; it returns a point-in-time snapshot.
type Source interface {
	// Name returns the unique source name.
	Name() string

	// Stats returns the current statistics snapshot.
	Stats() map[string]any
}

// SourceFunc adapts a name and a snapshot function to the Source interface.
type SourceFunc struct {
	name string
	fn   func() map[string]any
}

// NewSource creates a Source from a name and a snapshot function.
func NewSource(name string, fn func() map[string]any) *SourceFunc {
	return &SourceFunc{name: name, fn: fn}
}

// Name returns the source name.
func (s *SourceFunc) Name() string {
	return s.name
}

// Stats returns the snapshot produced by the underlying function.
func (s *SourceFunc) Stats() map[string]any {
	if s.fn == nil {
		return map[string]any{}
	}
	return s.fn()
}

// Registry holds named stats sources.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]Source
	order   []string // Maintains registration order
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]Source),
		order:   make([]string, 0),
	}
}

// Register adds a stats source to the registry. Registering the same
// name again replaces the previous source.
func (r *Registry) Register(src Source) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := src.Name()
	if _, exists := r.sources[name]; !exists {
		r.order = append(r.order, name)
	}
	r.sources[name] = src
}

// Unregister removes a stats source from the registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sources, name)

	// Remove from order
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Names returns the registered source names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Stats returns the snapshot of a single named source.
func (r *Registry) Stats(name string) (map[string]any, error) {
	r.mu.RLock()
	src, ok := r.sources[name]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrSourceNotFound
	}
	return src.Stats(), nil
}

// Snapshot returns the snapshots of all registered sources keyed by name.
func (r *Registry) Snapshot() map[string]map[string]any {
	r.mu.RLock()
	sources := make(map[string]Source, len(r.sources))
	for name, src := range r.sources {
		sources[name] = src
	}
	r.mu.RUnlock()

	out := make(map[string]map[string]any, len(sources))
	for name, src := range sources {
		out[name] = src.Stats()
	}
	return out
}

var _ Source = (*SourceFunc)(nil)
