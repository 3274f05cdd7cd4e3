package memo

import "sync"

// Store is the interface for memoized result storage.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Errors: Get never errors; it returns (nil, false) on miss.
//   - Eviction: implementations are not required to evict; the default
//     store grows without bound.
type Store interface {
	// Get retrieves a stored result. Returns (nil, false) on miss.
	Get(key string) (any, bool)

	// Set stores a result under the key, replacing any existing entry.
	Set(key string, value any)

	// Delete removes an entry. Idempotent - no effect on miss.
	Delete(key string)

	// Len returns the current entry count.
	Len() int

	// Clear removes all entries.
	Clear()
}

// MemoryStore is an in-memory, unbounded Store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]any
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]any),
	}
}

// Get retrieves a stored result. Returns (nil, false) on miss.
func (s *MemoryStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[key]
	return value, ok
}

// Set stores a result under the key.
func (s *MemoryStore) Set(key string, value any) {
	s.mu.Lock()
	s.entries[key] = value
	s.mu.Unlock()
}

// Delete removes an entry. Idempotent - no effect on miss.
func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Len returns the current entry count.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear removes all entries.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]any)
	s.mu.Unlock()
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
