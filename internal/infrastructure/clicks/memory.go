package clicks

import (
	"context"
	"sync"
)

// MemoryStore is a thread-safe in-memory click counter keyed by product
// identity. It backs the popularity sort; counts reset on process restart,
// which is acceptable for a display-ordering signal.
type MemoryStore struct {
	counts map[string]int64
	mutex  sync.RWMutex
}

// NewMemoryStore creates a new in-memory click store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		counts: make(map[string]int64),
	}
}

// Increment adds one click for key and returns the new total.
func (s *MemoryStore) Increment(ctx context.Context, key string) (int64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.counts[key]++
	return s.counts[key], nil
}

// Count returns the current click total for key; zero when never clicked.
func (s *MemoryStore) Count(ctx context.Context, key string) (int64, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.counts[key], nil
}

// Size returns the number of tracked keys (for debugging/monitoring)
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.counts)
}
