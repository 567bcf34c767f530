package cache

import (
	"context"
	"sync"

	"github.com/Nixie-Tech-LLC/sakina/internal/model"
)

// MemoryStore keeps entries for the life of the process.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]model.CacheEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]model.CacheEntry)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (model.CacheEntry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return e, ok, nil
}

func (s *MemoryStore) Put(_ context.Context, entry model.CacheEntry) error {
	payload := make([]byte, len(entry.Payload))
	copy(payload, entry.Payload)
	entry.Payload = payload

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.Key] = entry
	return nil
}

// Size returns the number of stored entries.
func (s *MemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
