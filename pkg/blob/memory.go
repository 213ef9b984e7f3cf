package blob

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

type memoryEntry struct {
	version int64
	payload []byte
}

// memoryStore keeps blobs in a map under a mutex. It backs tests and local
// runs that have no MongoDB around, with the same versioning contract.
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryStore() Store {
	return &memoryStore{entries: make(map[string]memoryEntry)}
}

func (s *memoryStore) Get(_ context.Context, key string, out any) (int64, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return 0, ErrNotFound
	}
	if err := json.Unmarshal(entry.payload, out); err != nil {
		return 0, fmt.Errorf("failed to decode blob %q: %w", key, err)
	}
	return entry.version, nil
}

func (s *memoryStore) CompareAndSet(_ context.Context, key string, value any, expectedVersion int64) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode blob %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := int64(0)
	if entry, ok := s.entries[key]; ok {
		current = entry.version
	}
	if current != expectedVersion {
		return ErrVersionConflict
	}
	s.entries[key] = memoryEntry{version: expectedVersion + 1, payload: payload}
	return nil
}

func (s *memoryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	return keys, nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Ping(context.Context) error {
	return nil
}
