package cartstore

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-process Store used in tests and dev runs.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]string{}}
}

func memoryKey(venueID string, table int) string {
	return fmt.Sprintf("%s:%d", venueID, table)
}

func (s *MemoryStore) Save(ctx context.Context, venueID string, table int, payload string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[memoryKey(venueID, table)] = payload
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, venueID string, table int) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, ok := s.entries[memoryKey(venueID, table)]
	return payload, ok, nil
}

func (s *MemoryStore) Delete(ctx context.Context, venueID string, table int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, memoryKey(venueID, table))
	return nil
}
