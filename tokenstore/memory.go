package tokenstore

import (
	"context"
	"sync"
)

// MemoryStore implements Store with an in-process copy of the record.
// It is safe for concurrent use.
type MemoryStore struct {
	mu  sync.RWMutex
	rec *Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save stores a copy of the record.
func (s *MemoryStore) Save(ctx context.Context, rec *Record) error {
	if rec == nil {
		return ErrNilRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *rec
	s.rec = &clone
	return nil
}

// Load returns a copy of the stored record, or (nil, nil) when empty.
func (s *MemoryStore) Load(ctx context.Context) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.rec == nil {
		return nil, nil
	}
	clone := *s.rec
	return &clone, nil
}

// Delete clears the stored record.
func (s *MemoryStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rec = nil
	return nil
}

// CheckHealth always succeeds for the in-memory store.
func (s *MemoryStore) CheckHealth(ctx context.Context) error {
	return nil
}
