package credstore

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store for tests and ephemeral runs.
type MemoryStore struct {
	mu   sync.Mutex
	pair TokenPair
	set  bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, pair TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = pair
	s.set = true
	return nil
}

func (s *MemoryStore) Read(_ context.Context) (TokenPair, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set || s.pair.Access == "" || s.pair.Refresh == "" {
		return TokenPair{}, false, nil
	}
	return s.pair, true, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = TokenPair{}
	s.set = false
	return nil
}
