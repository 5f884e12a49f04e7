package store

import (
	"context"
	"sync"

	"github.com/ontiq/ontoscope/internal/domain"
)

// AssertionMemoryStore keeps assertions in process memory. Writes are
// serialized behind the write lock; reads see a consistent snapshot. This
// is the engine's default store when no database is configured.
type AssertionMemoryStore struct {
	mu         sync.RWMutex
	assertions map[string]domain.AssertedRole
}

func NewAssertionMemoryStore() *AssertionMemoryStore {
	return &AssertionMemoryStore{
		assertions: make(map[string]domain.AssertedRole),
	}
}

func (s *AssertionMemoryStore) Set(ctx context.Context, definitionID string, role *domain.AssertedRole) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assertions[definitionID] = *role
	return nil
}

func (s *AssertionMemoryStore) Get(ctx context.Context, definitionID string) (*domain.AssertedRole, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assertions[definitionID]
	if !ok {
		return nil, ErrNotFound
	}
	out := a
	return &out, nil
}

func (s *AssertionMemoryStore) Clear(ctx context.Context, definitionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assertions[definitionID]; !ok {
		return ErrNotFound
	}
	delete(s.assertions, definitionID)
	return nil
}

func (s *AssertionMemoryStore) All(ctx context.Context) (map[string]domain.AssertedRole, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.AssertedRole, len(s.assertions))
	for id, a := range s.assertions {
		out[id] = a
	}
	return out, nil
}

func (s *AssertionMemoryStore) ReplaceAll(ctx context.Context, assertions map[string]domain.AssertedRole) error {
	replacement := make(map[string]domain.AssertedRole, len(assertions))
	for id, a := range assertions {
		replacement[id] = a
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assertions = replacement
	return nil
}
