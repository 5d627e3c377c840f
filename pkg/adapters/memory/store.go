package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/epigraph/pkg/domain"
)

// Store implements ports.ModelStore in memory.
// Safe for concurrent use. Models are immutable, so they are shared rather than copied.
type Store struct {
	data map[string]*domain.Model
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Model),
	}
}

// Save keeps the model in memory.
func (s *Store) Save(ctx context.Context, key string, model *domain.Model) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = model
	return nil
}

// Load retrieves the model from memory.
func (s *Store) Load(ctx context.Context, key string) (*domain.Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	model, ok := s.data[key]
	if !ok {
		return nil, domain.ErrModelNotFound
	}
	return model, nil
}

// Delete removes the model.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns the stored keys in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
