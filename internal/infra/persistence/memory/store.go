// Package memory keeps saved model state in process memory.
package memory

import (
	"context"
	"sort"
	"sync"

	"energyport/internal/infra/persistence"
)

// Store is an in-memory model state store. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	models map[string]persistence.Buckets
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{models: make(map[string]persistence.Buckets)}
}

// Save replaces the state stored under key.
func (s *Store) Save(ctx context.Context, key string, buckets persistence.Buckets) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := persistence.CheckKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models[key] = buckets.Clone()
	return nil
}

// Load returns a copy of the state stored under key.
func (s *Store) Load(ctx context.Context, key string) (persistence.Buckets, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	buckets, ok := s.models[key]
	if !ok {
		return nil, persistence.NotFound(key)
	}
	return buckets.Clone(), nil
}

// Keys returns the stored model keys in sorted order.
func (s *Store) Keys(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.models))
	for key := range s.models {
		out = append(out, key)
	}
	sort.Strings(out)
	return out, nil
}

// Delete removes the state stored under key and reports whether it existed.
func (s *Store) Delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.models[key]
	delete(s.models, key)
	return ok, nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }
