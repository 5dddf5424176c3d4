// Package markers persists small client-local flags, such as the
// once-per-day view markers written by the site client.
package markers

import (
	"context"
	"sync"
)

// Store is a set of string keys.
type Store interface {
	Has(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key string) error
}

// MemoryStore keeps markers for the lifetime of the process.
type MemoryStore struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{keys: make(map[string]struct{})}
}

func (m *MemoryStore) Has(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.keys[key]
	return ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[key] = struct{}{}
	return nil
}
