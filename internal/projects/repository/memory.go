package repository

import (
	"context"
	"sync"

	"github.com/ishanichuri/portfolio/internal/projects/domain"
)

// MemoryRepository keeps projects in process memory. Used for local runs and tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]domain.ProjectRecord
	now   Clock
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]domain.ProjectRecord), now: utcNow}
}

// WithClock replaces the timestamp source.
func (r *MemoryRepository) WithClock(c Clock) *MemoryRepository {
	r.now = c
	return r
}

func (r *MemoryRepository) List(_ context.Context, status domain.Status) ([]domain.ProjectRecord, error) {
	r.mu.RLock()
	out := make([]domain.ProjectRecord, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	r.mu.RUnlock()

	out = domain.FilterByStatus(out, status)
	domain.SortProjects(out)
	return out, nil
}

func (r *MemoryRepository) Get(_ context.Context, projectID string) (*domain.ProjectRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[projectID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (r *MemoryRepository) Create(_ context.Context, in domain.ProjectInput) (*domain.ProjectRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[in.ProjectID]; exists {
		return nil, domain.ErrConflict
	}
	rec := newRecord(in, r.now())
	r.items[rec.ProjectID] = rec
	return &rec, nil
}

func (r *MemoryRepository) Update(_ context.Context, projectID string, patch domain.ProjectPatch) (*domain.ProjectRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[projectID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	updated := patch.Apply(existing, r.now())
	r.items[projectID] = updated
	return &updated, nil
}

func (r *MemoryRepository) Delete(_ context.Context, projectID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[projectID]; !ok {
		return false, nil
	}
	delete(r.items, projectID)
	return true, nil
}

func (r *MemoryRepository) Ping(context.Context) error { return nil }
