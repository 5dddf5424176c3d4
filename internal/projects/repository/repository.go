package repository

import (
	"context"
	"time"

	"github.com/ishanichuri/portfolio/internal/projects/domain"
)

// Repository stores project records. List results are ordered with domain.SortProjects.
type Repository interface {
	List(ctx context.Context, status domain.Status) ([]domain.ProjectRecord, error)
	Get(ctx context.Context, projectID string) (*domain.ProjectRecord, error)
	Create(ctx context.Context, in domain.ProjectInput) (*domain.ProjectRecord, error)
	Update(ctx context.Context, projectID string, patch domain.ProjectPatch) (*domain.ProjectRecord, error)
	Delete(ctx context.Context, projectID string) (bool, error)
	Ping(ctx context.Context) error
}

// Clock lets tests pin the timestamps written by repositories.
type Clock func() time.Time

func newRecord(in domain.ProjectInput, now time.Time) domain.ProjectRecord {
	if in.Status == "" {
		in.Status = domain.StatusDraft
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}
	if in.Images == nil {
		in.Images = []domain.ProjectImage{}
	}
	if in.Extra == nil {
		in.Extra = map[string]any{}
	}
	return domain.ProjectRecord{ProjectInput: in, CreatedAt: now, UpdatedAt: now}
}

func utcNow() time.Time {
	return time.Now().UTC()
}
