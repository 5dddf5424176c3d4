package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ishanichuri/portfolio/internal/logging"
	"github.com/ishanichuri/portfolio/internal/projects/domain"
	"github.com/ishanichuri/portfolio/internal/projects/repository"
)

// ErrInvalidStatus is returned by SetStatus for anything but draft or published.
var ErrInvalidStatus = errors.New("status must be draft or published")

// ProjectService applies the project rules on top of a repository.
type ProjectService struct {
	repo repository.Repository
	now  func() time.Time
}

func NewProjectService(repo repository.Repository) *ProjectService {
	return &ProjectService{repo: repo, now: time.Now}
}

// List returns the records matching filter, ordered for display.
func (s *ProjectService) List(ctx context.Context, filter domain.StatusFilter) ([]domain.ProjectRecord, error) {
	items, err := s.repo.List(ctx, filter.Status())
	if err != nil {
		logging.Op(ctx, "list_projects").WithError(err).Error("list failed")
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return items, nil
}

// Get returns one record. Drafts are reported as missing unless includeDrafts is set.
func (s *ProjectService) Get(ctx context.Context, projectID string, includeDrafts bool) (*domain.ProjectRecord, error) {
	rec, err := s.repo.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if rec.Status != domain.StatusPublished && !includeDrafts {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

// Create validates in, assigns an id when none was sent and stores the record.
func (s *ProjectService) Create(ctx context.Context, in domain.ProjectInput) (*domain.ProjectRecord, error) {
	in.ProjectID = strings.TrimSpace(in.ProjectID)
	if in.ProjectID == "" {
		in.ProjectID = domain.NewProjectID(s.now())
	}
	if in.Status == "" {
		in.Status = domain.StatusDraft
	}
	if err := domain.ValidateCreate(in); err != nil {
		return nil, err
	}

	rec, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	logging.Op(ctx, "create_project").WithField("project_id", rec.ProjectID).Info("project created")
	return rec, nil
}

// Update applies the fields present in patch.
func (s *ProjectService) Update(ctx context.Context, projectID string, patch domain.ProjectPatch) (*domain.ProjectRecord, error) {
	if err := domain.ValidatePatch(patch); err != nil {
		return nil, err
	}
	rec, err := s.repo.Update(ctx, projectID, patch)
	if err != nil {
		return nil, err
	}
	logging.Op(ctx, "update_project").WithField("project_id", projectID).Info("project updated")
	return rec, nil
}

// SetStatus moves a record between draft and published.
func (s *ProjectService) SetStatus(ctx context.Context, projectID string, status domain.Status) (*domain.ProjectRecord, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	rec, err := s.repo.Update(ctx, projectID, domain.ProjectPatch{Status: &status})
	if err != nil {
		return nil, err
	}
	logging.Op(ctx, "set_status").WithFields(logrus.Fields{
		"project_id": projectID,
		"status":     status,
	}).Info("project status changed")
	return rec, nil
}

// Delete removes a record, returning domain.ErrNotFound when there was none.
func (s *ProjectService) Delete(ctx context.Context, projectID string) error {
	deleted, err := s.repo.Delete(ctx, projectID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	logging.Op(ctx, "delete_project").WithField("project_id", projectID).Info("project deleted")
	return nil
}

// Ping checks the backing store.
func (s *ProjectService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
