package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishanichuri/portfolio/internal/projects/domain"
)

func sampleInput(id string, status domain.Status, sortOrder int) domain.ProjectInput {
	return domain.ProjectInput{
		ProjectID:   id,
		Title:       "Project " + id,
		Description: "Description for " + id,
		Tags:        []string{"go"},
		Category:    domain.CategoryPersonal,
		ProjectDate: "2026-01-10",
		Status:      status,
		SortOrder:   sortOrder,
	}
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	repo := NewMemoryRepository().WithClock(fixedClock(created))

	t.Run("create fills defaults", func(t *testing.T) {
		in := sampleInput("a", "", 1)
		rec, err := repo.Create(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDraft, rec.Status)
		assert.Equal(t, created, rec.CreatedAt)
		assert.NotNil(t, rec.Images)
		assert.NotNil(t, rec.Extra)
	})

	t.Run("duplicate id conflicts", func(t *testing.T) {
		_, err := repo.Create(ctx, sampleInput("a", domain.StatusDraft, 1))
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("list filters and sorts", func(t *testing.T) {
		_, err := repo.Create(ctx, sampleInput("b", domain.StatusPublished, 9))
		require.NoError(t, err)
		_, err = repo.Create(ctx, sampleInput("c", domain.StatusPublished, 3))
		require.NoError(t, err)

		all, err := repo.List(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 3)

		published, err := repo.List(ctx, domain.StatusPublished)
		require.NoError(t, err)
		require.Len(t, published, 2)
		assert.Equal(t, "b", published[0].ProjectID)
		assert.Equal(t, "c", published[1].ProjectID)
	})

	t.Run("update applies patch", func(t *testing.T) {
		later := created.Add(time.Hour)
		repo.WithClock(fixedClock(later))
		status := domain.StatusPublished
		rec, err := repo.Update(ctx, "a", domain.ProjectPatch{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPublished, rec.Status)
		assert.Equal(t, created, rec.CreatedAt)
		assert.Equal(t, later, rec.UpdatedAt)

		_, err = repo.Update(ctx, "missing", domain.ProjectPatch{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("delete reports whether a record went away", func(t *testing.T) {
		deleted, err := repo.Delete(ctx, "c")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, "c")
		require.NoError(t, err)
		assert.False(t, deleted)

		_, err = repo.Get(ctx, "c")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
