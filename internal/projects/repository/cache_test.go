package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishanichuri/portfolio/internal/projects/domain"
)

// countingRepo counts List calls that reach the store.
type countingRepo struct {
	Repository
	lists int
}

func (c *countingRepo) List(ctx context.Context, status domain.Status) ([]domain.ProjectRecord, error) {
	c.lists++
	return c.Repository.List(ctx, status)
}

func setupCache(t *testing.T) (*CachedRepository, *countingRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	inner := &countingRepo{Repository: NewMemoryRepository()}
	return NewCachedRepository(inner, rdb, time.Minute), inner, mr
}

func TestCachedRepository_ServesPublishedFromRedis(t *testing.T) {
	ctx := context.Background()
	cache, inner, mr := setupCache(t)

	_, err := cache.Create(ctx, sampleInput("a", domain.StatusPublished, 1))
	require.NoError(t, err)

	first, err := cache.List(ctx, domain.StatusPublished)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.True(t, mr.Exists(publishedKey))
	assert.Equal(t, time.Minute, mr.TTL(publishedKey))

	second, err := cache.List(ctx, domain.StatusPublished)
	require.NoError(t, err)
	assert.Equal(t, first[0].ProjectID, second[0].ProjectID)
	assert.Equal(t, 1, inner.lists, "second read should hit redis")

	t.Run("drafts bypass the cache", func(t *testing.T) {
		_, err := cache.List(ctx, domain.StatusDraft)
		require.NoError(t, err)
		assert.Equal(t, 2, inner.lists)
	})
}

func TestCachedRepository_WritesInvalidate(t *testing.T) {
	ctx := context.Background()
	cache, _, mr := setupCache(t)

	_, err := cache.Create(ctx, sampleInput("a", domain.StatusPublished, 1))
	require.NoError(t, err)
	_, err = cache.Warm(ctx)
	require.NoError(t, err)
	require.True(t, mr.Exists(publishedKey))

	status := domain.StatusDraft
	_, err = cache.Update(ctx, "a", domain.ProjectPatch{Status: &status})
	require.NoError(t, err)
	assert.False(t, mr.Exists(publishedKey))

	items, err := cache.List(ctx, domain.StatusPublished)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = cache.Create(ctx, sampleInput("b", domain.StatusPublished, 1))
	require.NoError(t, err)
	assert.False(t, mr.Exists(publishedKey))
}

func TestCachedRepository_FallsBackWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	cache, inner, mr := setupCache(t)

	_, err := cache.Create(ctx, sampleInput("a", domain.StatusPublished, 1))
	require.NoError(t, err)
	mr.Close()

	items, err := cache.List(ctx, domain.StatusPublished)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, inner.lists)
	assert.Error(t, cache.Ping(ctx))
}

// hookRepo runs afterList once, after the store has been read.
type hookRepo struct {
	Repository
	afterList func()
}

func (h *hookRepo) List(ctx context.Context, status domain.Status) ([]domain.ProjectRecord, error) {
	items, err := h.Repository.List(ctx, status)
	if h.afterList != nil {
		hook := h.afterList
		h.afterList = nil
		hook()
	}
	return items, err
}

func TestCachedRepository_WarmDoesNotRecacheRacedWrite(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	inner := &hookRepo{Repository: NewMemoryRepository()}
	cache := NewCachedRepository(inner, rdb, time.Minute)
	_, err := cache.Create(ctx, sampleInput("a", domain.StatusPublished, 1))
	require.NoError(t, err)

	inner.afterList = func() {
		deleted, err := cache.Delete(ctx, "a")
		require.NoError(t, err)
		require.True(t, deleted)
	}
	stale, err := cache.Warm(ctx)
	require.NoError(t, err)
	assert.Len(t, stale, 1, "warm returns what it read")
	assert.False(t, mr.Exists(publishedKey), "stale list must not be cached")

	items, err := cache.List(ctx, domain.StatusPublished)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.True(t, mr.Exists(publishedKey))
}
