package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ishanichuri/portfolio/internal/logging"
	"github.com/ishanichuri/portfolio/internal/projects/domain"
)

const (
	publishedKey  = "portfolio:projects:published"
	// bumped on every write; a warm that started before the bump is dropped
	generationKey = "portfolio:projects:published:gen"
)

// CachedRepository serves the published list from Redis and drops the cached
// copy whenever a write goes through. Every other call passes straight through.
type CachedRepository struct {
	Repository
	rdb *redis.Client
	ttl time.Duration
	key string
	gen string
}

func NewCachedRepository(inner Repository, rdb *redis.Client, ttl time.Duration) *CachedRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedRepository{Repository: inner, rdb: rdb, ttl: ttl, key: publishedKey, gen: generationKey}
}

func (c *CachedRepository) List(ctx context.Context, status domain.Status) ([]domain.ProjectRecord, error) {
	if status != domain.StatusPublished {
		return c.Repository.List(ctx, status)
	}

	raw, err := c.rdb.Get(ctx, c.key).Bytes()
	switch {
	case err == nil:
		var items []domain.ProjectRecord
		if jerr := json.Unmarshal(raw, &items); jerr == nil {
			return items, nil
		}
		logging.Op(ctx, "cache_read").Warn("discarding unreadable cache entry")
	case !errors.Is(err, redis.Nil):
		// redis down: serve from the store
		logging.Op(ctx, "cache_read").WithError(err).Warn("cache unavailable")
	}

	return c.Warm(ctx)
}

// Warm reloads the published list from the store into Redis and returns it.
// The cache is only filled when no write landed between the read and the SET.
func (c *CachedRepository) Warm(ctx context.Context) ([]domain.ProjectRecord, error) {
	var (
		items   []domain.ProjectRecord
		loaded  bool
		listErr error
	)
	err := c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		items, listErr = c.Repository.List(ctx, domain.StatusPublished)
		loaded = true
		if listErr != nil {
			return listErr
		}
		raw, err := json.Marshal(items)
		if err != nil {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key, raw, c.ttl)
			return nil
		})
		return err
	}, c.gen)

	switch {
	case listErr != nil:
		return nil, listErr
	case !loaded:
		// redis refused the WATCH before the store was read
		logging.Op(ctx, "cache_write").WithError(err).Warn("cache unavailable")
		return c.Repository.List(ctx, domain.StatusPublished)
	case errors.Is(err, redis.TxFailedErr):
		logging.Op(ctx, "cache_write").Debug("write raced the warm, cache left empty")
	case err != nil:
		logging.Op(ctx, "cache_write").WithError(err).Warn("cache write failed")
	}
	return items, nil
}

func (c *CachedRepository) Create(ctx context.Context, in domain.ProjectInput) (*domain.ProjectRecord, error) {
	rec, err := c.Repository.Create(ctx, in)
	if err == nil {
		c.invalidate(ctx)
	}
	return rec, err
}

func (c *CachedRepository) Update(ctx context.Context, projectID string, patch domain.ProjectPatch) (*domain.ProjectRecord, error) {
	rec, err := c.Repository.Update(ctx, projectID, patch)
	if err == nil {
		c.invalidate(ctx)
	}
	return rec, err
}

func (c *CachedRepository) Delete(ctx context.Context, projectID string) (bool, error) {
	deleted, err := c.Repository.Delete(ctx, projectID)
	if err == nil && deleted {
		c.invalidate(ctx)
	}
	return deleted, err
}

func (c *CachedRepository) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return err
	}
	return c.Repository.Ping(ctx)
}

func (c *CachedRepository) invalidate(ctx context.Context) {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.gen)
		pipe.Del(ctx, c.key)
		return nil
	})
	if err != nil {
		logging.Op(ctx, "cache_invalidate").WithError(err).Warn("cache invalidate failed")
	}
}
