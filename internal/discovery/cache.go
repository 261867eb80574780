package discovery

import (
	"context"
	"log/slog"
	"time"

	"voyager-server/internal/shared/redis"
)

const (
	cacheKeyPrefix = "discovery:"
	cacheTTL       = 12 * time.Hour
)

// CachedStore layers a redis read-through over another Store. Membership
// checks dominate the workload (every sweep checks every in-range object),
// so only Has is cached. A cache miss or redis failure falls through to the
// underlying store: the cache is optional, never authoritative.
type CachedStore struct {
	inner  Store
	client *redis.Client
	logger *slog.Logger
}

func NewCachedStore(inner Store, client *redis.Client, logger *slog.Logger) *CachedStore {
	return &CachedStore{
		inner:  inner,
		client: client,
		logger: logger.With("component", "discovery_cache"),
	}
}

func (c *CachedStore) Save(ctx context.Context, rec Record) error {
	if err := c.inner.Save(ctx, rec); err != nil {
		return err
	}
	if c.client != nil {
		if err := c.client.Set(ctx, cacheKeyPrefix+rec.ObjectID, "1", cacheTTL).Err(); err != nil {
			c.logger.Warn("Failed to cache discovery", "object_id", rec.ObjectID, "error", err)
		}
	}
	return nil
}

func (c *CachedStore) Has(ctx context.Context, objectID string) (bool, error) {
	if c.client != nil {
		if val, err := c.client.Get(ctx, cacheKeyPrefix+objectID).Result(); err == nil && val == "1" {
			return true, nil
		}
	}

	found, err := c.inner.Has(ctx, objectID)
	if err != nil {
		return false, err
	}
	if found && c.client != nil {
		if err := c.client.Set(ctx, cacheKeyPrefix+objectID, "1", cacheTTL).Err(); err != nil {
			c.logger.Warn("Failed to backfill discovery cache", "object_id", objectID, "error", err)
		}
	}
	return found, nil
}

func (c *CachedStore) List(ctx context.Context) ([]Record, error) {
	return c.inner.List(ctx)
}
