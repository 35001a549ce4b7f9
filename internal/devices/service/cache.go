package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"fixserve_backend/platform/logger"
)

const poolKeyPrefix = "devicepool:"

// PoolCache is a read-through Redis cache over the device pool lookup, the
// hottest query in the system: every order creation and every decline resolves
// a pool. Cache failures degrade to the database, never to an error.
type PoolCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewPoolCache creates a pool cache. A nil client disables caching.
func NewPoolCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *PoolCache {
	return &PoolCache{client: client, ttl: ttl, log: log}
}

func poolKey(name, serviceMode string) string {
	return poolKeyPrefix + name + ":" + serviceMode
}

// Get returns the cached pool for the key, or ok=false on miss or error.
func (c *PoolCache) Get(ctx context.Context, name, serviceMode string) ([]uuid.UUID, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, poolKey(name, serviceMode)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("device pool cache read failed", "error", err)
		}
		return nil, false
	}

	var ids []uuid.UUID
	if err := json.Unmarshal(raw, &ids); err != nil {
		c.log.Warn("device pool cache entry corrupt", "key", poolKey(name, serviceMode), "error", err)
		return nil, false
	}
	return ids, true
}

// Set stores the pool under the key with the configured TTL.
func (c *PoolCache) Set(ctx context.Context, name, serviceMode string, ids []uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(ids)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, poolKey(name, serviceMode), raw, c.ttl).Err(); err != nil {
		c.log.Warn("device pool cache write failed", "error", err)
	}
}

// Invalidate drops the cached pool after a catalog change.
func (c *PoolCache) Invalidate(ctx context.Context, name, serviceMode string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, poolKey(name, serviceMode)).Err(); err != nil {
		c.log.Warn("device pool cache invalidation failed", "error", err)
	}
}
