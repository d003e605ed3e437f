// Package cache provides a small read-through JSON cache over Redis for
// upstream query results. A nil or unreachable Redis degrades to no caching.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache wraps the shared Redis client for query caching.
type Cache struct {
	client *redis.Client
	logger *zap.Logger
}

// New creates a cache. client may be nil.
func New(client *redis.Client, logger *zap.Logger) *Cache {
	return &Cache{client: client, logger: logger}
}

// GetJSON loads the cached value for key into target. Returns false on miss
// or any storage failure.
func (c *Cache) GetJSON(ctx context.Context, key string, target any) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		c.logger.Debug("cache entry unreadable", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// SetJSON stores value under key with the given TTL. Failures are logged only.
func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if c == nil || c.client == nil || ttl <= 0 {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Debug("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.logger.Debug("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
