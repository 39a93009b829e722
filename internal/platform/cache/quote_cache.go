// Package cache provides the Redis-backed quote cache.
package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_quote/internal/feature/quote/domain/entity"
	"stock_quote/internal/feature/quote/usecase"
)

// RedisQuoteCache stores quote entries as JSON strings with a per-key expiry.
// Every failure is logged and degrades to a cache miss; nothing is returned
// to the caller.
type RedisQuoteCache struct {
	rdb *redis.Client
}

// RedisQuoteCacheがQuoteCacheを実装していることをコンパイル時に検証します。
var _ usecase.QuoteCache = (*RedisQuoteCache)(nil)

// NewRedisQuoteCache creates a cache on top of rdb.
// A nil client turns every Get into a miss and every Set into a no-op.
func NewRedisQuoteCache(rdb *redis.Client) *RedisQuoteCache {
	return &RedisQuoteCache{rdb: rdb}
}

// Get returns the entry stored under key, if any.
func (c *RedisQuoteCache) Get(ctx context.Context, key string) (entity.CacheEntry, bool) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return entity.CacheEntry{}, false
	}

	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("redis read failed", "key", key, "error", err)
		}
		return entity.CacheEntry{}, false
	}

	e, err := decodeEntry(b)
	if err != nil {
		slog.Warn("corrupted cache entry", "key", key, "error", err)
		// Delete corrupted cache entry (best effort)
		_ = c.rdb.Del(ctx, key).Err()
		return entity.CacheEntry{}, false
	}
	return e, true
}

// Set stores entry under key for ttl.
func (c *RedisQuoteCache) Set(ctx context.Context, key string, e entity.CacheEntry, ttl time.Duration) {
	if c.rdb == nil {
		return
	}

	b, err := json.Marshal(e)
	if err != nil {
		slog.Warn("failed to marshal cache entry", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, key, b, ttl).Err(); err != nil {
		slog.Warn("redis write failed", "key", key, "error", err)
	}
}

// Ping reports whether Redis is reachable. It is used by the health check.
func (c *RedisQuoteCache) Ping(ctx context.Context) error {
	if c.rdb == nil {
		return ErrCacheDisabled
	}
	return c.rdb.Ping(ctx).Err()
}

// decodeEntry accepts only a JSON object; anything else is treated as corrupted.
func decodeEntry(b []byte) (entity.CacheEntry, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		return entity.CacheEntry{}, errNotAnObject
	}
	var e entity.CacheEntry
	if err := json.Unmarshal(b, &e); err != nil {
		return entity.CacheEntry{}, err
	}
	return e, nil
}
