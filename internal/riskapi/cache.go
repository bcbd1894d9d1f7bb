package riskapi

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResultCache caches a completed run's result JSON for a short TTL,
// keyed by run ID. This is a request-latency optimization, not the
// persistence of results the engine's non-goals exclude: entries
// expire and are never the system of record for a computation.
type ResultCache interface {
	Get(ctx context.Context, runID string, dest any) (bool, error)
	Set(ctx context.Context, runID string, v any) error
}

// RedisResultCache is a ResultCache backed by a Redis client, the
// read-through caching idiom applied to computed results instead of
// persisted market state.
type RedisResultCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisResultCache wraps rdb. The caller owns the client's lifecycle.
func NewRedisResultCache(rdb *redis.Client, ttl time.Duration) *RedisResultCache {
	return &RedisResultCache{rdb: rdb, ttl: ttl}
}

func (c *RedisResultCache) Get(ctx context.Context, runID string, dest any) (bool, error) {
	data, err := c.rdb.Get(ctx, runKey(runID)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisResultCache) Set(ctx context.Context, runID string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, runKey(runID), data, c.ttl).Err()
}

func runKey(runID string) string {
	return "riskapi:run:" + runID
}

// NoopResultCache is a ResultCache that never hits, for deployments
// without Redis configured.
type NoopResultCache struct{}

func (NoopResultCache) Get(_ context.Context, _ string, _ any) (bool, error) { return false, nil }
func (NoopResultCache) Set(_ context.Context, _ string, _ any) error         { return nil }
