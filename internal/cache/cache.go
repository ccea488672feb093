package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RunStatus is the cached progress view of a screening run.
type RunStatus struct {
	RunID          uuid.UUID  `json:"runId"`
	OrganizationID *uuid.UUID `json:"organizationId"`
	Status         string     `json:"status"`
	Total          int        `json:"total"`
	Processed      int        `json:"processed"`
	Failed         int        `json:"failed"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Cache is the caching interface. All cache operations go through here.
// Implementations must be safe for concurrent use.
type Cache interface {
	Ping(ctx context.Context) error
	SetRunStatus(ctx context.Context, status RunStatus, ttl time.Duration) error
	GetRunStatus(ctx context.Context, runID uuid.UUID) (*RunStatus, bool, error)
	DeleteRunStatus(ctx context.Context, runID uuid.UUID) error
	IncrWithExpiry(ctx context.Context, key string, expiry time.Duration) (int64, error)
}

// RedisCache implements the Cache interface using go-redis/v9.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new RedisCache from a Redis URL.
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &RedisCache{client: redis.NewClient(opts)}, nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) SetRunStatus(ctx context.Context, status RunStatus, ttl time.Duration) error {
	b, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("encode run status: %w", err)
	}
	return c.client.Set(ctx, RunStatusKey(status.RunID), b, ttl).Err()
}

func (c *RedisCache) GetRunStatus(ctx context.Context, runID uuid.UUID) (*RunStatus, bool, error) {
	val, err := c.client.Get(ctx, RunStatusKey(runID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var status RunStatus
	if err := json.Unmarshal(val, &status); err != nil {
		return nil, false, fmt.Errorf("decode run status: %w", err)
	}
	return &status, true, nil
}

func (c *RedisCache) DeleteRunStatus(ctx context.Context, runID uuid.UUID) error {
	return c.client.Del(ctx, RunStatusKey(runID)).Err()
}

func (c *RedisCache) IncrWithExpiry(ctx context.Context, key string, expiry time.Duration) (int64, error) {
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, expiry)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// MemoryCache is an in-process Cache for tests and single-node development.
// Expired entries are dropped lazily on read.
type MemoryCache struct {
	mu       sync.Mutex
	statuses map[uuid.UUID]memoryEntry[RunStatus]
	counters map[string]memoryEntry[int64]
	now      func() time.Time
}

type memoryEntry[T any] struct {
	value   T
	expires time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		statuses: make(map[uuid.UUID]memoryEntry[RunStatus]),
		counters: make(map[string]memoryEntry[int64]),
		now:      time.Now,
	}
}

func (c *MemoryCache) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (c *MemoryCache) SetRunStatus(_ context.Context, status RunStatus, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statuses[status.RunID] = memoryEntry[RunStatus]{value: status, expires: c.now().Add(ttl)}
	return nil
}

func (c *MemoryCache) GetRunStatus(_ context.Context, runID uuid.UUID) (*RunStatus, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.statuses[runID]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(e.expires) {
		delete(c.statuses, runID)
		return nil, false, nil
	}
	status := e.value
	return &status, true, nil
}

func (c *MemoryCache) DeleteRunStatus(_ context.Context, runID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.statuses, runID)
	return nil
}

func (c *MemoryCache) IncrWithExpiry(_ context.Context, key string, expiry time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	e, ok := c.counters[key]
	if !ok || !now.Before(e.expires) {
		e = memoryEntry[int64]{}
	}
	e.value++
	e.expires = now.Add(expiry)
	c.counters[key] = e
	return e.value, nil
}
