package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CatalogCache stores rendered catalog query results. Invalidate drops every
// entry written before the call.
//
// Resolve pins a query key to the current generation. Get and Set take the
// resolved key, so a result read before an Invalidate is written into the
// old generation and never served afterwards.
type CatalogCache interface {
	Resolve(ctx context.Context, key string) (string, error)
	Get(ctx context.Context, resolved string, dst any) (bool, error)
	Set(ctx context.Context, resolved string, value any) error
	Invalidate(ctx context.Context) error
}

// NoopCache is used when no Redis server is configured.
type NoopCache struct{}

func (NoopCache) Resolve(_ context.Context, key string) (string, error) { return key, nil }
func (NoopCache) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (NoopCache) Set(context.Context, string, any) error                { return nil }
func (NoopCache) Invalidate(context.Context) error                      { return nil }

// RedisCache namespaces keys with a generation counter. Bumping the counter
// orphans old keys, which then expire through their TTL.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	if prefix == "" {
		prefix = "catalog"
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisCache) versionKey() string {
	return c.prefix + ":version"
}

func (c *RedisCache) Resolve(ctx context.Context, key string) (string, error) {
	v, err := c.client.Get(ctx, c.versionKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("read cache version: %w", err)
	}
	return fmt.Sprintf("%s:v%d:%s", c.prefix, v, key), nil
}

func (c *RedisCache) Get(ctx context.Context, resolved string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, resolved).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis GET %s: %w", resolved, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", resolved, err)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, resolved string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}
	if err := c.client.Set(ctx, resolved, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", resolved, err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.versionKey()).Err(); err != nil {
		return fmt.Errorf("bump cache version: %w", err)
	}
	return nil
}
