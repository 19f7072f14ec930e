package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKeyPrefix namespaces tenant entries in a shared Redis.
const DefaultRedisKeyPrefix = "tenant:"

// RedisCache stores tenants as JSON values in Redis so that several edge
// instances share one cache. It does not own the client.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisCache creates a Redis-backed cache. An empty prefix falls back
// to DefaultRedisKeyPrefix.
func NewRedisCache(client redis.UniversalClient, prefix string) *RedisCache {
	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}
	return &RedisCache{client: client, prefix: prefix}
}

// Get treats Redis errors and undecodable values as cache misses.
func (c *RedisCache) Get(ctx context.Context, key string) (*Tenant, bool) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	var t Tenant
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, false
	}
	return &t, true
}

func (c *RedisCache) Set(ctx context.Context, key string, t *Tenant, ttl time.Duration) error {
	if t == nil {
		return errors.New("tenant cache: nil tenant")
	}
	data, err := json.Marshal(t)
	if err != nil {
		return errors.Join(errors.New("tenant cache: encode"), err)
	}
	return c.client.Set(ctx, c.prefix+key, data, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}
