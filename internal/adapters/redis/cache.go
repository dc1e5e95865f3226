package redis

// Package redis provides the Redis-backed cache adapter used by the
// release/CI status aggregation. Sessions are owned by the external auth
// subsystem and are never stored here.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orbitalhq/console-api/internal/ports"
)

// Cache is a Redis-based ports.CacheRepository. TTL semantics are delegated
// to Redis.
type Cache struct {
	client redis.UniversalClient
	prefix string
}

var _ ports.CacheRepository = (*Cache)(nil)

// NewCache creates a Redis cache with the default key prefix.
func NewCache(client redis.UniversalClient) *Cache {
	return &Cache{client: client, prefix: "cache:"}
}

// NewCacheWithPrefix creates a Redis cache with a custom key prefix.
func NewCacheWithPrefix(client redis.UniversalClient, prefix string) *Cache {
	return &Cache{client: client, prefix: prefix}
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("cache key cannot be empty")
	}
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
