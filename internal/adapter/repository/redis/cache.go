package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/goscheduler/internal/usecase"
)

const (
	defaultCachePrefix = "cache:"
	flushScanCount     = 100
)

// Cache implements usecase.Cache using Redis.
type Cache struct {
	client redis.UniversalClient
	prefix string
}

// NewCache creates a new Cache.
func NewCache(client redis.UniversalClient) *Cache {
	return &Cache{
		client: client,
		prefix: defaultCachePrefix,
	}
}

// Get retrieves a value by key. A missing key returns usecase.ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, usecase.ErrCacheMiss
	}

	return val, err
}

// Set stores a value with TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// SetNX stores a value with TTL only if the key does not exist.
func (c *Cache) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, c.prefix+key, value, ttl).Result()
}

// Delete removes keys.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	full := make([]string, 0, len(keys))
	for _, key := range keys {
		full = append(full, c.prefix+key)
	}

	return c.client.Del(ctx, full...).Err()
}

// Flush removes every key under the cache prefix. Keys are collected before
// deletion so the SCAN cursor is not disturbed by the deletes.
func (c *Cache) Flush(ctx context.Context) error {
	var keys []string

	iter := c.client.Scan(ctx, 0, c.prefix+"*", flushScanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		return err
	}

	for start := 0; start < len(keys); start += flushScanCount {
		end := min(start+flushScanCount, len(keys))

		if err := c.client.Del(ctx, keys[start:end]...).Err(); err != nil {
			return err
		}
	}

	return nil
}
