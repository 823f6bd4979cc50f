package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	exportapp "github.com/sepur/finance/internal/application/export"
)

const defaultDocumentKeyPrefix = "finance:document:"

// RedisDocumentCache keeps generated document bytes in Redis so that
// every instance can reuse them for an upload retry.
type RedisDocumentCache struct {
	client    redis.UniversalClient
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisDocumentCache connects to Redis and verifies the connection.
func NewRedisDocumentCache(cfg RedisConfig) (*RedisDocumentCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisDocumentCacheWithClient(client, ""), nil
}

// NewRedisDocumentCacheWithClient creates a cache with an existing Redis client
func NewRedisDocumentCacheWithClient(client redis.UniversalClient, keyPrefix string) *RedisDocumentCache {
	if keyPrefix == "" {
		keyPrefix = defaultDocumentKeyPrefix
	}
	return &RedisDocumentCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the cached bytes for key. A miss is (nil, false, nil).
func (c *RedisDocumentCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached document: %w", err)
	}
	return data, true, nil
}

// Set stores data under key for ttl. A non-positive ttl keeps the entry until evicted.
func (c *RedisDocumentCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache document: %w", err)
	}
	return nil
}

// Delete removes key from the cache
func (c *RedisDocumentCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete cached document: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisDocumentCache) Close() error {
	return c.client.Close()
}

// Ensure RedisDocumentCache implements DocumentCache
var _ exportapp.DocumentCache = (*RedisDocumentCache)(nil)
