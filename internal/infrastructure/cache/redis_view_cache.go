package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/promptdeck/backend/internal/infrastructure/config"
)

// ViewCache caches serialized view models keyed by string.
// The read store remains authoritative; a cache miss is never an error.
type ViewCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

// RedisViewCache implements ViewCache on Redis with JSON values.
// Suitable for distributed deployments where multiple instances share
// the read path.
type RedisViewCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisViewCache creates a Redis-backed view cache
func NewRedisViewCache(cfg config.RedisConfig) (*RedisViewCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisViewCache{
		client:    client,
		keyPrefix: "view:",
		ttl:       cfg.TTL,
	}, nil
}

// NewRedisViewCacheWithClient creates a cache with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisViewCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisViewCache {
	if keyPrefix == "" {
		keyPrefix = "view:"
	}
	return &RedisViewCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Get reads a cached view into dest. Returns false on a miss.
func (c *RedisViewCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read cached view: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached view: %w", err)
	}
	return true, nil
}

// Set stores a view with the configured TTL
func (c *RedisViewCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode view for cache: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache view: %w", err)
	}
	return nil
}

// Invalidate removes cached views
func (c *RedisViewCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = c.keyPrefix + k
	}
	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached views: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisViewCache) Close() error {
	return c.client.Close()
}

var _ ViewCache = (*RedisViewCache)(nil)
