package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cleancity/api/internal/store"
	"github.com/redis/go-redis/v9"
)

// RedisCache backs both the collection store and the submission limiter
// counters.
type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(redisURL string) (*RedisCache, error) {
	// Parse redis URL (redis://host:port or redis://host:port/db)
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client, prefix: "cleancity:"}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	return v, err
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte) error {
	err := c.client.Set(ctx, c.prefix+key, value, 0).Err() // TTL 0 = no expiration
	if err != nil && isOOM(err) {
		return fmt.Errorf("%w: %v", store.ErrQuotaExceeded, err)
	}
	return err
}

// Incr bumps a counter and (re)arms its expiry in one round trip.
func (c *RedisCache) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := c.client.Pipeline()

	incr := pipe.Incr(ctx, c.prefix+key)
	pipe.ExpireNX(ctx, c.prefix+key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	return incr.Val(), nil
}

func (c *RedisCache) TTL(ctx context.Context, key string) (time.Duration, error) {
	return c.client.TTL(ctx, c.prefix+key).Result()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// isOOM reports the error redis returns when maxmemory is reached.
func isOOM(err error) bool {
	return strings.HasPrefix(err.Error(), "OOM ")
}
