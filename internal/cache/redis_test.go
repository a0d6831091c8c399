package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/cleancity/api/internal/cache"
	"github.com/cleancity/api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *cache.RedisCache {
	t.Helper()

	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	c, err := cache.NewRedisCache(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRedisCacheKV(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	key := "test:" + uuid.NewString()

	_, err := c.Get(ctx, key)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, c.Set(ctx, key, []byte(`[{"id":1}]`)))
	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(got))
}

func TestRedisCacheIncr(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	key := "rate:" + uuid.NewString()

	for want := int64(1); want <= 3; want++ {
		n, err := c.Incr(ctx, key, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	ttl, err := c.TTL(ctx, key)
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}
