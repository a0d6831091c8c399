package limiter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenCounter struct{}

func (brokenCounter) Incr(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("connection refused")
}

func (brokenCounter) TTL(context.Context, string) (time.Duration, error) {
	return 0, nil
}

func TestCheckFixedWindow(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	counter := NewMemoryCounter()
	counter.now = func() time.Time { return clock }

	l := NewLimiter(counter, map[string]ActionConfig{
		ActionReport: {Limit: 2, Window: time.Minute},
	}, nil)
	l.now = counter.now
	ctx := context.Background()

	first := l.Check(ctx, "10.0.0.1", ActionReport)
	assert.True(t, first.Allowed)
	assert.Equal(t, int64(1), first.Remaining)
	assert.Equal(t, clock.Add(time.Minute).Unix(), first.ResetAt)

	assert.True(t, l.Check(ctx, "10.0.0.1", ActionReport).Allowed)

	blocked := l.Check(ctx, "10.0.0.1", ActionReport)
	assert.False(t, blocked.Allowed)
	assert.Equal(t, int64(0), blocked.Remaining)

	assert.True(t, l.Check(ctx, "10.0.0.2", ActionReport).Allowed, "clients are counted separately")

	clock = clock.Add(time.Minute)
	assert.True(t, l.Check(ctx, "10.0.0.1", ActionReport).Allowed, "window resets")
}

func TestCheckUnlimitedAction(t *testing.T) {
	l := NewLimiter(NewMemoryCounter(), map[string]ActionConfig{
		ActionSignup: {Limit: 0, Window: time.Minute},
	}, nil)

	for i := 0; i < 10; i++ {
		assert.True(t, l.Check(context.Background(), "c", ActionSignup).Allowed)
		assert.True(t, l.Check(context.Background(), "c", "unknown").Allowed)
	}
}

func TestCheckFailsOpen(t *testing.T) {
	l := NewLimiter(brokenCounter{}, map[string]ActionConfig{
		ActionReport: {Limit: 1, Window: time.Minute},
	}, nil)

	for i := 0; i < 3; i++ {
		res := l.Check(context.Background(), "c", ActionReport)
		require.NotNil(t, res)
		assert.True(t, res.Allowed)
	}
}

func TestMemoryCounterSweepsExpired(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	counter := NewMemoryCounter()
	counter.now = func() time.Time { return clock }
	ctx := context.Background()

	_, _ = counter.Incr(ctx, "a", time.Second)
	clock = clock.Add(2 * time.Second)
	_, _ = counter.Incr(ctx, "b", time.Second)

	assert.Len(t, counter.windows, 1)
	ttl, err := counter.TTL(ctx, "a")
	require.NoError(t, err)
	assert.Negative(t, int64(ttl))
}
