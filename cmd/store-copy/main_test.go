package main

import (
	"context"
	"testing"

	"github.com/cleancity/api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCopy(t *testing.T) {
	ctx := context.Background()
	src := store.NewMemory()
	require.NoError(t, src.Set(ctx, "waste-reports", []byte(`[{"id":1}]`)))

	dst := store.NewMemory()
	copied, err := Copy(ctx, src, dst, []string{"waste-reports", "wm-users"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, copied)

	got, err := dst.Get(ctx, "waste-reports")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(got))

	_, err = dst.Get(ctx, "wm-users")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCopyDryRun(t *testing.T) {
	ctx := context.Background()
	src := store.NewMemory()
	require.NoError(t, src.Set(ctx, "wm-users", []byte(`[]`)))

	copied, err := Copy(ctx, src, nil, []string{"wm-users"}, zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, copied)
}

func TestCopyQuotaFailure(t *testing.T) {
	ctx := context.Background()
	src := store.NewMemory()
	require.NoError(t, src.Set(ctx, "waste-reports", []byte(`[{"id":1,"name":"a long enough value"}]`)))

	_, err := Copy(ctx, src, store.NewMemoryWithQuota(8), []string{"waste-reports"}, zap.NewNop())
	assert.ErrorIs(t, err, store.ErrQuotaExceeded)
}
