package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cleancity/api/internal/config"
	"github.com/cleancity/api/internal/model"
	"github.com/cleancity/api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:             "test",
		StoreDriver:     config.DriverMemory,
		ReportsKey:      "waste-reports",
		UsersKey:        "wm-users",
		ChartDelay:      10 * time.Millisecond,
		MaxPhotoBytes:   1 << 20,
		ReportRateLimit: 10,
		SignupRateLimit: 5,
	}
}

func TestNewLoadsStoredCollections(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Set(ctx, "waste-reports", []byte(`[{"id":5,"name":"Ana","status":"submitted","wasteType":"other","date":"2025-03-01T00:00:00Z"}]`)))
	require.NoError(t, kv.Set(ctx, "wm-users", []byte(`not json`)))

	a, err := New(ctx, testConfig(), zap.NewNop(), WithStore(kv))
	require.NoError(t, err)
	defer a.Close()

	require.Len(t, a.Reports.List(), 1)
	assert.Equal(t, int64(5), a.Reports.List()[0].ID)
	assert.Empty(t, a.Users.List())
	assert.NotNil(t, a.Renderer)
	assert.Equal(t, map[string]int64{"report": 10, "signup": 5}, limitsOf(a))
}

func limitsOf(a *App) map[string]int64 {
	out := make(map[string]int64)
	for action, cfg := range a.Limiter.Limits() {
		out[action] = cfg.Limit
	}
	return out
}

func TestReportChangesRedrawCharts(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	a, err := New(ctx, testConfig(), zap.NewNop(), WithStore(store.NewMemory()), WithClock(func() time.Time { return fixed }))
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, int64(1), a.Charts.Current().Version)

	_, err = a.Reports.Add(ctx, model.ReportInput{
		Name: "Ana", Contact: "555", Location: "Main", WasteType: model.WasteOther, Description: "x",
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return a.Charts.Current().Version == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{1, 0, 0}, a.Charts.Current().Charts[0].Data.Datasets[0].Data)
}

func TestStoreWritesPassThrough(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	a, err := New(ctx, testConfig(), zap.NewNop(), WithStore(kv))
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Users.Register(ctx, model.SignupInput{Name: "Ana", Email: "ana@example.com", Password: "pw"})
	require.NoError(t, err)

	raw, err := kv.Get(ctx, "wm-users")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "ana@example.com")
}

func TestCloseIsIdempotent(t *testing.T) {
	a, err := New(context.Background(), testConfig(), zap.NewNop(), WithStore(store.NewMemory()))
	require.NoError(t, err)

	assert.NoError(t, a.Close())
	assert.NoError(t, a.Close())
}

func TestOpenStore(t *testing.T) {
	cfg := testConfig()
	cfg.SQLitePath = filepath.Join(t.TempDir(), "nested", "cleancity.db")

	t.Run("memory", func(t *testing.T) {
		kv, err := OpenStore(cfg, config.DriverMemory, zap.NewNop())
		require.NoError(t, err)
		assert.IsType(t, &store.Memory{}, kv)
	})

	t.Run("sqlite", func(t *testing.T) {
		kv, err := OpenStore(cfg, config.DriverSQLite, zap.NewNop())
		require.NoError(t, err)
		defer kv.Close()

		require.NoError(t, kv.Set(context.Background(), "k", []byte("v")))
		got, err := kv.Get(context.Background(), "k")
		require.NoError(t, err)
		assert.Equal(t, "v", string(got))
	})

	t.Run("redis without url", func(t *testing.T) {
		_, err := OpenStore(cfg, config.DriverRedis, zap.NewNop())
		assert.ErrorContains(t, err, "REDIS_URL")
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := OpenStore(cfg, "floppy", zap.NewNop())
		assert.ErrorContains(t, err, "unknown store driver")
	})
}
