package app

import (
	"context"
	"fmt"

	"github.com/cleancity/api/internal/cache"
	"github.com/cleancity/api/internal/config"
	"github.com/cleancity/api/internal/database"
	"github.com/cleancity/api/internal/middleware"
	"github.com/cleancity/api/internal/store"
	"go.uber.org/zap"
)

// OpenStore opens the KV backend named by driver.
func OpenStore(cfg *config.Config, driver string, logger *zap.Logger) (store.KV, error) {
	switch driver {
	case config.DriverMemory:
		return store.NewMemory(), nil

	case config.DriverSQLite:
		kv, err := store.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return kv, nil

	case config.DriverRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("redis store requires REDIS_URL")
		}
		kv, err := cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("open redis store: %w", err)
		}
		return kv, nil

	case config.DriverPostgres:
		db, err := database.Connect(cfg.DatabaseURL, !cfg.IsProduction())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		kv := database.NewKVStore(db)
		if err := database.Migrate(db); err != nil {
			_ = kv.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return kv, nil
	}

	logger.Warn("unknown store driver", zap.String("driver", driver))
	return nil, fmt.Errorf("unknown store driver %q", driver)
}

// instrumentedKV counts collection writes by key and outcome.
type instrumentedKV struct {
	store.KV
}

func (k instrumentedKV) Set(ctx context.Context, key string, value []byte) error {
	err := k.KV.Set(ctx, key, value)
	middleware.RecordStoreWrite(key, err)
	return err
}
