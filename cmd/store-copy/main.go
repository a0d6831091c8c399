package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/cleancity/api/internal/app"
	"github.com/cleancity/api/internal/config"
	"github.com/cleancity/api/internal/store"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	from := flag.String("from", config.DriverSQLite, "Source store driver")
	to := flag.String("to", config.DriverPostgres, "Destination store driver")
	dryRun := flag.Bool("dry-run", false, "Show what would be copied without writing")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if *from == *to {
		logger.Fatal("Source and destination are the same", zap.String("driver", *from))
	}

	startTime := time.Now()
	logger.Info("Starting store copy", zap.String("from", *from), zap.String("to", *to), zap.Bool("dry_run", *dryRun))

	src, err := app.OpenStore(cfg, *from, logger)
	if err != nil {
		logger.Fatal("Failed to open source", zap.Error(err))
	}
	defer src.Close()

	var dst store.KV
	if !*dryRun {
		dst, err = app.OpenStore(cfg, *to, logger)
		if err != nil {
			logger.Fatal("Failed to open destination", zap.Error(err))
		}
		defer dst.Close()
	}

	ctx := context.Background()
	copied, err := Copy(ctx, src, dst, []string{cfg.ReportsKey, cfg.UsersKey}, logger)
	if err != nil {
		logger.Fatal("Store copy failed", zap.Error(err))
	}

	if *dryRun {
		logger.Info("[DRY RUN] No changes made")
		return
	}
	logger.Info("Store copy complete", zap.Int("keys", copied), zap.Duration("elapsed", time.Since(startTime)))
}

// Copy moves each key's raw value from src to dst. Missing keys are
// skipped. A nil dst only reports what would be copied.
func Copy(ctx context.Context, src, dst store.KV, keys []string, logger *zap.Logger) (int, error) {
	copied := 0
	for _, key := range keys {
		value, err := src.Get(ctx, key)
		if errors.Is(err, store.ErrNotFound) {
			logger.Info("Key not present, skipping", zap.String("key", key))
			continue
		}
		if err != nil {
			return copied, err
		}

		if dst == nil {
			logger.Info("Would copy", zap.String("key", key), zap.Int("bytes", len(value)))
			continue
		}
		if err := dst.Set(ctx, key, value); err != nil {
			return copied, err
		}
		logger.Info("Copied", zap.String("key", key), zap.Int("bytes", len(value)))
		copied++
	}
	return copied, nil
}
