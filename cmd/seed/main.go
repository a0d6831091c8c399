package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/cleancity/api/internal/app"
	"github.com/cleancity/api/internal/config"
	"github.com/cleancity/api/internal/model"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	names     = []string{"Ana Lopez", "Ben Carter", "Chidi Okafor", "Dana Kim", "Eli Novak", "Fatima Noor", "Gus Meyer"}
	locations = []string{"5th & Main", "Oak Park entrance", "Riverside Dr 210", "Elm St alley", "Central Market", "Harbor View lot", "Pine Ave bus stop"}

	descriptions = map[model.WasteType][]string{
		model.WasteOverflowingGarbage: {"Bins overflowing since the weekend", "Dumpster lid won't close, bags on the ground"},
		model.WasteIllegalDumping:     {"Mattress and furniture left on the curb", "Construction debris blocking the sidewalk"},
		model.WasteHazardous:          {"Paint cans leaking near the drain", "Car batteries dumped behind the store"},
		model.WasteRecyclingIssue:     {"Recycling not collected this week", "Glass mixed into the paper bin"},
		model.WasteOther:              {"Shopping carts abandoned in the park", "Leaves piled over the storm drain"},
	}
)

func main() {
	count := flag.Int("count", 40, "Number of reports to create")
	months := flag.Int("months", 6, "Spread reports over this many past months")
	seed := flag.Uint64("seed", 1, "Random seed")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	// Seeding must not wait on the interactive submission delay.
	cfg.SubmitDelay = 0

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize app", zap.Error(err))
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("Failed to close app", zap.Error(err))
		}
	}()

	now := time.Now().UTC().Truncate(time.Millisecond)
	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	dates := spreadDates(rng, now, *count, *months)

	logger.Info("Seeding reports",
		zap.Int("count", *count),
		zap.String("store", cfg.StoreDriver),
		zap.Int("existing", len(application.Reports.List())),
	)

	created, resolved := 0, 0
	for _, date := range dates {
		application.Reports.SetClock(fixed(date))

		wasteType := model.WasteTypes()[rng.IntN(len(model.WasteTypes()))]
		report, err := application.Reports.Add(ctx, model.ReportInput{
			Name:        pick(rng, names),
			Contact:     fmt.Sprintf("555-%04d", rng.IntN(10000)),
			Location:    pick(rng, locations),
			WasteType:   wasteType,
			Description: pick(rng, descriptions[wasteType]),
		})
		if err != nil {
			logger.Fatal("Failed to save report", zap.Error(err))
		}
		created++

		status := targetStatus(rng)
		if status == model.StatusSubmitted {
			continue
		}

		updated := date.Add(time.Duration(1+rng.IntN(96)) * time.Hour)
		if updated.After(now) {
			updated = now
		}
		application.Reports.SetClock(fixed(updated))
		if _, err := application.Reports.UpdateStatus(ctx, report.ID, status); err != nil {
			logger.Fatal("Failed to update report", zap.Int64("id", report.ID), zap.Error(err))
		}
		if status == model.StatusResolved {
			resolved++
		}
	}

	logger.Info("Seeding complete",
		zap.Int("created", created),
		zap.Int("resolved", resolved),
		zap.Int("total", len(application.Reports.List())),
	)
}

// spreadDates returns n ascending timestamps within the last months, so
// prepending them in order leaves the collection newest first.
func spreadDates(rng *rand.Rand, now time.Time, n, months int) []time.Time {
	start := now.AddDate(0, -months, 0)
	span := now.Sub(start)

	dates := make([]time.Time, n)
	for i := range dates {
		offset := time.Duration(rng.Int64N(int64(span)))
		dates[i] = start.Add(offset).Truncate(time.Millisecond)
	}
	slices.SortFunc(dates, time.Time.Compare)
	return dates
}

func targetStatus(rng *rand.Rand) model.Status {
	switch n := rng.IntN(10); {
	case n < 4:
		return model.StatusSubmitted
	case n < 7:
		return model.StatusInProgress
	default:
		return model.StatusResolved
	}
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.IntN(len(options))]
}

func fixed(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
