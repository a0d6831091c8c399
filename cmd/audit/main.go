package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/cleancity/api/internal/app"
	"github.com/cleancity/api/internal/config"
	"github.com/cleancity/api/internal/store"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	workers := flag.Int("workers", 4, "Number of parallel workers")
	driver := flag.String("store", "", "Store driver to audit (defaults to STORE_DRIVER)")
	outputFile := flag.String("output", "audit_results.json", "Output file for results")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	if *driver == "" {
		*driver = cfg.StoreDriver
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	kv, err := app.OpenStore(cfg, *driver, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer kv.Close()

	ctx := context.Background()
	startTime := time.Now()

	reportsRaw, err := readKey(ctx, kv, cfg.ReportsKey)
	if err != nil {
		logger.Fatal("Failed to read reports", zap.Error(err))
	}
	usersRaw, err := readKey(ctx, kv, cfg.UsersKey)
	if err != nil {
		logger.Fatal("Failed to read users", zap.Error(err))
	}

	result := Audit(reportsRaw, usersRaw, *workers)
	elapsed := time.Since(startTime)

	fmt.Printf("\n=== Audit Complete ===\n")
	fmt.Printf("Reports: %d, Users: %d\n", result.Reports, result.Users)
	fmt.Printf("Issues found: %d\n", len(result.Issues))
	fmt.Printf("Time elapsed: %v\n", elapsed)

	byType := result.ByType()
	fmt.Printf("\n=== Issues by Type ===\n")
	for typ, typeIssues := range byType {
		fmt.Printf("%s: %d\n", typ, len(typeIssues))
	}

	output := map[string]interface{}{
		"summary": map[string]interface{}{
			"store":   *driver,
			"reports": result.Reports,
			"users":   result.Users,
			"issues":  len(result.Issues),
			"elapsed": elapsed.String(),
		},
		"issuesByType": byType,
		"issues":       result.Issues,
	}

	jsonData, _ := json.MarshalIndent(output, "", "  ")
	if err := os.WriteFile(*outputFile, jsonData, 0644); err != nil {
		logger.Error("Failed to write output file", zap.Error(err))
	} else {
		fmt.Printf("\nResults saved to %s\n", *outputFile)
	}
}

// readKey returns the raw stored value, or nil when the key is absent.
func readKey(ctx context.Context, kv store.KV, key string) ([]byte, error) {
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return raw, err
}

// auditRecords fans the per-record checks out over a worker pool.
func auditRecords(records []json.RawMessage, workers int, check func(int, json.RawMessage) []Issue) []Issue {
	if workers < 1 {
		workers = 1
	}

	type job struct {
		index int
		raw   json.RawMessage
	}
	jobs := make(chan job, workers*2)
	results := make([][]Issue, len(records))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.index] = check(j.index, j.raw)
			}
		}()
	}

	for i, raw := range records {
		jobs <- job{index: i, raw: raw}
	}
	close(jobs)
	wg.Wait()

	var issues []Issue
	for _, r := range results {
		issues = append(issues, r...)
	}
	return issues
}
