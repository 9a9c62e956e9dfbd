package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/hiresight/hiresight/pkg/logger"
)

// File permission constants.
const (
	outputFilePermission = 0o600
)

// Run executes a complete seeding pass: generate submissions, submit
// them in batches, and report the resulting pool overview.
func Run(ctx context.Context, cfg *Config) error {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get()

	log.Info(ctx, "starting candidate seeding run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("candidates", cfg.NumCandidates),
		logger.Int("batchSize", cfg.BatchSize),
		logger.String("timeout", cfg.Timeout.String()),
	)

	client := newHTTPClient(cfg.Timeout)

	if err := checkServiceHealth(ctx, client, cfg.BaseURL); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	raws := Generate(ctx, cfg)
	stats.Generated = len(raws)

	if cfg.OutputFile != "" {
		if err := writeSubmissions(cfg.OutputFile, raws); err != nil {
			return fmt.Errorf("writing submissions file: %w", err)
		}
		log.Info(ctx, "submissions written", logger.String("path", cfg.OutputFile))
	}

	if err := submitBatches(ctx, client, cfg, raws, stats); err != nil {
		return fmt.Errorf("submission failed: %w", err)
	}

	overview, err := fetchOverview(ctx, client, cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("overview retrieval failed: %w", err)
	}

	elapsed := time.Since(stats.StartTime)
	log.Info(ctx, "seeding run complete",
		logger.Int("generated", stats.Generated),
		logger.Int("loaded", stats.Loaded),
		logger.Int("duplicates", stats.Duplicates),
		logger.Int("batches", stats.Batches),
		logger.Duration("elapsed", elapsed),
		logger.Any("overview", overview),
	)

	return nil
}

func writeSubmissions(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling submissions: %w", err)
	}
	if err := os.WriteFile(path, data, outputFilePermission); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
