package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hiresight/hiresight/internal/config"
	"github.com/hiresight/hiresight/pkg/logger"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <candidates.json>",
	Short: "Load a candidate file and print the market report",
	Long: `Analyze ingests a candidate JSON file, scores the pool, and prints
the overview and market intelligence report as JSON to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logger.Get()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// One-shot runs keep logging quiet unless asked otherwise.
	if cfg.LogLevel == "info" {
		_ = logger.SetLevelString("warn")
	} else if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("warn")
	}

	svc := newService(cfg, log)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("starting service: %w", err)
	}
	defer svc.Stop()

	summary, err := svc.LoadFile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("loading candidate file: %w", err)
	}

	out := map[string]any{
		"loaded":   summary.Loaded,
		"skipped":  summary.Duplicates,
		"overview": svc.Overview(ctx),
		"market":   svc.MarketReport(ctx),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
