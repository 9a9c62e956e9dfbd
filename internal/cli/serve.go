package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/hiresight/hiresight/internal/adapters/http/api"
	app "github.com/hiresight/hiresight/internal/app"
	"github.com/hiresight/hiresight/internal/config"
	"github.com/hiresight/hiresight/pkg/logger"
	"github.com/hiresight/hiresight/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 10 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the candidate intelligence HTTP server",
	Long: `Start an HTTP server exposing the candidate pool and analytics.

Available endpoints:
- POST /candidates: Submit a raw candidate batch
- GET /candidates: Query the scored pool with filters
- GET /candidates/{id}: Fetch one candidate
- GET /overview: Dashboard headline statistics
- GET /analytics/market: Full market intelligence report
- POST /team: Compose a diversity-constrained team
- GET /stats: Service statistics
- GET /healthz: Prometheus exposition / liveness probe`,
	RunE: runServe,
}

var serveLoadFile string

func init() {
	serveCmd.Flags().StringVar(&serveLoadFile, "load", "", "Candidate JSON file to ingest on startup")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := logger.Get()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := newService(cfg, log)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("starting service: %w", err)
	}
	defer svc.Stop()

	if serveLoadFile != "" {
		summary, err := svc.LoadFile(ctx, serveLoadFile)
		if err != nil {
			return fmt.Errorf("loading candidate file: %w", err)
		}
		log.Info(ctx, "startup candidate file loaded",
			logger.String("path", serveLoadFile),
			logger.Int("loaded", summary.Loaded),
			logger.Int("duplicates", summary.Duplicates),
		)
	}

	go startServiceMetricsUpdater(ctx, svc)

	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc, cfg.MaxQueryLimit)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info(ctx, "server stopped")
	return nil
}

// newService builds the app service from loaded configuration.
func newService(cfg *config.Config, log logger.Logger) *app.Service {
	return app.New(
		app.WithLogger(log),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithMaxQueryLimit(cfg.MaxQueryLimit),
		app.WithTeamWindow(cfg.TeamWindow),
		app.WithArbitrageFactor(cfg.ArbitrageFactor),
		app.WithArbitrageMinCount(cfg.ArbitrageMinCount),
		app.WithQualityThreshold(cfg.QualityScoreThreshold),
		app.WithHighValueSalaryCeiling(cfg.HighValueSalaryCeiling),
	)
}

// startServiceMetricsUpdater refreshes service-level gauges on a
// fixed interval.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := svc.GetStats()
			if poolSize, ok := stats["poolSize"].(int); ok {
				metrics.UpdatePoolSize(poolSize)
			}
		}
	}
}
