// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/hiresight/hiresight/internal/adapters/ingest"
	"github.com/hiresight/hiresight/internal/adapters/repository"
	"github.com/hiresight/hiresight/internal/domain/aggregate"
	"github.com/hiresight/hiresight/internal/domain/dedupe"
	"github.com/hiresight/hiresight/internal/domain/model"
	"github.com/hiresight/hiresight/internal/domain/query"
	"github.com/hiresight/hiresight/internal/domain/taxonomy"
	"github.com/hiresight/hiresight/internal/domain/team"
	"github.com/hiresight/hiresight/pkg/logger"
	"github.com/hiresight/hiresight/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultDedupeSize    = 500_000
	defaultMaxQueryLimit = 100
)

// Service wires the candidate pool, ingest pipeline, and analytics
// engines behind one facade.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     repository.Store
	deduper   dedupe.Deduper
	loader    *ingest.Loader
	analyzer  *aggregate.Analyzer
	optimizer *team.Optimizer

	// Configuration
	workerCount       int
	dedupeSize        int
	maxQueryLimit     int
	teamWindow        int
	arbitrageFactor   float64
	arbitrageMinCount int
	qualityThreshold  float64
	highValueCeiling  float64

	// Memoized analytics keyed by a content hash of the pool snapshot.
	statsMu   sync.Mutex
	statsHash uint64
	overview  *aggregate.Overview
	market    *aggregate.MarketReport

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of ingest scoring workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithMaxQueryLimit caps how many candidates one query may return.
func WithMaxQueryLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxQueryLimit = limit
		}
	}
}

// WithTeamWindow sets the default candidate window for team
// composition.
func WithTeamWindow(window int) Option {
	return func(s *Service) {
		if window > 0 {
			s.teamWindow = window
		}
	}
}

// WithArbitrageFactor sets the geographic arbitrage ratio multiplier.
func WithArbitrageFactor(factor float64) Option {
	return func(s *Service) {
		if factor > 0 {
			s.arbitrageFactor = factor
		}
	}
}

// WithArbitrageMinCount sets the minimum candidates per country for
// the arbitrage report.
func WithArbitrageMinCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.arbitrageMinCount = n
		}
	}
}

// WithQualityThreshold sets the high-quality score bound.
func WithQualityThreshold(threshold float64) Option {
	return func(s *Service) {
		if threshold > 0 {
			s.qualityThreshold = threshold
		}
	}
}

// WithHighValueSalaryCeiling sets the high-value salary bound.
func WithHighValueSalaryCeiling(ceiling float64) Option {
	return func(s *Service) {
		if ceiling > 0 {
			s.highValueCeiling = ceiling
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(lg logger.Logger) Option {
	return func(s *Service) {
		if lg != nil {
			s.logger = lg
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:       runtime.NumCPU() * 2,
		dedupeSize:        defaultDedupeSize,
		maxQueryLimit:     defaultMaxQueryLimit,
		arbitrageFactor:   0, // analyzer default applies
		arbitrageMinCount: 0,
		qualityThreshold:  0,
		highValueCeiling:  0,
		logger:            nil, // resolved on Start
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting candidate intelligence service...")

	s.store = repository.NewMemStore()
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.loader = ingest.NewLoader(s.store, s.deduper,
		ingest.WithWorkerCount(s.workerCount),
		ingest.WithLogger(s.logger.Named("ingest")),
	)

	var aggOpts []aggregate.Option
	if s.qualityThreshold > 0 {
		aggOpts = append(aggOpts, aggregate.WithQualityThreshold(s.qualityThreshold))
	}
	if s.arbitrageFactor > 0 {
		aggOpts = append(aggOpts, aggregate.WithArbitrageFactor(s.arbitrageFactor))
	}
	if s.arbitrageMinCount > 0 {
		aggOpts = append(aggOpts, aggregate.WithArbitrageMinCount(s.arbitrageMinCount))
	}
	if s.highValueCeiling > 0 {
		aggOpts = append(aggOpts, aggregate.WithHighValueSalaryCeiling(s.highValueCeiling))
	}
	s.analyzer = aggregate.New(aggOpts...)
	s.optimizer = team.New()

	s.started = true
	s.logger.Info(ctx, "candidate intelligence service started",
		logger.Int("workers", s.workerCount),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("maxQueryLimit", s.maxQueryLimit),
	)

	return nil
}

// Stop shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping candidate intelligence service...")

	s.started = false
	s.logger.Info(context.Background(), "candidate intelligence service stopped")
}

// LoadBatch ingests a raw submission batch into the pool.
func (s *Service) LoadBatch(ctx context.Context, raws []model.RawCandidate) (ingest.Summary, error) {
	return s.loader.LoadBatch(ctx, raws)
}

// LoadFile ingests a candidate JSON file as one batch.
func (s *Service) LoadFile(ctx context.Context, path string) (ingest.Summary, error) {
	return s.loader.LoadFile(ctx, path)
}

// Candidates evaluates a filter query over the scored pool.
func (s *Service) Candidates(ctx context.Context, spec query.FilterSpec) (query.Result, error) {
	start := time.Now()
	defer func() {
		metrics.RecordQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	if spec.Limit > s.maxQueryLimit {
		spec.Limit = s.maxQueryLimit
	}

	res, err := query.Evaluate(s.store.Snapshot(ctx), spec)
	if err != nil {
		metrics.RecordQueryError()
		return query.Result{}, err
	}
	return res, nil
}

// Candidate returns one candidate by id.
func (s *Service) Candidate(ctx context.Context, id string) (model.Candidate, error) {
	return s.store.Get(ctx, id)
}

// Overview returns the dashboard headline block, memoized per pool
// content.
func (s *Service) Overview(ctx context.Context) aggregate.Overview {
	pool := s.store.Snapshot(ctx)
	hash := poolHash(pool)

	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	if s.overview != nil && s.statsHash == hash {
		metrics.RecordStatsCacheHit()
		return *s.overview
	}
	metrics.RecordStatsCacheMiss()

	start := time.Now()
	ov := s.analyzer.Summarize(pool)
	metrics.RecordAggregateLatency(float64(time.Since(start).Milliseconds()))

	s.resetCacheLocked(hash)
	s.overview = &ov
	return ov
}

// MarketReport returns the full market intelligence block, memoized
// per pool content. Premium and scarcity rows cover the high-demand
// skill list.
func (s *Service) MarketReport(ctx context.Context) aggregate.MarketReport {
	pool := s.store.Snapshot(ctx)
	hash := poolHash(pool)

	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	if s.market != nil && s.statsHash == hash {
		metrics.RecordStatsCacheHit()
		return *s.market
	}
	metrics.RecordStatsCacheMiss()

	start := time.Now()
	report := s.analyzer.Market(pool, taxonomy.HighDemand())
	metrics.RecordAggregateLatency(float64(time.Since(start).Milliseconds()))

	s.resetCacheLocked(hash)
	s.market = &report
	return report
}

// ComposeTeam runs the diversity-constrained team optimizer over the
// score-ranked window fetched from the store.
func (s *Service) ComposeTeam(ctx context.Context, req team.Request) (team.Selection, error) {
	start := time.Now()
	defer func() {
		metrics.RecordTeamLatency(float64(time.Since(start).Milliseconds()))
	}()

	if err := req.Validate(); err != nil {
		return team.Selection{}, err
	}
	if req.Window == 0 && s.teamWindow > 0 {
		req.Window = s.teamWindow
	}

	// The store keeps the pool score-sorted, so only the scan window
	// needs to leave it.
	n := req.WindowSize()
	if count := s.store.Count(ctx); n > count {
		n = count
	}
	if n < 1 {
		return s.optimizer.Optimize(nil, req)
	}

	window, err := s.store.TopN(ctx, n)
	if err != nil {
		return team.Selection{}, fmt.Errorf("fetching team window: %w", err)
	}
	return s.optimizer.Optimize(window, req)
}

// MaxQueryLimit exposes the configured query limit cap to the HTTP
// layer.
func (s *Service) MaxQueryLimit() int {
	return s.maxQueryLimit
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		poolSize := s.store.Count(ctx)
		stats["poolSize"] = poolSize
		stats["submissionsSeen"] = s.deduper.Size()

		metrics.UpdatePoolSize(poolSize)
	}

	return stats
}

// resetCacheLocked drops memoized analytics for a new pool hash.
// Callers must hold statsMu.
func (s *Service) resetCacheLocked(hash uint64) {
	if s.statsHash != hash {
		s.overview = nil
		s.market = nil
	}
	s.statsHash = hash
}

// poolHash fingerprints a snapshot by candidate identity and score so
// memoized analytics invalidate exactly when the pool content changes.
func poolHash(pool []model.Candidate) uint64 {
	h := fnv.New64a()
	for _, c := range pool {
		h.Write([]byte(c.ID))
		h.Write([]byte{':'})
		h.Write([]byte(strconv.FormatFloat(c.OverallScore, 'f', -1, 64)))
		h.Write([]byte{'\n'})
	}
	return h.Sum64()
}
