// Package ingest loads raw candidate batches into the scored pool.
// Normalization and scoring fan out to a bounded worker pool; output
// order always equals input order.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hiresight/hiresight/internal/adapters/repository"
	"github.com/hiresight/hiresight/internal/domain/dedupe"
	"github.com/hiresight/hiresight/internal/domain/model"
	"github.com/hiresight/hiresight/internal/domain/normalize"
	"github.com/hiresight/hiresight/internal/domain/scoring"
	"github.com/hiresight/hiresight/pkg/logger"
	"github.com/hiresight/hiresight/pkg/metrics"
)

// Summary reports the outcome of a batch load.
type Summary struct {
	Received   int `json:"received"`
	Loaded     int `json:"loaded"`
	Duplicates int `json:"duplicates"`
	PoolSize   int `json:"pool_size"`
}

// Loader normalizes, scores, and stores raw candidate batches.
type Loader struct {
	store      repository.Store
	deduper    dedupe.Deduper
	normalizer *normalize.Normalizer
	engine     *scoring.Engine
	workers    int
	logger     logger.Logger

	// mu serializes the snapshot-merge-replace publish step so
	// concurrent batches never overwrite each other's merge.
	mu sync.Mutex
}

// NewLoader creates a batch loader backed by the given store.
func NewLoader(store repository.Store, deduper dedupe.Deduper, opts ...Option) *Loader {
	l := &Loader{
		store:      store,
		deduper:    deduper,
		normalizer: normalize.New(),
		engine:     scoring.New(),
		workers:    runtime.NumCPU(),
		logger:     logger.Get().Named("ingest"),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// LoadBatch ingests a raw batch. Records whose ID was already loaded
// are skipped; blank IDs get a generated uuid. Accepted records are
// normalized and scored concurrently, merged with the existing pool,
// and published with one atomic replace.
func (l *Loader) LoadBatch(ctx context.Context, raws []model.RawCandidate) (Summary, error) {
	start := time.Now()
	defer func() {
		metrics.RecordIngestLatency(float64(time.Since(start).Milliseconds()))
	}()

	summary := Summary{Received: len(raws)}

	// Dedupe pass runs sequentially so duplicate detection inside a
	// single batch stays order-dependent and deterministic.
	accepted := make([]model.RawCandidate, 0, len(raws))
	for _, raw := range raws {
		if raw.ID == "" {
			raw.ID = uuid.NewString()
		}
		if l.deduper.SeenAndRecord(ctx, raw.ID) {
			summary.Duplicates++
			metrics.RecordDuplicateDetected()
			metrics.RecordCandidateSkipped()
			continue
		}
		accepted = append(accepted, raw)
	}

	scored, err := l.scoreAll(ctx, accepted)
	if err != nil {
		metrics.RecordIngestError()
		// Roll the whole batch back so a retry can load it instead of
		// seeing its own IDs reported as duplicates.
		for _, raw := range accepted {
			l.deduper.Unrecord(ctx, raw.ID)
		}
		return Summary{}, fmt.Errorf("scoring batch: %w", err)
	}
	summary.Loaded = len(scored)

	l.mu.Lock()
	pool := l.store.Snapshot(ctx)
	merged := make([]model.Candidate, 0, len(pool)+len(scored))
	merged = append(merged, pool...)
	merged = append(merged, scored...)

	if err := l.store.Replace(ctx, merged); err != nil {
		l.mu.Unlock()
		metrics.RecordIngestError()
		// Give the batch back to the deduper so a retry can succeed.
		for _, raw := range accepted {
			l.deduper.Unrecord(ctx, raw.ID)
		}
		return Summary{}, fmt.Errorf("replacing candidate pool: %w", err)
	}

	summary.PoolSize = l.store.Count(ctx)
	l.mu.Unlock()

	metrics.RecordBatchIngested()
	metrics.UpdatePoolSize(summary.PoolSize)
	metrics.RecordPoolReplaced()

	l.logger.Info(ctx, "batch loaded",
		logger.Int("received", summary.Received),
		logger.Int("loaded", summary.Loaded),
		logger.Int("duplicates", summary.Duplicates),
		logger.Int("pool_size", summary.PoolSize),
	)

	return summary, nil
}

// scoreAll fans the batch out to the worker pool. Results are written
// into an index-addressed slice so output order equals input order no
// matter which worker finishes first. A canceled context returns
// ctx.Err(); the caller rolls the batch back.
func (l *Loader) scoreAll(ctx context.Context, raws []model.RawCandidate) ([]model.Candidate, error) {
	if len(raws) == 0 {
		return nil, ctx.Err()
	}

	out := make([]model.Candidate, len(raws))
	jobs := make(chan int)

	workers := l.workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(raws) {
		workers = len(raws)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				scoreStart := time.Now()
				out[i] = l.engine.Apply(l.normalizer.Normalize(raws[i]))
				metrics.RecordScoringLatency(float64(time.Since(scoreStart).Milliseconds()))
				metrics.RecordCandidateScored()
			}
		}()
	}

	fed := 0
feed:
	for i := range raws {
		select {
		case <-ctx.Done():
			// Stop feeding; already-queued jobs still finish so the
			// fed prefix has no half-written entries.
			break feed
		case jobs <- i:
			fed++
		}
	}
	close(jobs)
	wg.Wait()

	return out[:fed], ctx.Err()
}

// LoadFile reads a candidate JSON file and ingests it as one batch.
// The file holds either a bare array of submissions or an object with
// a "candidates" array.
func (l *Loader) LoadFile(ctx context.Context, path string) (Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, fmt.Errorf("reading candidate file: %w", err)
	}

	raws, err := decodeBatch(data)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %s", ErrMalformedBatch, path)
	}

	return l.LoadBatch(ctx, raws)
}

func decodeBatch(data []byte) ([]model.RawCandidate, error) {
	var raws []model.RawCandidate
	if err := json.Unmarshal(data, &raws); err == nil {
		return raws, nil
	}

	var wrapped struct {
		Candidates []model.RawCandidate `json:"candidates"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, err
	}

	return wrapped.Candidates, nil
}
