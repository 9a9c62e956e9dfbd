// Package repository defines the candidate pool store interface and
// errors.
package repository

import (
	"context"

	"github.com/hiresight/hiresight/internal/domain/model"
)

// Store provides read access to the scored candidate pool plus atomic
// batch replacement. Snapshots are read-only: callers must not mutate
// returned candidates while an operation is in flight.
type Store interface {
	// Replace atomically swaps the pool for a new scored batch.
	Replace(ctx context.Context, pool []model.Candidate) error

	// Snapshot returns the pool ordered by score descending, stable on
	// insertion order for equal scores.
	Snapshot(ctx context.Context) []model.Candidate

	// Get returns one candidate by id. Returns ErrNotFound if the id
	// is unknown.
	Get(ctx context.Context, id string) (model.Candidate, error)

	// TopN returns the n highest-scored candidates. Returns
	// ErrInvalidLimit on n < 1.
	TopN(ctx context.Context, n int) ([]model.Candidate, error)

	// Count returns the number of candidates in the pool.
	Count(ctx context.Context) int
}
