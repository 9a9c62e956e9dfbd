package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/hiresight/hiresight/internal/domain/model"
)

// MemStore is an in-memory Store. The pool is kept pre-sorted by score
// descending so Snapshot and TopN are copy-free slices over the sorted
// backing array rebuilt on Replace.
type MemStore struct {
	mu     sync.RWMutex
	sorted []model.Candidate
	byID   map[string]int
}

// NewMemStore creates an empty in-memory candidate store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		byID: make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Replace swaps the pool for a new batch. The batch is copied and
// sorted by score descending, stable on input order.
func (s *MemStore) Replace(_ context.Context, pool []model.Candidate) error {
	sorted := make([]model.Candidate, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OverallScore > sorted[j].OverallScore
	})

	byID := make(map[string]int, len(sorted))
	for i, c := range sorted {
		if _, ok := byID[c.ID]; !ok {
			byID[c.ID] = i
		}
	}

	s.mu.Lock()
	s.sorted = sorted
	s.byID = byID
	s.mu.Unlock()

	return nil
}

// Snapshot returns the pool ordered by score descending. Callers must
// treat the returned slice as read-only.
func (s *MemStore) Snapshot(_ context.Context) []model.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sorted
}

// Get returns a candidate by id.
func (s *MemStore) Get(_ context.Context, id string) (model.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return model.Candidate{}, ErrNotFound
	}

	return s.sorted[i], nil
}

// TopN returns the n highest-scored candidates, or the whole pool if
// it holds fewer than n.
func (s *MemStore) TopN(_ context.Context, n int) ([]model.Candidate, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > len(s.sorted) {
		n = len(s.sorted)
	}

	return s.sorted[:n], nil
}

// Count returns the pool size.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sorted)
}
