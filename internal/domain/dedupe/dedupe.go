// Package dedupe tracks seen candidate submission IDs so repeated
// batch loads stay idempotent.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen submission IDs for at-most-once ingestion.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if
	// not. Returns true if id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord removes an ID, allowing the submission to be reloaded.
	Unrecord(ctx context.Context, id string)

	Size() int64
}

// inMemoryDeduper implements Deduper with a bounded map. When the
// bound is reached, the oldest recorded IDs are evicted first.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]bool
	order   []string
	maxSize int
}

// NewInMemoryDeduper creates an in-memory deduper with configuration
// options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: defaultMaxSize,
		seen:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.seen[id] {
		return true
	}
	if d.maxSize > 0 && len(d.seen) >= d.maxSize {
		d.evictOldest()
	}
	d.seen[id] = true
	d.order = append(d.order, id)
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.seen[id] {
		return
	}
	delete(d.seen, id)
	for i, cur := range d.order {
		if cur == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}

// evictOldest drops the least recently recorded ID. Must be called
// with d.mu held.
func (d *inMemoryDeduper) evictOldest() {
	if len(d.order) == 0 {
		return
	}
	delete(d.seen, d.order[0])
	d.order = d.order[1:]
}
