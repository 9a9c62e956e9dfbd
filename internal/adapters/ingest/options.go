package ingest

import (
	"github.com/hiresight/hiresight/internal/domain/normalize"
	"github.com/hiresight/hiresight/internal/domain/scoring"
	"github.com/hiresight/hiresight/pkg/logger"
)

// Option configures a Loader.
type Option func(*Loader)

// WithWorkerCount sets how many goroutines normalize and score a
// batch. Values below one are ignored.
func WithWorkerCount(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithNormalizer replaces the default normalizer.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(l *Loader) {
		if n != nil {
			l.normalizer = n
		}
	}
}

// WithEngine replaces the default scoring engine.
func WithEngine(e *scoring.Engine) Option {
	return func(l *Loader) {
		if e != nil {
			l.engine = e
		}
	}
}

// WithLogger sets the loader logger.
func WithLogger(lg logger.Logger) Option {
	return func(l *Loader) {
		if lg != nil {
			l.logger = lg
		}
	}
}
