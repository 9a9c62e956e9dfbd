// Package config defines service configuration and loading.
//
// Conventions:
// - Defaults come from New(); Load layers file and env on top.
// - External errors must be wrapped via this package's sentinels.
package config

import (
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// WorkerCount sets the number of ingest scoring workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds the submission-id dedupe cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxQueryLimit caps GET /candidates?limit.
	MaxQueryLimit int `koanf:"max_query_limit"`

	// TeamWindow bounds how many top candidates team composition
	// considers. Zero means derive from team size.
	TeamWindow int `koanf:"team_window"`

	// ArbitrageFactor is the value-ratio multiplier a country must
	// beat to count as a geographic arbitrage opportunity.
	ArbitrageFactor float64 `koanf:"arbitrage_factor"`

	// ArbitrageMinCount is the minimum candidates per country before
	// it appears in arbitrage output.
	ArbitrageMinCount int `koanf:"arbitrage_min_count"`

	// QualityScoreThreshold marks a candidate as high quality for
	// scarcity and overview statistics.
	QualityScoreThreshold float64 `koanf:"quality_score_threshold"`

	// HighValueSalaryCeiling caps the salary a high-value candidate
	// may expect.
	HighValueSalaryCeiling float64 `koanf:"high_value_salary_ceiling"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		Addr:                   ":9080",
		WorkerCount:            runtime.NumCPU() * 4,
		DedupeSize:             500_000,
		MaxQueryLimit:          100,
		TeamWindow:             0,
		ArbitrageFactor:        1.2,
		ArbitrageMinCount:      3,
		QualityScoreThreshold:  80,
		HighValueSalaryCeiling: 100_000,
	}
}
