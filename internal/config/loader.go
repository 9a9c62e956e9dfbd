package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if HIRESIGHT_CONFIG is set
//  3. env (prefix HIRESIGHT_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("HIRESIGHT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: HIRESIGHT_ADDR, HIRESIGHT_WORKER_COUNT, ...
	// Map env keys like HIRESIGHT_WORKER_COUNT -> worker_count (flat
	// keys, underscores preserved to match the koanf struct tags).
	envProvider := env.Provider("HIRESIGHT_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "hiresight_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.WorkerCount < 1 {
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	}
	if c.MaxQueryLimit < 1 {
		return fmt.Errorf("%w: max_query_limit must be positive", ErrInvalidConfig)
	}
	if c.ArbitrageFactor <= 0 {
		return fmt.Errorf("%w: arbitrage_factor must be positive", ErrInvalidConfig)
	}
	if c.QualityScoreThreshold < 0 || c.QualityScoreThreshold > 100 {
		return fmt.Errorf("%w: quality_score_threshold must be in [0,100]", ErrInvalidConfig)
	}
	return nil
}
