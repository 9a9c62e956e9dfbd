// Package seed generates synthetic candidate submissions and drives
// them through a running hiresight service.
package seed

import (
	"time"
)

// Config controls a seeding run.
type Config struct {
	BaseURL       string
	NumCandidates int
	BatchSize     int
	Timeout       time.Duration
	OutputFile    string
	Verbose       bool
}

// Stats tracks the outcome of a seeding run.
type Stats struct {
	StartTime  time.Time
	Generated  int
	Loaded     int
	Duplicates int
	Batches    int
}
