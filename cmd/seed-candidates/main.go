package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/hiresight/hiresight/internal/seed"
	"github.com/hiresight/hiresight/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumCandidates = 1000
	defaultBatchSize     = 200
	defaultTimeout       = 30 * time.Second
	defaultRunTimeout    = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		num        = flag.Int("candidates", defaultNumCandidates, "Number of candidates to generate and submit")
		batchSize  = flag.Int("batch", defaultBatchSize, "Submissions per POST /candidates batch")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Optional file to write the generated submissions to")
		verbose    = flag.Bool("verbose", false, "Log each batch result")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &seed.Config{
		BaseURL:       *baseURL,
		NumCandidates: *num,
		BatchSize:     *batchSize,
		Timeout:       *timeout,
		OutputFile:    *outputFile,
		Verbose:       *verbose,
	}

	if err := seed.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("seeding failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
