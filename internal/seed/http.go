package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hiresight/hiresight/internal/domain/model"
	"github.com/hiresight/hiresight/pkg/logger"
)

// HTTPClient wraps http.Client with a request timeout.
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
	}
}

type batchResponse struct {
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
	Total   int `json:"total"`
}

// checkServiceHealth verifies the target service answers before the
// run starts submitting batches.
func checkServiceHealth(ctx context.Context, client *HTTPClient, baseURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("building health request: %w", err)
	}
	resp, err := client.client.Do(req)
	if err != nil {
		return fmt.Errorf("service unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status %d", resp.StatusCode)
	}
	return nil
}

// submitBatches posts the candidates in fixed-size batches and
// accumulates load statistics.
func submitBatches(ctx context.Context, client *HTTPClient, cfg *Config, raws []model.RawCandidate, stats *Stats) error {
	url := cfg.BaseURL + "/candidates"

	for start := 0; start < len(raws); start += cfg.BatchSize {
		end := start + cfg.BatchSize
		if end > len(raws) {
			end = len(raws)
		}

		resp, err := postBatch(ctx, client, url, raws[start:end])
		if err != nil {
			return fmt.Errorf("batch %d failed: %w", stats.Batches+1, err)
		}

		stats.Batches++
		stats.Loaded += resp.Loaded
		stats.Duplicates += resp.Skipped

		if cfg.Verbose {
			logger.Get().Info(ctx, "batch submitted",
				logger.Int("batch", stats.Batches),
				logger.Int("loaded", resp.Loaded),
				logger.Int("skipped", resp.Skipped),
				logger.Int("poolSize", resp.Total),
			)
		}
	}
	return nil
}

func postBatch(ctx context.Context, client *HTTPClient, url string, batch []model.RawCandidate) (batchResponse, error) {
	body, err := json.Marshal(batch)
	if err != nil {
		return batchResponse{}, fmt.Errorf("marshaling batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return batchResponse{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.client.Do(req)
	if err != nil {
		return batchResponse{}, fmt.Errorf("posting batch: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return batchResponse{}, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return batchResponse{}, fmt.Errorf("status %d: %s", resp.StatusCode, data)
	}

	var out batchResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return batchResponse{}, fmt.Errorf("decoding response: %w", err)
	}
	return out, nil
}

// fetchOverview retrieves the post-seed overview block for the final
// report.
func fetchOverview(ctx context.Context, client *HTTPClient, baseURL string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/overview", nil)
	if err != nil {
		return nil, fmt.Errorf("building overview request: %w", err)
	}
	resp, err := client.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching overview: %w", err)
	}
	defer resp.Body.Close()

	var overview map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&overview); err != nil {
		return nil, fmt.Errorf("decoding overview: %w", err)
	}
	return overview, nil
}
