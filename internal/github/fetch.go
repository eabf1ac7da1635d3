package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Fetcher retrieves a URL and returns its decoded JSON body. Objects decode
// to map[string]any and arrays to []any.
type Fetcher interface {
	GetJSON(ctx context.Context, url string) (any, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) (any, error)

func (f FetcherFunc) GetJSON(ctx context.Context, url string) (any, error) {
	return f(ctx, url)
}

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error (%d) for %s: %s", e.StatusCode, e.URL, e.Body)
}

// HTTPFetcher issues exactly one GET per call. It does not retry or cache.
type HTTPFetcher struct {
	client *http.Client
	logger *log.Logger
}

// NewHTTPFetcher returns a fetcher backed by a fresh http.Client. A zero
// timeout leaves the transport default in place.
func NewHTTPFetcher(timeout time.Duration, logger *log.Logger) *HTTPFetcher {
	return NewHTTPFetcherWithClient(&http.Client{Timeout: timeout}, logger)
}

// NewHTTPFetcherWithClient wraps an existing client.
func NewHTTPFetcherWithClient(client *http.Client, logger *log.Logger) *HTTPFetcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &HTTPFetcher{client: client, logger: logger}
}

func (f *HTTPFetcher) GetJSON(ctx context.Context, url string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	f.logger.Debug("GET", "url", url, "status", resp.StatusCode, "elapsed", time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var body any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", url, err)
	}

	return body, nil
}
