package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ecodena/greenscan/internal/config"
)

// Fetcher performs single bounded-timeout HTTP GETs for HTML pages.
// Every failure mode collapses into ErrPageUnavailable: the crawl
// treats an unreachable page and a non-HTML page identically.
type Fetcher struct {
	// client is the HTTP client; its Timeout bounds each request.
	client *http.Client

	// userAgent is the fixed identifying User-Agent header.
	userAgent string

	// maxBodySize limits the size of response bodies to read.
	maxBodySize int64
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.client.Timeout = d
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) FetcherOption {
	return func(f *Fetcher) {
		f.maxBodySize = size
	}
}

// WithHTTPClient replaces the underlying HTTP client.
// This allows custom transports in tests.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = client
	}
}

// NewFetcher creates a Fetcher with the default timeout, User-Agent and
// body size limit.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:      &http.Client{Timeout: config.DefaultTimeout},
		userAgent:   config.DefaultUserAgent,
		maxBodySize: config.DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch performs one GET request and returns the page HTML.
// It succeeds only when the status is exactly 200 and the declared
// content type contains "text/html"; any other outcome, including
// transport-level faults, returns an error wrapping ErrPageUnavailable.
// There are no retries; one call means one outbound request.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageUnavailable, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrPageUnavailable, resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		return "", fmt.Errorf("%w: content type %q", ErrPageUnavailable, ct)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageUnavailable, err)
	}

	return string(body), nil
}
