// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/fda-fetch/pkg/types"
)

// Doer is the subset of *http.Client used by the stages. Tests substitute
// their own implementation to count or fail requests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// NewClient returns an *http.Client whose transport bounds the wait for
// response headers by cfg.Timeout. No overall client timeout is set so that
// large file bodies are not cut off; callers bound whole requests through
// their context instead.
func NewClient(cfg types.HTTPConfig) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = cfg.Timeout
	return &http.Client{Transport: transport}
}

// Get issues a GET for url with the configured User-Agent and returns the
// response when its status is 2xx. For any other status the body is drained
// and closed and a *StatusError is returned.
func Get(ctx context.Context, client Doer, url string, cfg types.HTTPConfig) (*http.Response, error) {
	resp, err := Do(ctx, client, url, cfg)
	if err != nil {
		return nil, err
	}
	if err := CheckStatus(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Do issues a GET for url with the configured User-Agent and returns the
// response whatever its status. The caller closes the body.
func Do(ctx context.Context, client Doer, url string, cfg types.HTTPConfig) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	return resp, nil
}

// CheckStatus returns a *StatusError, after draining and closing the body,
// when resp is not 2xx.
func CheckStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	url := ""
	if resp.Request != nil && resp.Request.URL != nil {
		url = resp.Request.URL.String()
	}
	return &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
}

// WithTimeout derives a context bounded by d. A zero d returns ctx unchanged
// with a no-op cancel.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
