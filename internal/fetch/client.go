// Package fetch is the blocking HTTP collaborator for the upstream sources.
// A transport error and a non-success status both come back as an error;
// callers treat either as "no data this cycle".
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	requestTimeout   = 8 * time.Second
	defaultUserAgent = "voidwatch/1.0"
)

// Client performs rate-limited GETs against the upstream JSON sources.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// NewClient builds a client with a bounded request timeout and a limiter
// sized so a full fallback burst (three endpoints) passes without waiting.
func NewClient() *Client {
	return &Client{
		http:      &http.Client{Timeout: requestTimeout},
		limiter:   rate.NewLimiter(rate.Every(time.Second), 3),
		userAgent: defaultUserAgent,
	}
}

// Fetch GETs the URL and returns the raw body.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}
