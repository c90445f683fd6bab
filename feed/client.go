// Package feed implements the data-retrieval capabilities against a
// financial data provider: fundamental statements, quotes and news search.
//
// Capabilities here are pure request/response wrappers. They carry no retry
// or concurrency logic of their own; their single job besides fetching is to
// classify failures accurately (rate limits map to KindThrottled) so the
// engine can decide what to retry.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ClientOptions configure NewClient.
type ClientOptions struct {
	HTTPClient *http.Client
}

// Client holds the shared HTTP plumbing for all feed capabilities: base URL,
// API key and response decoding. Safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient constructs a feed client for the given provider endpoint.
func NewClient(baseURL, apiKey string, optFns ...func(o *ClientOptions)) *Client {
	opts := ClientOptions{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{baseURL: baseURL, apiKey: apiKey, httpClient: opts.HTTPClient}
}

// get fetches path with the given query parameters and decodes the JSON body
// into v. HTTP 429 and 503 map to throttled statusError values so callers can
// classify them as transient.
func (c *Client) get(ctx context.Context, path string, params url.Values, v any) error {
	if params == nil {
		params = url.Values{}
	}
	if c.apiKey != "" {
		params.Set("apikey", c.apiKey)
	}

	u := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &statusError{code: resp.StatusCode, body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// statusError is a non-2xx provider response.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("provider returned HTTP %d: %s", e.code, e.body)
}

// throttled reports whether the status signals the caller should back off.
// 429 is the provider's rate limit; 503 shows up during provider session
// renegotiation windows.
func (e *statusError) throttled() bool {
	return e.code == http.StatusTooManyRequests || e.code == http.StatusServiceUnavailable
}
