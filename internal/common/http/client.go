// Package http is the single fetch primitive every loader goes through:
// one GET, raw bytes back, no retries.
package http

import (
	"context"
	"io"
	"net/http"
)

// Response is what a single GET produced. Body is fully read; an absent body
// is represented as nil.
type Response struct {
	StatusCode int
	Body       []byte
}

// Fetcher performs exactly one GET. A non-nil error means no response was
// received and the Response must be ignored.
type Fetcher interface {
	Get(ctx context.Context, url string) (*Response, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) (*Response, error)

func (f FetcherFunc) Get(ctx context.Context, url string) (*Response, error) {
	return f(ctx, url)
}

type Client struct {
	httpClient *http.Client
}

// NewClient wraps hc. A nil hc gets a client with the transport defaults and
// no timeout override.
func NewClient(hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{httpClient: hc}
}

// Default is shared by every loader that is not given its own Fetcher.
// http.Client is safe for concurrent use.
var Default = NewClient(nil)

func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	out := &Response{StatusCode: resp.StatusCode}
	// Error statuses are never decoded; drain so the connection is reused.
	if resp.StatusCode >= http.StatusBadRequest {
		_, _ = io.Copy(io.Discard, resp.Body)
		return out, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(body) > 0 {
		out.Body = body
	}
	return out, nil
}
