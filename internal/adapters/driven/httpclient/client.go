// Package httpclient adapts net/http to the transport port the bitbucket
// connector consumes. Transport failures are errors; HTTP status codes are
// data and travel back to the caller untouched.
package httpclient

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/ports/driven"
)

const defaultTimeout = 30 * time.Second

// Ensure Client implements the interface.
var _ driven.HTTPClient = (*Client)(nil)

// Client is the production driven.HTTPClient.
type Client struct {
	httpc *http.Client
}

// New creates a client with the default timeout.
func New() *Client {
	return &Client{httpc: &http.Client{Timeout: defaultTimeout}}
}

// NewWithClient wraps an existing *http.Client, used by tests and by
// callers that need custom transports.
func NewWithClient(httpc *http.Client) *Client {
	return &Client{httpc: httpc}
}

// Get performs a GET request and returns the body and status code. Non-2xx
// responses are not errors here; the connector decides what a 401 or 429
// means.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}
