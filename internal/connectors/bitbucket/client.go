package bitbucket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/ports/driven"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/logger"
)

const (
	// CloudBaseURL is the Bitbucket cloud API base URL.
	CloudBaseURL = "https://api.bitbucket.org"

	// DefaultPageLength is the page size requested from list endpoints.
	DefaultPageLength = "100"

	// rateLimitBackoff pauses requests after a 429 response.
	rateLimitBackoff = 30 * time.Second
)

// Client calls the Bitbucket 2.0 REST API through the transport contract.
// One Client serves one credential.
type Client struct {
	httpc     driven.HTTPClient
	creds     Creds
	baseURL   string
	refresher driven.TokenRefresher
	limiter   *RateLimiter
}

// Option configures a Client.
type Option func(*Client)

// WithTokenRefresher enables one refresh-and-retry on a 401 response when
// the credential is an OAuth credential.
func WithTokenRefresher(r driven.TokenRefresher) Option {
	return func(c *Client) { c.refresher = r }
}

// WithRateLimiter replaces the default rate limiter.
func WithRateLimiter(l *RateLimiter) Option {
	return func(c *Client) { c.limiter = l }
}

// NewClient creates an API client for the given credential. The base URL
// comes from the credential; empty means Bitbucket cloud.
func NewClient(httpc driven.HTTPClient, creds Creds, opts ...Option) *Client {
	c := &Client{
		httpc:   httpc,
		creds:   creds,
		baseURL: strings.TrimSuffix(creds.BaseURL(), "/"),
		limiter: NewRateLimiter(),
	}
	if c.baseURL == "" {
		c.baseURL = CloudBaseURL
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// endpointURL joins the base URL, the API version prefix and the endpoint.
func (c *Client) endpointURL(endpoint string, params url.Values) string {
	u := c.baseURL + "/2.0/" + strings.TrimPrefix(endpoint, "/")
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// get issues an authorized GET and decodes the body into out. A 401 with an
// OAuth credential triggers one token refresh and retry.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) (int, error) {
	return c.getRetry(ctx, endpoint, params, out, true)
}

func (c *Client) getRetry(ctx context.Context, endpoint string, params url.Values, out any, allowRefresh bool) (int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limit wait: %w", err)
	}

	body, status, err := c.httpc.Get(ctx, c.endpointURL(endpoint, params), map[string]string{
		"Authorization": c.creds.Auth(),
		"Accept":        "application/json",
	})
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", endpoint, err)
	}

	if status == http.StatusUnauthorized && allowRefresh {
		if oauth, ok := c.creds.(*OAuthCreds); ok && c.refresher != nil && oauth.Refresh != "" {
			logger.Debug("401 from %s, refreshing oauth token", endpoint)
			fresh, err := c.refresher.Refresh(ctx, oauth.Refresh)
			if err != nil {
				return status, fmt.Errorf("refresh token: %w", err)
			}
			oauth.Token = fresh.AccessToken
			if fresh.RefreshToken != "" {
				oauth.Refresh = fresh.RefreshToken
			}
			return c.getRetry(ctx, endpoint, params, out, false)
		}
	}

	if status == http.StatusTooManyRequests {
		c.limiter.Backoff(rateLimitBackoff)
	}

	if status != http.StatusOK {
		return status, &APIError{StatusCode: status, Endpoint: endpoint}
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return status, fmt.Errorf("decode %s: %w", endpoint, err)
		}
	}
	return status, nil
}

// paginate walks a list endpoint page by page, handing each page's raw
// values to fn.
func (c *Client) paginate(ctx context.Context, endpoint string, params url.Values, fn func(values json.RawMessage) error) error {
	page := ""
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if page != "" {
			params.Set("page", page)
		}
		var res paginationResponse
		if _, err := c.get(ctx, endpoint, params, &res); err != nil {
			return err
		}
		if len(res.Values) > 0 {
			if err := fn(res.Values); err != nil {
				return err
			}
		}
		if res.Next == "" {
			return nil
		}
		u, err := url.Parse(res.Next)
		if err != nil {
			return fmt.Errorf("parse next link: %w", err)
		}
		page = u.Query().Get("page")
		if page == "" {
			return ErrMissingPage
		}
	}
}
