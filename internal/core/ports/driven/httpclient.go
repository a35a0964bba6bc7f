package driven

import "context"

// HTTPClient is the transport contract the Bitbucket API client consumes.
// Implementations own timeouts and connection reuse; callers own headers.
type HTTPClient interface {
	// Get issues a GET and returns the raw body and status code. A non-2xx
	// status is NOT an error at this level; the caller decides.
	Get(ctx context.Context, url string, headers map[string]string) (body []byte, statusCode int, err error)
}
