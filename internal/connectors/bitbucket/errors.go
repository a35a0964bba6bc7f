package bitbucket

import (
	"errors"
	"fmt"
)

// APIError carries a Bitbucket API failure for logging. It stays inside the
// connector boundary: user-facing paths collapse it into
// domain.ErrCredentialFetch so status codes and URLs never leak.
type APIError struct {
	StatusCode int
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bitbucket: API error %d (endpoint: %s)", e.StatusCode, e.Endpoint)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401
	}
	return false
}

// ErrMissingPage indicates a pagination response advertised a next page
// without a page parameter.
var ErrMissingPage = errors.New("bitbucket: no page parameter in next link")
