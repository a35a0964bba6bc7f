package driven

import (
	"context"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
)

// TokenRefresher exchanges a refresh token for a fresh OAuth credential.
// Used by the API client when a request comes back 401 with OAuth auth.
type TokenRefresher interface {
	// Refresh returns a new credential for the given refresh token.
	Refresh(ctx context.Context, refreshToken string) (*domain.OAuth2Auth, error)
}
