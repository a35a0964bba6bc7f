// Package oauth provides OAuth token refresh against Bitbucket Cloud.
package oauth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/bitbucket"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/ports/driven"
)

// Ensure Refresher implements the interface.
var _ driven.TokenRefresher = (*Refresher)(nil)

// Refresher exchanges a refresh token for a fresh access token using the
// standard refresh_token grant.
type Refresher struct {
	conf *oauth2.Config
}

// NewRefresher creates a refresher for the given OAuth consumer. An empty
// tokenURL selects the Bitbucket Cloud endpoint.
func NewRefresher(clientID, clientSecret, tokenURL string) *Refresher {
	endpoint := bitbucket.Endpoint
	if tokenURL != "" {
		endpoint = oauth2.Endpoint{TokenURL: tokenURL}
	}
	return &Refresher{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     endpoint,
		},
	}
}

// Refresh returns a new credential for the given refresh token. Providers
// that rotate refresh tokens return a new one; when none comes back the old
// one stays valid and is carried forward.
func (r *Refresher) Refresh(ctx context.Context, refreshToken string) (*domain.OAuth2Auth, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: no refresh token", domain.ErrTokenRefreshFailed)
	}

	src := r.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenRefreshFailed, err)
	}

	next := refreshToken
	if tok.RefreshToken != "" {
		next = tok.RefreshToken
	}
	return &domain.OAuth2Auth{
		AccessToken:  tok.AccessToken,
		RefreshToken: next,
		DateTS:       time.Now().UnixMilli(),
	}, nil
}
