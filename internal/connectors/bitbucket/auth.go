package bitbucket

import (
	"encoding/base64"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
)

// Creds turns a credential record into a transport-level Authorization
// header value. The two implementations form a closed tagged union; a
// configuration that satisfies neither is a programming error upstream, not
// a runtime condition handled here.
type Creds interface {
	// Auth returns the Authorization header value.
	Auth() string
	// BaseURL returns the API base URL the credential is valid for.
	BaseURL() string
}

// BasicCreds is the username/password variant.
type BasicCreds struct {
	Username string
	Password string
	URL      string
}

// Auth returns "Basic " + base64(username:password).
func (b *BasicCreds) Auth() string {
	auth := b.Username + ":" + b.Password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(auth))
}

// BaseURL returns the deployment's API base URL.
func (b *BasicCreds) BaseURL() string {
	return b.URL
}

// OAuthCreds is the bearer-token variant.
type OAuthCreds struct {
	Token   string
	Refresh string
	URL     string
}

// Auth returns "Bearer " + access token.
func (o *OAuthCreds) Auth() string {
	return "Bearer " + o.Token
}

// BaseURL returns the cloud API base URL.
func (o *OAuthCreds) BaseURL() string {
	return o.URL
}

var _ Creds = (*BasicCreds)(nil)
var _ Creds = (*OAuthCreds)(nil)

// CredsFromConfig selects the active credential variant from a
// configuration. BasicAuth wins when more than one is populated. Returns
// domain.ErrNoCredential when none is.
func CredsFromConfig(cfg *domain.Config) (Creds, error) {
	if cfg == nil {
		return nil, domain.ErrNoCredential
	}
	if cfg.BasicAuth != nil {
		return &BasicCreds{
			Username: cfg.BasicAuth.Username,
			Password: cfg.BasicAuth.Password,
			URL:      cfg.BasicAuth.URL,
		}, nil
	}
	if cfg.OAuth2Auth != nil {
		return &OAuthCreds{
			Token:   cfg.OAuth2Auth.AccessToken,
			Refresh: cfg.OAuth2Auth.RefreshToken,
			URL:     cfg.OAuth2Auth.URL,
		}, nil
	}
	return nil, domain.ErrNoCredential
}
