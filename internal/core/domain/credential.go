package domain

import "time"

// BasicAuth stores username/password credentials for a self-managed
// Bitbucket deployment.
type BasicAuth struct {
	// Username is the Bitbucket username.
	Username string `json:"username" toml:"username"`
	// Password is the password or app password.
	Password string `json:"password" toml:"password"`
	// URL is the API base URL of the deployment.
	URL string `json:"url" toml:"url"`
}

// OAuth2Auth stores OAuth tokens obtained via the cloud authorization flow.
type OAuth2Auth struct {
	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token" toml:"access_token"`
	// RefreshToken is used to obtain new access tokens.
	RefreshToken string `json:"refresh_token,omitempty" toml:"refresh_token,omitempty"`
	// Scopes are the scopes granted by the authorization server.
	Scopes []string `json:"scopes,omitempty" toml:"scopes,omitempty"`
	// URL is the API base URL the token is valid for.
	URL string `json:"url" toml:"url"`
	// DateTS is the issuance timestamp in Unix milliseconds.
	DateTS int64 `json:"date_ts" toml:"date_ts"`
}

// APIKeyAuth stores an API key credential. Bitbucket does not issue these
// today; the field exists because the host config schema reserves it.
type APIKeyAuth struct {
	// APIKey is the raw key value.
	APIKey string `json:"apikey" toml:"apikey"`
	// URL is the API base URL of the deployment.
	URL string `json:"url" toml:"url"`
}

// IssuedAt returns the token issuance time.
func (o *OAuth2Auth) IssuedAt() time.Time {
	return time.UnixMilli(o.DateTS)
}
