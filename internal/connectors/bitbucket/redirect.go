package bitbucket

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
)

// redirectProfile is the JSON document carried in the redirect's profile
// query parameter: base64(urlencode(JSON)).
type redirectProfile struct {
	Integration struct {
		Auth struct {
			AccessToken  string   `json:"accessToken"`
			RefreshToken string   `json:"refreshToken"`
			Scopes       []string `json:"scopes"`
		} `json:"auth"`
	} `json:"Integration"`
}

// ParseRedirect extracts a durable OAuth credential from a post-OAuth
// redirect URL. The query string is split on '&' and '=' with last-wins on
// duplicate keys; only the value of the key named "profile" is decoded
// (URL-decode, base64-decode, JSON-parse). Every malformation folds into
// domain.ErrRedirectParse - the wizard cannot proceed past a broken
// redirect, so the failure is surfaced rather than swallowed.
func ParseRedirect(rawURL string) (*domain.OAuth2Auth, error) {
	parts := strings.SplitN(rawURL, "?", 2)
	if len(parts) != 2 || parts[1] == "" {
		return nil, fmt.Errorf("%w: no query string", domain.ErrRedirectParse)
	}

	params := map[string]string{}
	for _, pair := range strings.Split(parts[1], "&") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			continue
		}
		params[kv[0]] = kv[1]
	}

	encoded, ok := params["profile"]
	if !ok {
		return nil, fmt.Errorf("%w: no profile parameter", domain.ErrRedirectParse)
	}

	unescaped, err := url.QueryUnescape(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRedirectParse, err)
	}
	decoded, err := base64.StdEncoding.DecodeString(unescaped)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRedirectParse, err)
	}

	var profile redirectProfile
	if err := json.Unmarshal(decoded, &profile); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRedirectParse, err)
	}

	auth := profile.Integration.Auth
	if auth.AccessToken == "" {
		return nil, fmt.Errorf("%w: no access token", domain.ErrRedirectParse)
	}

	return &domain.OAuth2Auth{
		AccessToken:  auth.AccessToken,
		RefreshToken: auth.RefreshToken,
		Scopes:       auth.Scopes,
		URL:          CloudBaseURL,
		DateTS:       time.Now().UnixMilli(),
	}, nil
}
