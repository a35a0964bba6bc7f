package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_HasCredential(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"empty", Config{}, false},
		{"basic", Config{BasicAuth: &BasicAuth{Username: "u", Password: "p"}}, true},
		{"basic without username", Config{BasicAuth: &BasicAuth{}}, false},
		{"oauth", Config{OAuth2Auth: &OAuth2Auth{AccessToken: "t"}}, true},
		{"oauth without token", Config{OAuth2Auth: &OAuth2Auth{}}, false},
		{"api key", Config{APIKeyAuth: &APIKeyAuth{APIKey: "k"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.HasCredential())
		})
	}
}

func TestConfig_ClearCredentials(t *testing.T) {
	cfg := Config{
		BasicAuth:  &BasicAuth{Username: "u"},
		OAuth2Auth: &OAuth2Auth{AccessToken: "t"},
		APIKeyAuth: &APIKeyAuth{APIKey: "k"},
	}

	cfg.ClearCredentials()

	assert.Nil(t, cfg.BasicAuth)
	assert.Nil(t, cfg.OAuth2Auth)
	assert.Nil(t, cfg.APIKeyAuth)
	assert.False(t, cfg.HasCredential())
}

func TestConfig_ResetAccounts(t *testing.T) {
	cfg := Config{Accounts: map[string]Account{"1": {ID: "1"}}}

	cfg.ResetAccounts()

	assert.NotNil(t, cfg.Accounts)
	assert.Empty(t, cfg.Accounts)
}

func TestConfig_Clone_Deep(t *testing.T) {
	cfg := &Config{
		IntegrationType: ModeSelfManaged,
		BasicAuth:       &BasicAuth{Username: "u", Password: "p", URL: "https://bb"},
		OAuth2Auth:      &OAuth2Auth{AccessToken: "t", Scopes: []string{"repo"}},
		Accounts:        map[string]Account{"1": {ID: "1", Name: "one"}},
	}

	clone := cfg.Clone()
	require.NotNil(t, clone)

	// Mutating the clone must not touch the original.
	clone.BasicAuth.Username = "other"
	clone.OAuth2Auth.Scopes[0] = "email"
	clone.Accounts["2"] = Account{ID: "2"}

	assert.Equal(t, "u", cfg.BasicAuth.Username)
	assert.Equal(t, "repo", cfg.OAuth2Auth.Scopes[0])
	assert.Len(t, cfg.Accounts, 1)
}

func TestConfig_Clone_Nil(t *testing.T) {
	var cfg *Config
	assert.Nil(t, cfg.Clone())
}

func TestToAccount_Defaults(t *testing.T) {
	got := ToAccount(ConfigAccount{ID: "1", Public: true, Type: "repo"})

	assert.Equal(t, Account{
		ID:          "1",
		Public:      true,
		Type:        "repo",
		AvatarURL:   "",
		Name:        "",
		Description: "",
		TotalCount:  0,
	}, got)
}

func TestToAccount_AllFields(t *testing.T) {
	raw := ConfigAccount{
		ID:          "{ws-uuid}",
		Public:      false,
		Type:        "org",
		AvatarURL:   "https://example.test/avatar.png",
		Name:        "My Workspace",
		Description: "team workspace",
		TotalCount:  42,
	}

	got := ToAccount(raw)

	assert.Equal(t, raw.ID, got.ID)
	assert.Equal(t, raw.AvatarURL, got.AvatarURL)
	assert.Equal(t, raw.Name, got.Name)
	assert.Equal(t, raw.Description, got.Description)
	assert.Equal(t, raw.TotalCount, got.TotalCount)
}
