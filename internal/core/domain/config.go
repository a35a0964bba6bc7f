package domain

// IntegrationMode identifies how the Bitbucket deployment is hosted.
type IntegrationMode string

const (
	// ModeUnset means the user has not chosen a mode yet.
	ModeUnset IntegrationMode = ""
	// ModeCloud is the bitbucket.org cloud service.
	ModeCloud IntegrationMode = "CLOUD"
	// ModeSelfManaged is a self-hosted or third-party managed deployment.
	ModeSelfManaged IntegrationMode = "SELFMANAGED"
)

// Config is the unit of persisted integration state. It is created by the
// host before the wizard runs and handed back whole through the config
// channel after every meaningful change; the host owns its lifecycle.
//
// At most one credential variant is active at a time. When more than one is
// populated (a state the wizard itself never produces), BasicAuth wins for
// header construction.
type Config struct {
	// IntegrationType selects between the cloud and self-managed flows.
	IntegrationType IntegrationMode `json:"integration_type,omitempty" toml:"integration_type,omitempty"`

	// BasicAuth holds the self-managed credential. Nil when absent.
	BasicAuth *BasicAuth `json:"basic_auth,omitempty" toml:"basic_auth,omitempty"`

	// OAuth2Auth holds the cloud OAuth credential. Nil when absent.
	OAuth2Auth *OAuth2Auth `json:"oauth2_auth,omitempty" toml:"oauth2_auth,omitempty"`

	// APIKeyAuth holds an API key credential. Nil when absent.
	APIKeyAuth *APIKeyAuth `json:"apikey_auth,omitempty" toml:"apikey_auth,omitempty"`

	// Accounts maps account id to the discovered account. Keys are unique,
	// insertion order is irrelevant. A discovery run replaces the whole map.
	Accounts map[string]Account `json:"accounts,omitempty" toml:"accounts,omitempty"`
}

// HasCredential returns true if any credential variant is populated.
func (c *Config) HasCredential() bool {
	if c.BasicAuth != nil && c.BasicAuth.Username != "" {
		return true
	}
	if c.OAuth2Auth != nil && c.OAuth2Auth.AccessToken != "" {
		return true
	}
	if c.APIKeyAuth != nil && c.APIKeyAuth.APIKey != "" {
		return true
	}
	return false
}

// ClearCredentials removes every credential variant. Called when the
// integration mode changes so a stale credential from the previous mode
// cannot leak into the new flow.
func (c *Config) ClearCredentials() {
	c.BasicAuth = nil
	c.OAuth2Auth = nil
	c.APIKeyAuth = nil
}

// ResetAccounts replaces the account map with an empty one. Discovery calls
// this before every run so results never accumulate across runs.
func (c *Config) ResetAccounts() {
	c.Accounts = make(map[string]Account)
}

// Clone returns a deep copy. Steps mutate the copy and push it whole through
// the config channel, never aliasing the host's value.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	if c.BasicAuth != nil {
		ba := *c.BasicAuth
		out.BasicAuth = &ba
	}
	if c.OAuth2Auth != nil {
		oa := *c.OAuth2Auth
		oa.Scopes = append([]string(nil), c.OAuth2Auth.Scopes...)
		out.OAuth2Auth = &oa
	}
	if c.APIKeyAuth != nil {
		ak := *c.APIKeyAuth
		out.APIKeyAuth = &ak
	}
	if c.Accounts != nil {
		out.Accounts = make(map[string]Account, len(c.Accounts))
		for k, v := range c.Accounts {
			out.Accounts[k] = v
		}
	}
	return &out
}
