package validate

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
)

// stubHTTP routes requests to canned responses by URL substring.
type stubHTTP struct {
	responses map[string]string // substring -> body
	statuses  map[string]int    // substring -> status, default 200
	err       error
}

func (s *stubHTTP) Get(_ context.Context, url string, _ map[string]string) ([]byte, int, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	for sub, body := range s.responses {
		if strings.Contains(url, sub) {
			status := http.StatusOK
			if st, ok := s.statuses[sub]; ok {
				status = st
			}
			return []byte(body), status, nil
		}
	}
	return []byte(`{}`), http.StatusNotFound, nil
}

func cloudConfig() *domain.Config {
	return &domain.Config{
		IntegrationType: domain.ModeCloud,
		OAuth2Auth:      &domain.OAuth2Auth{AccessToken: "tok"},
	}
}

const workspacesBody = `{
	"page": 1, "pagelen": 100, "size": 2, "next": "",
	"values": [
		{"uuid": "{user-uuid}", "slug": "alice", "name": "Alice", "is_private": true, "type": "workspace",
		 "links": {"avatar": {"href": "https://a/alice.png"}, "html": {"href": "https://bitbucket.org/alice"}}},
		{"uuid": "{org-uuid}", "slug": "team-one", "name": "Team One", "is_private": false, "type": "workspace",
		 "links": {"avatar": {"href": "https://a/team.png"}, "html": {"href": "https://bitbucket.org/team-one"}}}
	]
}`

func TestValidator_Validate_BuildsAccounts(t *testing.T) {
	httpc := &stubHTTP{responses: map[string]string{
		"/2.0/workspaces":            workspacesBody,
		"/2.0/user":                  `{"uuid": "{user-uuid}", "username": "alice", "display_name": "Alice"}`,
		"/2.0/repositories/alice":    `{"page": 1, "pagelen": 1, "size": 3, "values": []}`,
		"/2.0/repositories/team-one": `{"page": 1, "pagelen": 1, "size": 42, "values": []}`,
	}}

	v := NewValidator(httpc)
	accounts, err := v.Validate(context.Background(), cloudConfig())

	require.NoError(t, err)
	require.Len(t, accounts, 2)

	byID := map[string]domain.ConfigAccount{}
	for _, a := range accounts {
		byID[a.ID] = a
	}

	personal := byID["{user-uuid}"]
	assert.Equal(t, "user", personal.Type)
	assert.False(t, personal.Public)
	assert.Equal(t, "Alice", personal.Name)
	assert.Equal(t, 3, personal.TotalCount)
	assert.Equal(t, "https://a/alice.png", personal.AvatarURL)

	org := byID["{org-uuid}"]
	assert.Equal(t, "org", org.Type)
	assert.True(t, org.Public)
	assert.Equal(t, 42, org.TotalCount)
	assert.Equal(t, "https://bitbucket.org/team-one", org.Description)
}

func TestValidator_Validate_RepoCountFailureIsNotFatal(t *testing.T) {
	httpc := &stubHTTP{
		responses: map[string]string{
			"/2.0/workspaces":            workspacesBody,
			"/2.0/user":                  `{"uuid": "{user-uuid}"}`,
			"/2.0/repositories/alice":    `{"page": 1, "pagelen": 1, "size": 3, "values": []}`,
			"/2.0/repositories/team-one": `{"error": "boom"}`,
		},
		statuses: map[string]int{"/2.0/repositories/team-one": http.StatusInternalServerError},
	}

	v := NewValidator(httpc)
	accounts, err := v.Validate(context.Background(), cloudConfig())

	require.NoError(t, err)
	require.Len(t, accounts, 2)
	for _, a := range accounts {
		if a.ID == "{org-uuid}" {
			assert.Zero(t, a.TotalCount)
		}
	}
}

func TestValidator_Validate_NoCredential(t *testing.T) {
	v := NewValidator(&stubHTTP{})

	_, err := v.Validate(context.Background(), &domain.Config{})

	assert.ErrorIs(t, err, domain.ErrNoCredential)
}

func TestValidator_Validate_WorkspaceFetchFailure(t *testing.T) {
	v := NewValidator(&stubHTTP{err: errors.New("network down")})

	_, err := v.Validate(context.Background(), cloudConfig())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch workspaces")
}
