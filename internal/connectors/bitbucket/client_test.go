package bitbucket

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
)

// stubHTTP implements driven.HTTPClient with a per-call function.
type stubHTTP struct {
	calls   []string
	headers []map[string]string
	fn      func(url string) ([]byte, int, error)
}

func (s *stubHTTP) Get(_ context.Context, url string, headers map[string]string) ([]byte, int, error) {
	s.calls = append(s.calls, url)
	s.headers = append(s.headers, headers)
	return s.fn(url)
}

// stubRefresher implements driven.TokenRefresher.
type stubRefresher struct {
	auth *domain.OAuth2Auth
	err  error
}

func (s *stubRefresher) Refresh(context.Context, string) (*domain.OAuth2Auth, error) {
	return s.auth, s.err
}

func TestClient_FetchWorkspaces_Success(t *testing.T) {
	body := `{"page":1,"pagelen":100,"size":1,"values":[{"uuid":"{w1}","name":"Workspace One","slug":"w1","is_private":true,"type":"workspace"}]}`
	httpc := &stubHTTP{fn: func(string) ([]byte, int, error) {
		return []byte(body), 200, nil
	}}
	client := NewClient(httpc, &BasicCreds{Username: "u", Password: "p"})

	workspaces, err := client.FetchWorkspaces(context.Background())

	require.NoError(t, err)
	require.Len(t, workspaces, 1)
	assert.Equal(t, domain.Workspace{
		UUID:      "{w1}",
		Name:      "Workspace One",
		Slug:      "w1",
		IsPrivate: true,
		Type:      "workspace",
	}, workspaces[0])

	// The request carries the basic header and hits the cloud base URL by
	// default.
	require.Len(t, httpc.calls, 1)
	assert.Contains(t, httpc.calls[0], CloudBaseURL+"/2.0/workspaces")
	assert.Contains(t, httpc.headers[0]["Authorization"], "Basic ")
}

func TestClient_FetchWorkspaces_CollapsesFailures(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) ([]byte, int, error)
	}{
		{
			name: "non-200 status",
			fn: func(string) ([]byte, int, error) {
				return []byte(`{"error":"forbidden"}`), 403, nil
			},
		},
		{
			name: "transport failure",
			fn: func(string) ([]byte, int, error) {
				return nil, 0, errors.New("connection refused")
			},
		},
		{
			name: "decode failure",
			fn: func(string) ([]byte, int, error) {
				return []byte(`not json`), 200, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(&stubHTTP{fn: tt.fn}, &BasicCreds{Username: "u", Password: "p"})

			_, err := client.FetchWorkspaces(context.Background())

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrCredentialFetch)
			// Exactly the fixed message: no status code, no cause text.
			assert.Equal(t, "error fetching workspaces, check credentials", err.Error())
		})
	}
}

func TestClient_Paginate_FollowsNextLinks(t *testing.T) {
	first := `{"size":2,"next":"https://api.bitbucket.org/2.0/workspaces?page=2","values":[{"uuid":"{w1}","slug":"w1"}]}`
	second := `{"size":2,"values":[{"uuid":"{w2}","slug":"w2"}]}`
	httpc := &stubHTTP{fn: func(url string) ([]byte, int, error) {
		if strings.Contains(url, "page=2") {
			return []byte(second), 200, nil
		}
		return []byte(first), 200, nil
	}}
	client := NewClient(httpc, &BasicCreds{Username: "u", Password: "p"})

	details, err := client.FetchWorkspaceDetails(context.Background())

	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, "w1", details[0].Slug)
	assert.Equal(t, "w2", details[1].Slug)
	assert.Len(t, httpc.calls, 2)
}

func TestClient_Get_RefreshesOAuthTokenOn401(t *testing.T) {
	var attempt int
	httpc := &stubHTTP{fn: func(string) ([]byte, int, error) {
		attempt++
		if attempt == 1 {
			return nil, 401, nil
		}
		return []byte(`{"username":"robin","uuid":"{u1}"}`), 200, nil
	}}
	refresher := &stubRefresher{auth: &domain.OAuth2Auth{AccessToken: "fresh", RefreshToken: "r2"}}
	creds := &OAuthCreds{Token: "stale", Refresh: "r1"}
	client := NewClient(httpc, creds, WithTokenRefresher(refresher))

	user, err := client.FetchMyUser(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "robin", user.Username)
	assert.Equal(t, "fresh", creds.Token)
	assert.Equal(t, "r2", creds.Refresh)
	require.Len(t, httpc.headers, 2)
	assert.Equal(t, "Bearer stale", httpc.headers[0]["Authorization"])
	assert.Equal(t, "Bearer fresh", httpc.headers[1]["Authorization"])
}

func TestClient_Get_NoRefreshForBasicCreds(t *testing.T) {
	httpc := &stubHTTP{fn: func(string) ([]byte, int, error) {
		return nil, 401, nil
	}}
	client := NewClient(httpc, &BasicCreds{Username: "u", Password: "p"},
		WithTokenRefresher(&stubRefresher{auth: &domain.OAuth2Auth{AccessToken: "x"}}))

	_, err := client.FetchMyUser(context.Background())

	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Len(t, httpc.calls, 1)
}

func TestClient_FetchRepoCount(t *testing.T) {
	httpc := &stubHTTP{fn: func(url string) ([]byte, int, error) {
		assert.Contains(t, url, "/2.0/repositories/w1")
		assert.Contains(t, url, "pagelen=1")
		return []byte(`{"size":17,"values":[]}`), 200, nil
	}}
	client := NewClient(httpc, &BasicCreds{Username: "u", Password: "p"})

	count, err := client.FetchRepoCount(context.Background(), "w1")

	require.NoError(t, err)
	assert.Equal(t, 17, count)
}

func TestClient_BaseURLFromCredential(t *testing.T) {
	httpc := &stubHTTP{fn: func(url string) ([]byte, int, error) {
		assert.Contains(t, url, "https://bb.internal/2.0/user")
		return []byte(`{"username":"u"}`), 200, nil
	}}
	client := NewClient(httpc, &BasicCreds{Username: "u", Password: "p", URL: "https://bb.internal/"})

	_, err := client.FetchMyUser(context.Background())

	require.NoError(t, err)
}
