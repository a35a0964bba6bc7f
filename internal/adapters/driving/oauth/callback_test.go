package oauth

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallbackServer_CapturesRedirectURL(t *testing.T) {
	srv := NewCallbackServer(0)
	require.NoError(t, srv.Start())
	defer srv.Stop()

	resp, err := http.Get(srv.RedirectURI() + "?profile=abc123&other=x")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := srv.WaitForRedirect(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, srv.RedirectURI()+"?profile=abc123&other=x", raw)
}

func TestCallbackServer_Timeout(t *testing.T) {
	srv := NewCallbackServer(0)
	require.NoError(t, srv.Start())
	defer srv.Stop()

	_, err := srv.WaitForRedirect(50 * time.Millisecond)

	assert.Error(t, err)
}

func TestCallbackServer_PicksFreePort(t *testing.T) {
	srv := NewCallbackServer(0)
	require.NoError(t, srv.Start())
	defer srv.Stop()

	assert.NotZero(t, srv.Port())
	assert.Equal(t, fmt.Sprintf("http://localhost:%d/setup", srv.Port()), srv.RedirectURI())
}

func TestFindAvailablePort(t *testing.T) {
	port, err := FindAvailablePort(49152, 49200)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, port, 49152)
	assert.LessOrEqual(t, port, 49200)
}
