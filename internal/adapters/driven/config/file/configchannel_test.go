package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
)

func TestConfigChannel_GetConfig_MissingFile(t *testing.T) {
	ch, err := NewConfigChannel(t.TempDir())
	require.NoError(t, err)

	_, err = ch.GetConfig(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfigChannel_RoundTrip(t *testing.T) {
	ch, err := NewConfigChannel(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	cfg := &domain.Config{
		IntegrationType: domain.ModeSelfManaged,
		BasicAuth: &domain.BasicAuth{
			Username: "alice",
			Password: "app-pass",
			URL:      "https://bb.corp.example.com",
		},
		Accounts: map[string]domain.Account{
			"org-1": {ID: "org-1", Type: "org", Name: "Team One", TotalCount: 7},
		},
	}
	require.NoError(t, ch.SetConfig(ctx, cfg))

	got, err := ch.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeSelfManaged, got.IntegrationType)
	require.NotNil(t, got.BasicAuth)
	assert.Equal(t, "alice", got.BasicAuth.Username)
	assert.Equal(t, "app-pass", got.BasicAuth.Password)
	require.Contains(t, got.Accounts, "org-1")
	assert.Equal(t, 7, got.Accounts["org-1"].TotalCount)
}

func TestConfigChannel_SetConfig_ReplacesWholeDocument(t *testing.T) {
	ch, err := NewConfigChannel(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, ch.SetConfig(ctx, &domain.Config{
		IntegrationType: domain.ModeCloud,
		OAuth2Auth:      &domain.OAuth2Auth{AccessToken: "tok"},
	}))
	require.NoError(t, ch.SetConfig(ctx, &domain.Config{
		IntegrationType: domain.ModeSelfManaged,
	}))

	got, err := ch.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeSelfManaged, got.IntegrationType)
	assert.Nil(t, got.OAuth2Auth, "old credential must not leak through a rewrite")
}

func TestConfigChannel_RestrictedPermissions(t *testing.T) {
	ch, err := NewConfigChannel(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, ch.SetConfig(context.Background(), &domain.Config{}))

	info, err := os.Stat(ch.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigChannel_Watch_NotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	ch, err := NewConfigChannel(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notified := make(chan struct{}, 4)
	watchErr := make(chan error, 1)
	go func() {
		watchErr <- ch.Watch(ctx, func() {
			select {
			case notified <- struct{}{}:
			default:
			}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, ch.SetConfig(ctx, &domain.Config{IntegrationType: domain.ModeCloud}))

	select {
	case <-notified:
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change notification")
	}

	// Changes to unrelated files stay quiet.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0600))
	select {
	case <-notified:
		t.Fatal("unrelated file must not notify")
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	assert.ErrorIs(t, <-watchErr, context.Canceled)
}
