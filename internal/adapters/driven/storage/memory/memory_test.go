package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
)

func TestConfigChannel_EmptyReturnsNotFound(t *testing.T) {
	ch := NewConfigChannel()

	_, err := ch.GetConfig(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfigChannel_RoundTrip(t *testing.T) {
	ch := NewConfigChannel()
	ctx := context.Background()

	cfg := &domain.Config{
		IntegrationType: domain.ModeCloud,
		OAuth2Auth:      &domain.OAuth2Auth{AccessToken: "tok"},
	}
	require.NoError(t, ch.SetConfig(ctx, cfg))

	got, err := ch.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeCloud, got.IntegrationType)
	require.NotNil(t, got.OAuth2Auth)
	assert.Equal(t, "tok", got.OAuth2Auth.AccessToken)
	assert.Equal(t, 1, ch.SetCalls)
}

func TestConfigChannel_GetReturnsCopy(t *testing.T) {
	ch := NewConfigChannelWith(&domain.Config{IntegrationType: domain.ModeSelfManaged})
	ctx := context.Background()

	got, err := ch.GetConfig(ctx)
	require.NoError(t, err)

	// Mutating the returned config must not affect the stored one.
	got.IntegrationType = domain.ModeCloud

	again, err := ch.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeSelfManaged, again.IntegrationType)
}

func TestInstallGate(t *testing.T) {
	gate := NewInstallGate()

	assert.False(t, gate.Installed())
	assert.False(t, gate.Enabled())

	gate.SetInstallEnabled(true)
	assert.True(t, gate.Enabled())
	assert.Equal(t, 1, gate.EnableCalls)

	gate.SetInstalled(true)
	assert.True(t, gate.Installed())
}

func TestStateStore_Watermark(t *testing.T) {
	store := NewStateStore()
	ctx := context.Background()

	_, ok, err := store.LastValidated(ctx, "inst-1")
	require.NoError(t, err)
	assert.False(t, ok)

	now := time.Now()
	require.NoError(t, store.SetLastValidated(ctx, "inst-1", now))

	ts, ok, err := store.LastValidated(ctx, "inst-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, now, ts)
}

func TestStateStore_Accounts(t *testing.T) {
	store := NewStateStore()
	ctx := context.Background()

	accounts, err := store.Accounts(ctx, "inst-1")
	require.NoError(t, err)
	assert.Empty(t, accounts)

	saved := []domain.Account{{ID: "a1", Type: "org", TotalCount: 3}}
	require.NoError(t, store.SaveAccounts(ctx, "inst-1", saved))

	accounts, err = store.Accounts(ctx, "inst-1")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "a1", accounts[0].ID)

	// Replaces, never appends.
	require.NoError(t, store.SaveAccounts(ctx, "inst-1", []domain.Account{{ID: "a2"}}))
	accounts, err = store.Accounts(ctx, "inst-1")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "a2", accounts[0].ID)
}
