package driving

import (
	"context"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
)

// SetupService drives the integration configuration wizard. All work is
// triggered by discrete events (mode chosen, form submitted, redirect
// arrived); between events the service is idle. Two operations never run
// concurrently against the same configuration.
type SetupService interface {
	// State derives the current wizard state from host context and the
	// persisted configuration. Pure with respect to stored state.
	State(ctx context.Context, rc domain.RedirectContext) (domain.SetupState, error)

	// ChooseMode writes the integration mode into the configuration and
	// clears any credential left over from a previous mode.
	ChooseMode(ctx context.Context, mode domain.IntegrationMode) error

	// SubmitBasicAuth verifies a self-managed credential by listing
	// workspaces with it. On success the credential is persisted and the
	// workspace list returned; on failure nothing is written.
	SubmitBasicAuth(ctx context.Context, username, password, baseURL string) ([]domain.Workspace, error)

	// HandleRedirect consumes a post-OAuth redirect URL. Returns true when
	// a credential was written, false when this exact URL was already
	// processed (duplicate event delivery is a no-op).
	HandleRedirect(ctx context.Context, rawURL string) (bool, error)

	// Discover runs account discovery and validation for the current
	// credential and workspace dependency. A re-entrant trigger while a run
	// is pending returns domain.ErrDiscoveryInFlight; a trigger after the
	// dependency already produced accounts returns them without a second
	// remote probe. A run invalidated by a mode or credential change while
	// its validation was out returns domain.ErrDiscoveryStale.
	Discover(ctx context.Context) ([]domain.Account, error)

	// NotifyConfigArrived tells the service the host pushed a fresh
	// configuration, so subscribers re-derive the wizard state.
	NotifyConfigArrived()

	// Workspaces returns the workspace list from the most recent successful
	// credential verification, if any.
	Workspaces() []domain.Workspace

	// Events returns the channel on which re-evaluation triggers are
	// published (config arrived, redirect arrived, mode chosen, form
	// submitted, discovery completed).
	Events() <-chan domain.SetupEvent
}
