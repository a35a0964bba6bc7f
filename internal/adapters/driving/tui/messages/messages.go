// Package messages defines the bubbletea messages shared between the wizard
// views and the app shell.
package messages

import (
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
)

// ErrorOccurred reports an error to be shown in place.
type ErrorOccurred struct {
	Err error
}

// ModeChosen reports that the mode was written.
type ModeChosen struct {
	Mode domain.IntegrationMode
}

// CredentialVerified reports a successful basic credential submission.
type CredentialVerified struct {
	Workspaces []domain.Workspace
}

// RedirectProcessed reports the outcome of a consumed redirect URL.
type RedirectProcessed struct {
	Written bool
	Err     error
}

// DiscoveryFinished carries the discovered account list.
type DiscoveryFinished struct {
	Accounts []domain.Account
	Err      error
}

// ConfigReloaded tells the wizard the host configuration changed behind its
// back and the state should be re-derived.
type ConfigReloaded struct{}
