package driven

import (
	"context"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
)

// ConfigChannel is the host platform's configuration persistence contract.
// The host is the source of truth: the core reads the whole Config, mutates
// a copy, and pushes it back as one object. There is no partial-field write.
type ConfigChannel interface {
	// GetConfig returns the current configuration. Returns domain.ErrNotFound
	// if the host has not created one yet.
	GetConfig(ctx context.Context) (*domain.Config, error)

	// SetConfig persists the configuration. Fire-and-forget from the core's
	// point of view; the host owns the value afterwards.
	SetConfig(ctx context.Context, cfg *domain.Config) error
}

// Validator is the host's validation contract. The host uses the active
// credential in the configuration to probe the remote system and returns the
// raw account list.
type Validator interface {
	// Validate probes the remote system with the configuration's credential.
	Validate(ctx context.Context, cfg *domain.Config) ([]domain.ConfigAccount, error)
}

// InstallGate lets the core signal that the user may finalise the
// integration setup.
type InstallGate interface {
	// SetInstallEnabled enables or disables the host's install action.
	SetInstallEnabled(enabled bool)

	// Installed reports whether the integration is already installed.
	Installed() bool
}
