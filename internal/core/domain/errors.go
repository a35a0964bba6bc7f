package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Authentication Errors.

	// ErrCredentialFetch indicates the workspace listing call failed.
	// The message is deliberately a single fixed string: response codes and
	// transport details never reach the user, only the log.
	ErrCredentialFetch = errors.New("error fetching workspaces, check credentials")

	// ErrNoCredential indicates an operation requires a credential but the
	// configuration carries neither a basic nor an OAuth credential.
	ErrNoCredential = errors.New("no credential configured")

	// ErrTokenRefreshFailed indicates token refresh operation failed.
	ErrTokenRefreshFailed = errors.New("token refresh failed")

	// Setup Errors.

	// ErrModeRequired indicates an operation needs an integration mode
	// (cloud or self-managed) to be selected first.
	ErrModeRequired = errors.New("integration mode not selected")

	// ErrRedirectParse indicates a malformed or incomplete OAuth redirect
	// payload. Fatal to the current wizard flow; the user must re-run the
	// authorization step.
	ErrRedirectParse = errors.New("invalid oauth redirect payload")

	// ErrDiscoveryInFlight indicates account discovery is already running
	// for the same credential and workspace dependency.
	ErrDiscoveryInFlight = errors.New("account discovery already in progress")

	// ErrDiscoveryStale indicates a discovery result was discarded because
	// the credential or mode changed while the validator was out. Nothing
	// was persisted; a fresh trigger picks up the new configuration.
	ErrDiscoveryStale = errors.New("discovery result discarded, configuration changed")

	// ErrValidation indicates the host-side validation contract failed.
	// The underlying cause is wrapped and surfaced verbatim.
	ErrValidation = errors.New("validation failed")
)
