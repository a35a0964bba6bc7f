package domain

// SetupState is the derived state of the configuration wizard. It is never
// stored: every evaluation reconstructs it from the host context and the
// persisted Config, so transition coverage is testable without any rendering.
type SetupState int

const (
	// StateLoading means the host has not delivered configuration yet.
	StateLoading SetupState = iota
	// StateModeChoice means no integration mode has been selected.
	StateModeChoice
	// StateReAuthCloud means the host requested re-authentication for a
	// cloud integration.
	StateReAuthCloud
	// StateReAuthSelfManaged means the host requested re-authentication for
	// a self-managed integration.
	StateReAuthSelfManaged
	// StateCloudAuth means the cloud OAuth flow must run.
	StateCloudAuth
	// StateSelfManagedAuth means the basic credential form must run.
	StateSelfManagedAuth
	// StateAccountSelection means a credential exists and account discovery
	// drives the rest of the flow.
	StateAccountSelection
)

// String returns the state name for logs.
func (s SetupState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateModeChoice:
		return "mode-choice"
	case StateReAuthCloud:
		return "reauth-cloud"
	case StateReAuthSelfManaged:
		return "reauth-selfmanaged"
	case StateCloudAuth:
		return "cloud-auth"
	case StateSelfManagedAuth:
		return "selfmanaged-auth"
	case StateAccountSelection:
		return "account-selection"
	default:
		return "unknown"
	}
}

// RedirectContext is the per-evaluation context the host supplies alongside
// the persisted Config.
type RedirectContext struct {
	// Loading is true while the host has not delivered configuration.
	Loading bool
	// IsFromRedirect is true when the current evaluation was triggered by an
	// OAuth redirect arriving.
	IsFromRedirect bool
	// IsFromReAuth is true when the host asked for re-authentication of an
	// already configured integration.
	IsFromReAuth bool
	// CurrentURL is the full redirect URL, when IsFromRedirect is set.
	CurrentURL string
}

// DeriveState evaluates the wizard state from host context and configuration.
//
// Precedence: loading first, then re-auth (which pre-empts mode choice and
// credential presence), then mode choice, then the per-mode credential
// checks. Within a tier the mode field alone selects the branch.
func DeriveState(rc RedirectContext, cfg *Config) SetupState {
	if rc.Loading || cfg == nil {
		return StateLoading
	}
	if rc.IsFromReAuth {
		if cfg.IntegrationType == ModeCloud {
			return StateReAuthCloud
		}
		return StateReAuthSelfManaged
	}
	switch {
	case cfg.IntegrationType == ModeUnset:
		return StateModeChoice
	case cfg.IntegrationType == ModeCloud && cfg.OAuth2Auth == nil:
		return StateCloudAuth
	case cfg.IntegrationType == ModeSelfManaged && cfg.BasicAuth == nil && cfg.APIKeyAuth == nil:
		return StateSelfManagedAuth
	default:
		return StateAccountSelection
	}
}
