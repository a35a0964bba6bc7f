package domain

// SetupEvent names a trigger that warrants re-deriving the wizard state.
// Subscribers receive events instead of polling the configuration.
type SetupEvent string

const (
	// EventConfigArrived fires when the host delivers or replaces the
	// configuration outside the wizard (e.g. the config file changed).
	EventConfigArrived SetupEvent = "config-arrived"
	// EventRedirectArrived fires after an OAuth redirect was consumed and a
	// credential written.
	EventRedirectArrived SetupEvent = "redirect-arrived"
	// EventModeChosen fires after the integration mode was selected.
	EventModeChosen SetupEvent = "mode-chosen"
	// EventFormSubmitted fires after a self-managed credential was verified
	// and persisted.
	EventFormSubmitted SetupEvent = "form-submitted"
	// EventDiscoveryCompleted fires after an account discovery run finished,
	// successfully or not.
	EventDiscoveryCompleted SetupEvent = "discovery-completed"
)
