package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/connectors/bitbucket"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/ports/driven"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/ports/driving"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/logger"
)

// SetupService is the event-driven controller behind the configuration
// wizard. It serialises all mutations of the host configuration behind one
// mutex; the UI layers only ever call it from a single goroutine per event,
// but redirects and host config pushes can arrive from elsewhere.
type SetupService struct {
	host      driven.ConfigChannel
	lister    driven.WorkspaceLister
	discovery *DiscoveryService

	mu sync.Mutex

	// seenRedirects holds the redirect URLs that already produced a
	// credential. Only successful parses are recorded: a malformed URL may
	// be retried after the host fixes it.
	seenRedirects map[string]struct{}

	// lastWorkspaces is the result of the most recent successful credential
	// verification. It is the workspace dependency discovery keys on.
	lastWorkspaces []domain.Workspace

	events chan domain.SetupEvent
}

var _ driving.SetupService = (*SetupService)(nil)

// NewSetupService wires the controller. The discovery service is shared so
// the CLI and the wizard observe the same in-flight guards.
func NewSetupService(
	host driven.ConfigChannel,
	lister driven.WorkspaceLister,
	discovery *DiscoveryService,
) *SetupService {
	return &SetupService{
		host:          host,
		lister:        lister,
		discovery:     discovery,
		seenRedirects: make(map[string]struct{}),
		events:        make(chan domain.SetupEvent, 16),
	}
}

// publish pushes an event without ever blocking the caller. A full channel
// means the subscriber is behind; dropping a trigger is safe because every
// event only says "re-derive", it carries no payload.
func (s *SetupService) publish(ev domain.SetupEvent) {
	select {
	case s.events <- ev:
	default:
		logger.Debug("event channel full, dropping %s", ev)
	}
}

// Events returns the re-evaluation trigger channel.
func (s *SetupService) Events() <-chan domain.SetupEvent {
	return s.events
}

// NotifyConfigArrived is called by the host adapter when a fresh
// configuration lands (file watch, initial load).
func (s *SetupService) NotifyConfigArrived() {
	s.publish(domain.EventConfigArrived)
}

// State derives the wizard state from the redirect context and the current
// configuration. A missing configuration is treated as empty, not as an
// error: the wizard then starts at mode choice.
func (s *SetupService) State(ctx context.Context, rc domain.RedirectContext) (domain.SetupState, error) {
	cfg, err := s.host.GetConfig(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cfg = &domain.Config{}
		} else {
			return domain.StateLoading, fmt.Errorf("get config: %w", err)
		}
	}
	return domain.DeriveState(rc, cfg), nil
}

// ChooseMode persists the integration mode. Switching modes clears any
// credential and accounts carried over from the previous mode, and
// invalidates pending discovery so a stale result cannot resurrect them.
func (s *SetupService) ChooseMode(ctx context.Context, mode domain.IntegrationMode) error {
	if mode != domain.ModeCloud && mode != domain.ModeSelfManaged {
		return fmt.Errorf("%w: mode %q", domain.ErrInvalidInput, mode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.currentConfig(ctx)
	if err != nil {
		return err
	}

	next := cfg.Clone()
	if next.IntegrationType != mode {
		next.ClearCredentials()
		next.ResetAccounts()
		s.lastWorkspaces = nil
		s.discovery.Invalidate()
	}
	next.IntegrationType = mode

	if err := s.host.SetConfig(ctx, next); err != nil {
		return fmt.Errorf("persist config: %w", err)
	}
	s.publish(domain.EventModeChosen)
	return nil
}

// SubmitBasicAuth verifies a self-managed basic credential by listing
// workspaces with it before anything is written. On failure the stored
// configuration is untouched.
func (s *SetupService) SubmitBasicAuth(ctx context.Context, username, password, baseURL string) ([]domain.Workspace, error) {
	if username == "" || password == "" || baseURL == "" {
		return nil, fmt.Errorf("%w: username, password and url are required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.currentConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.IntegrationType == domain.ModeUnset {
		return nil, domain.ErrModeRequired
	}

	// Verification runs against a trial copy so a bad credential never
	// reaches the host.
	trial := cfg.Clone()
	trial.BasicAuth = &domain.BasicAuth{Username: username, Password: password, URL: baseURL}
	trial.OAuth2Auth = nil
	trial.APIKeyAuth = nil

	workspaces, err := s.lister.ListWorkspaces(ctx, trial)
	if err != nil {
		return nil, err
	}

	trial.ResetAccounts()
	if err := s.host.SetConfig(ctx, trial); err != nil {
		return nil, fmt.Errorf("persist config: %w", err)
	}

	s.lastWorkspaces = workspaces
	s.discovery.Invalidate()
	s.publish(domain.EventFormSubmitted)
	logger.Info("basic credential verified, %d workspace(s)", len(workspaces))
	return workspaces, nil
}

// HandleRedirect consumes a post-OAuth redirect URL exactly once. The same
// URL delivered again is acknowledged without touching the configuration;
// a different URL, even back to back, is processed normally.
func (s *SetupService) HandleRedirect(ctx context.Context, rawURL string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, done := s.seenRedirects[rawURL]; done {
		logger.Debug("redirect already processed, ignoring")
		return false, nil
	}

	auth, err := bitbucket.ParseRedirect(rawURL)
	if err != nil {
		return false, err
	}

	cfg, err := s.currentConfig(ctx)
	if err != nil {
		return false, err
	}

	next := cfg.Clone()
	next.IntegrationType = domain.ModeCloud
	next.OAuth2Auth = auth
	next.BasicAuth = nil
	next.APIKeyAuth = nil
	next.ResetAccounts()

	if err := s.host.SetConfig(ctx, next); err != nil {
		return false, fmt.Errorf("persist config: %w", err)
	}

	s.seenRedirects[rawURL] = struct{}{}
	s.lastWorkspaces = nil
	s.discovery.Invalidate()
	s.publish(domain.EventRedirectArrived)
	logger.Info("oauth credential accepted from redirect")
	return true, nil
}

// Discover runs account discovery for the current credential. The workspace
// dependency is the last verified list; when none exists yet (the OAuth
// path writes a credential without a prior listing) the workspaces are
// fetched first.
func (s *SetupService) Discover(ctx context.Context) ([]domain.Account, error) {
	s.mu.Lock()
	workspaces := s.lastWorkspaces
	s.mu.Unlock()

	if workspaces == nil {
		cfg, err := s.host.GetConfig(ctx)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get config: %w", err)
		}
		if cfg == nil || !cfg.HasCredential() {
			return nil, domain.ErrNoCredential
		}
		workspaces, err = s.lister.ListWorkspaces(ctx, cfg)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.lastWorkspaces = workspaces
		s.mu.Unlock()
	}

	accounts, err := s.discovery.Run(ctx, workspaces)
	if err != nil {
		return nil, err
	}
	s.publish(domain.EventDiscoveryCompleted)
	return accounts, nil
}

// Workspaces returns the most recently verified workspace list.
func (s *SetupService) Workspaces() []domain.Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Workspace, len(s.lastWorkspaces))
	copy(out, s.lastWorkspaces)
	return out
}

// currentConfig loads the host configuration, mapping "none yet" to an
// empty value. Callers must hold s.mu.
func (s *SetupService) currentConfig(ctx context.Context) (*domain.Config, error) {
	cfg, err := s.host.GetConfig(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.Config{}, nil
		}
		return nil, fmt.Errorf("get config: %w", err)
	}
	return cfg, nil
}
