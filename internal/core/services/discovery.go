package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/connectors/bitbucket"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/ports/driven"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/logger"
)

// DiscoveryService exchanges the configured credential for a normalised
// account list via the host's validation contract and folds the result into
// the configuration.
//
// Guard rails: at most one run is in flight per dependency (credential plus
// selected workspace set); a dependency that already produced accounts is
// not probed again; a run whose triggering context went stale while the
// validator was out (mode or credential changed) has its result discarded
// at apply time via a generation counter.
type DiscoveryService struct {
	host      driven.ConfigChannel
	validator driven.Validator
	gate      driven.InstallGate
	state     driven.StateStore // optional

	instanceID string

	// guarded state
	inFlight   map[string]struct{}
	doneDeps   map[string][]domain.Account
	generation uint64
	lock       chan struct{} // 1-slot mutex usable around the await point
}

// NewDiscoveryService creates a discovery service. The state store may be
// nil; watermarks and the account cache are then skipped.
func NewDiscoveryService(
	host driven.ConfigChannel,
	validator driven.Validator,
	gate driven.InstallGate,
	state driven.StateStore,
) *DiscoveryService {
	s := &DiscoveryService{
		host:       host,
		validator:  validator,
		gate:       gate,
		state:      state,
		instanceID: uuid.NewString(),
		inFlight:   make(map[string]struct{}),
		doneDeps:   make(map[string][]domain.Account),
		lock:       make(chan struct{}, 1),
	}
	s.lock <- struct{}{}
	return s
}

// InstanceID returns the identifier local state is keyed by.
func (s *DiscoveryService) InstanceID() string {
	return s.instanceID
}

// Invalidate marks every pending and completed run stale. The setup
// controller calls this whenever the credential or mode changes so a result
// that arrives afterwards is ignored instead of applied.
func (s *DiscoveryService) Invalidate() {
	<-s.lock
	s.generation++
	s.doneDeps = make(map[string][]domain.Account)
	s.lock <- struct{}{}
}

// depKey fingerprints the discovery dependency: the active credential and
// the selected workspace set. The credential is hashed, never embedded.
func depKey(cfg *domain.Config, workspaces []domain.Workspace) (string, error) {
	creds, err := bitbucket.CredsFromConfig(cfg)
	if err != nil {
		return "", err
	}
	slugs := make([]string, 0, len(workspaces))
	for _, w := range workspaces {
		slugs = append(slugs, w.Slug)
	}
	sort.Strings(slugs)
	sum := sha256.Sum256([]byte(creds.Auth()))
	return hex.EncodeToString(sum[:8]) + ":" + strings.Join(slugs, ","), nil
}

// Run performs one discovery pass for the current configuration and the
// given workspace dependency.
//
// Returns domain.ErrDiscoveryInFlight while a run for the same dependency
// is pending; runs for distinct dependencies proceed independently.
// Returns the previously discovered accounts, without a second validation
// call, once the dependency has already produced them. A run whose
// triggering context went stale returns domain.ErrDiscoveryStale and
// persists nothing. On validation failure the error is surfaced wrapped
// in domain.ErrValidation and the dependency is released so a retry is
// possible.
func (s *DiscoveryService) Run(ctx context.Context, workspaces []domain.Workspace) ([]domain.Account, error) {
	<-s.lock

	cfg, err := s.host.GetConfig(ctx)
	if err != nil {
		s.lock <- struct{}{}
		return nil, fmt.Errorf("get config: %w", err)
	}
	if !cfg.HasCredential() {
		s.lock <- struct{}{}
		return nil, domain.ErrNoCredential
	}

	dep, err := depKey(cfg, workspaces)
	if err != nil {
		s.lock <- struct{}{}
		return nil, err
	}

	if _, busy := s.inFlight[dep]; busy {
		s.lock <- struct{}{}
		return nil, domain.ErrDiscoveryInFlight
	}
	if accounts, ok := s.doneDeps[dep]; ok {
		s.lock <- struct{}{}
		return accounts, nil
	}

	s.inFlight[dep] = struct{}{}
	gen := s.generation

	// Discovery starts from an empty account map: runs replace, never
	// accumulate.
	staging := cfg.Clone()
	staging.ResetAccounts()

	s.lock <- struct{}{}

	raw, verr := s.validator.Validate(ctx, staging)

	<-s.lock
	defer func() { s.lock <- struct{}{} }()

	// The dependency leaves the in-flight set regardless of outcome so a
	// subsequent retry is possible. Runs for other dependencies may still
	// be pending; only this one is released.
	delete(s.inFlight, dep)

	if gen != s.generation {
		logger.Debug("discovery result stale (generation %d != %d), discarding", gen, s.generation)
		return nil, domain.ErrDiscoveryStale
	}

	if verr != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, verr)
	}

	accounts := make([]domain.Account, 0, len(raw))
	for _, r := range raw {
		acc := domain.ToAccount(r)
		accounts = append(accounts, acc)
		staging.Accounts[acc.ID] = acc
	}

	if err := s.host.SetConfig(ctx, staging); err != nil {
		return nil, fmt.Errorf("persist config: %w", err)
	}
	s.doneDeps[dep] = accounts

	if len(accounts) > 0 && !s.gate.Installed() {
		s.gate.SetInstallEnabled(true)
	}

	s.persistState(ctx, accounts)

	logger.Info("discovery finished, %d account(s)", len(accounts))
	return accounts, nil
}

// persistState records the watermark and account cache. Best effort: local
// state is a convenience, the host config channel is the source of truth.
func (s *DiscoveryService) persistState(ctx context.Context, accounts []domain.Account) {
	if s.state == nil {
		return
	}
	if err := s.state.SetLastValidated(ctx, s.instanceID, time.Now()); err != nil {
		logger.Warn("save validation watermark: %v", err)
	}
	if err := s.state.SaveAccounts(ctx, s.instanceID, accounts); err != nil {
		logger.Warn("save account cache: %v", err)
	}
}
