package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/ports/driven"
)

// Ensure StateStore implements the interface.
var _ driven.StateStore = (*StateStore)(nil)

// StateStore is an in-memory implementation of driven.StateStore.
type StateStore struct {
	mu         sync.RWMutex
	watermarks map[string]time.Time
	accounts   map[string][]domain.Account
}

// NewStateStore creates a new in-memory state store.
func NewStateStore() *StateStore {
	return &StateStore{
		watermarks: make(map[string]time.Time),
		accounts:   make(map[string][]domain.Account),
	}
}

// SetLastValidated records when discovery last succeeded for an instance.
func (s *StateStore) SetLastValidated(_ context.Context, instanceID string, ts time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watermarks[instanceID] = ts
	return nil
}

// LastValidated returns the watermark for an instance.
func (s *StateStore) LastValidated(_ context.Context, instanceID string) (time.Time, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ts, ok := s.watermarks[instanceID]
	return ts, ok, nil
}

// SaveAccounts replaces the cached account list for an instance.
func (s *StateStore) SaveAccounts(_ context.Context, instanceID string, accounts []domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]domain.Account, len(accounts))
	copy(cp, accounts)
	s.accounts[instanceID] = cp
	return nil
}

// Accounts returns the cached account list, empty when none.
func (s *StateStore) Accounts(_ context.Context, instanceID string) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cached, ok := s.accounts[instanceID]
	if !ok {
		return []domain.Account{}, nil
	}
	cp := make([]domain.Account, len(cached))
	copy(cp, cached)
	return cp, nil
}

// Close is a no-op for the in-memory store.
func (s *StateStore) Close() error {
	return nil
}
