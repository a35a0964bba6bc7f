package driven

import (
	"context"
	"time"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
)

// StateStore persists local integration state that is not part of the
// host-owned Config: the validation watermark and a cache of the accounts
// the last discovery produced.
type StateStore interface {
	// SetLastValidated records when discovery last succeeded for an instance.
	SetLastValidated(ctx context.Context, instanceID string, ts time.Time) error

	// LastValidated returns the watermark. ok is false when none exists.
	LastValidated(ctx context.Context, instanceID string) (ts time.Time, ok bool, err error)

	// SaveAccounts replaces the cached account list for an instance.
	SaveAccounts(ctx context.Context, instanceID string, accounts []domain.Account) error

	// Accounts returns the cached account list, empty when none.
	Accounts(ctx context.Context, instanceID string) ([]domain.Account, error)

	// Close releases the underlying storage.
	Close() error
}
