// Package sqlite persists local integration state in a SQLite database:
// the per-instance validation watermark and a cache of the accounts the
// last discovery run produced. The host config channel stays the source of
// truth; this store only lets CLI commands answer "when did validation last
// succeed" without another round trip.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.StateStore = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS validation_state (
	instance_id  TEXT PRIMARY KEY,
	validated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS account_cache (
	instance_id TEXT PRIMARY KEY,
	accounts    TEXT NOT NULL
);
`

// Store is the SQLite-backed implementation of driven.StateStore.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.bitbucket-integration/data/state.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".bitbucket-integration", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "state.db")

	// WAL keeps concurrent CLI invocations from blocking each other.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// SetLastValidated records when discovery last succeeded for an instance.
func (s *Store) SetLastValidated(ctx context.Context, instanceID string, ts time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO validation_state (instance_id, validated_at) VALUES (?, ?)
		 ON CONFLICT(instance_id) DO UPDATE SET validated_at = excluded.validated_at`,
		instanceID, ts.UnixMilli())
	if err != nil {
		return fmt.Errorf("saving watermark: %w", err)
	}
	return nil
}

// LastValidated returns the watermark for an instance.
func (s *Store) LastValidated(ctx context.Context, instanceID string) (time.Time, bool, error) {
	var ms int64
	err := s.db.QueryRowContext(ctx,
		`SELECT validated_at FROM validation_state WHERE instance_id = ?`,
		instanceID).Scan(&ms)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("loading watermark: %w", err)
	}
	return time.UnixMilli(ms), true, nil
}

// SaveAccounts replaces the cached account list for an instance.
func (s *Store) SaveAccounts(ctx context.Context, instanceID string, accounts []domain.Account) error {
	data, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("encoding accounts: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO account_cache (instance_id, accounts) VALUES (?, ?)
		 ON CONFLICT(instance_id) DO UPDATE SET accounts = excluded.accounts`,
		instanceID, string(data))
	if err != nil {
		return fmt.Errorf("saving accounts: %w", err)
	}
	return nil
}

// Accounts returns the cached account list, empty when none.
func (s *Store) Accounts(ctx context.Context, instanceID string) ([]domain.Account, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT accounts FROM account_cache WHERE instance_id = ?`,
		instanceID).Scan(&data)
	if err == sql.ErrNoRows {
		return []domain.Account{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}

	var accounts []domain.Account
	if err := json.Unmarshal([]byte(data), &accounts); err != nil {
		return nil, fmt.Errorf("decoding accounts: %w", err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}
