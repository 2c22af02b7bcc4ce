// Package credentials provides keyed storage for the catalog endpoint and auth token.
//
// The [Store] interface keeps the rest of the library decoupled from where
// secrets actually live; [SqliteStore] persists them in the application
// database alongside the cache namespaces.
package credentials

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/juliettebernheisel/etoilekit/internal/shared"
)

// Well-known credential keys.
const (
	KeyInstance = "instance" // catalog endpoint URL
	KeyToken    = "token"    // bearer credential
)

// Store is keyed string storage for catalog credentials.
type Store interface {
	// Get retrieves a stored value. Returns an error wrapping
	// [shared.ErrUnconfigured] when the key has never been set.
	Get(key string) (string, error)

	// Set stores or replaces a value.
	Set(key, value string) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(key string) error
}

// SqliteStore implements Store against the secrets table.
type SqliteStore struct {
	db *sql.DB
}

// NewSqliteStore creates a SqliteStore backed by the given database.
// The secrets table is created by the shared migrations.
func NewSqliteStore(db *sql.DB) *SqliteStore {
	return &SqliteStore{db: db}
}

func (s *SqliteStore) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM secrets WHERE name = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: missing %q", shared.ErrUnconfigured, key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read secret %q: %w", key, err)
	}
	return value, nil
}

func (s *SqliteStore) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO secrets (name, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to store secret %q: %w", key, err)
	}
	return nil
}

func (s *SqliteStore) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM secrets WHERE name = ?", key); err != nil {
		return fmt.Errorf("failed to delete secret %q: %w", key, err)
	}
	return nil
}
