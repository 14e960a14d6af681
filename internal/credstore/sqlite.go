package credstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const (
	keyAccess  = "access_token"
	keyRefresh = "refresh_token"
)

// SQLiteStore keeps the token pair in a small SQLite database. Both rows are
// written in one transaction so the pair survives crashes whole or not at all.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed initializes) a credential database.
func OpenSQLite(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("open credential database: %w", err)
	}

	schema := `
CREATE TABLE IF NOT EXISTS credentials (
    name TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize credential database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save overwrites both tokens in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, pair TokenPair) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO credentials (name, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := tx.ExecContext(ctx, query, keyAccess, pair.Access); err != nil {
		return fmt.Errorf("save access token: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, keyRefresh, pair.Refresh); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Read returns the stored pair, reporting absence when either row is missing.
func (s *SQLiteStore) Read(ctx context.Context) (TokenPair, bool, error) {
	access, err := s.readValue(ctx, keyAccess)
	if err != nil {
		return TokenPair{}, false, err
	}
	refresh, err := s.readValue(ctx, keyRefresh)
	if err != nil {
		return TokenPair{}, false, err
	}
	if access == "" || refresh == "" {
		return TokenPair{}, false, nil
	}
	return TokenPair{Access: access, Refresh: refresh}, true, nil
}

// Clear removes both tokens.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM credentials WHERE name IN (?, ?)`, keyAccess, keyRefresh)
	if err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

func (s *SQLiteStore) readValue(ctx context.Context, name string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM credentials WHERE name = ?`, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return value, nil
}
