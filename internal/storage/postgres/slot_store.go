// Package postgres implements the slot blob store on PostgreSQL, for
// installations that already run one. Semantics are identical to the SQLite
// engine: whole-blob writes, last write wins.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/Antivibe-Inc/face-labs-sub000/internal/storage"
)

// Schema creates the slots table holding the persisted blobs.
const Schema = `
CREATE TABLE IF NOT EXISTS slots (
	key TEXT PRIMARY KEY,
	value BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// SlotStore implements storage.SlotStore using PostgreSQL.
type SlotStore struct {
	db *sql.DB
}

// NewSlotStore connects to PostgreSQL with the given DSN and creates the
// schema.
func NewSlotStore(dsn string) (*SlotStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SlotStore{db: db}, nil
}

// ReadSlot returns the blob stored under key.
func (s *SlotStore) ReadSlot(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: slot key is required", storage.ErrInvalidInput)
	}

	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM slots WHERE key = $1", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return value, nil
}

// WriteSlot replaces the blob stored under key (upsert semantics).
func (s *SlotStore) WriteSlot(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("%w: slot key is required", storage.ErrInvalidInput)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO slots (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}

// DeleteSlot removes the slot entirely. Absent slots are not an error.
func (s *SlotStore) DeleteSlot(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("%w: slot key is required", storage.ErrInvalidInput)
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM slots WHERE key = $1", key); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SlotStore) Close() error {
	return s.db.Close()
}

// Compile-time assertion.
var _ storage.SlotStore = (*SlotStore)(nil)
