// Package sqlite implements the slot blob store on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Antivibe-Inc/face-labs-sub000/internal/storage"
)

// Schema creates the slots table holding the persisted blobs.
const Schema = `
CREATE TABLE IF NOT EXISTS slots (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SlotStore implements storage.SlotStore using SQLite.
type SlotStore struct {
	db *sql.DB
}

// NewSlotStore opens a SQLite database at the given DSN, configures WAL mode
// and creates the schema.
func NewSlotStore(dsn string) (*SlotStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one concurrent writer. A single open connection
	// serialises writes and avoids SQLITE_BUSY errors; it also makes every
	// slot update an atomic read-modify-write from the callers' perspective.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
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
	err := s.db.QueryRowContext(ctx, "SELECT value FROM slots WHERE key = ?", key).Scan(&value)
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
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
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

	if _, err := s.db.ExecContext(ctx, "DELETE FROM slots WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}
	return nil
}

// GetDB exposes the underlying database connection for tooling.
func (s *SlotStore) GetDB() *sql.DB {
	return s.db
}

// Close closes the underlying database.
func (s *SlotStore) Close() error {
	return s.db.Close()
}

// Compile-time assertion.
var _ storage.SlotStore = (*SlotStore)(nil)
