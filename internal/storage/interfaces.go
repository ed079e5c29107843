// Package storage provides the persistence layer for FaceLab.
//
// The layout mirrors the original client's local storage: two independently
// keyed blobs, one holding the full record collection as a JSON array and one
// holding the settings singleton. Engines only implement the raw slot
// operations; the history and settings semantics live on top and are shared
// by every engine.
package storage

import (
	"context"
	"errors"
)

// Slot keys for the two persisted blobs.
const (
	HistorySlot  = "facelab.history"
	SettingsSlot = "facelab.settings"
)

var (
	// ErrNotFound indicates that the requested slot or record was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates that the input parameters are invalid.
	ErrInvalidInput = errors.New("invalid input")
)

// SlotStore is the raw blob layer. Writes replace the whole slot;
// last write wins. There is no partial update and no versioning.
type SlotStore interface {
	// ReadSlot returns the blob stored under key.
	// Returns ErrNotFound if the slot has never been written.
	ReadSlot(ctx context.Context, key string) ([]byte, error)

	// WriteSlot replaces the blob stored under key (upsert semantics).
	WriteSlot(ctx context.Context, key string, value []byte) error

	// DeleteSlot removes the slot entirely. Deleting an absent slot is not
	// an error.
	DeleteSlot(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
