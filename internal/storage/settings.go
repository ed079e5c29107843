package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/Antivibe-Inc/face-labs-sub000/pkg/types"
)

// SettingsStore manages the settings singleton on top of a SlotStore.
type SettingsStore struct {
	slots SlotStore
}

// NewSettingsStore creates a SettingsStore over the given slot engine.
func NewSettingsStore(slots SlotStore) *SettingsStore {
	return &SettingsStore{slots: slots}
}

// partialSettings is the decode shape for the persisted blob. Pointer fields
// distinguish "absent" from "zero value" so an older partial object merges
// field-by-field over the defaults instead of resetting them.
type partialSettings struct {
	Theme           *types.Theme `json:"theme"`
	ReminderEnabled *bool        `json:"reminderEnabled"`
	ReminderHour    *int         `json:"reminderHour"`
	ReminderMinute  *int         `json:"reminderMinute"`
}

// Load returns the persisted settings merged over defaults. Any read or
// parse error falls back fully to defaults; Load never fails.
func (s *SettingsStore) Load(ctx context.Context) types.Settings {
	settings := types.DefaultSettings()

	raw, err := s.slots.ReadSlot(ctx, SettingsSlot)
	if errors.Is(err, ErrNotFound) {
		return settings
	}
	if err != nil {
		log.Printf("settings: load failed, using defaults: %v", err)
		return settings
	}

	var partial partialSettings
	if err := json.Unmarshal(raw, &partial); err != nil {
		log.Printf("settings: undecodable blob, using defaults: %v", err)
		return settings
	}

	if partial.Theme != nil {
		settings.Theme = *partial.Theme
	}
	if partial.ReminderEnabled != nil {
		settings.ReminderEnabled = *partial.ReminderEnabled
	}
	if partial.ReminderHour != nil {
		settings.ReminderHour = *partial.ReminderHour
	}
	if partial.ReminderMinute != nil {
		settings.ReminderMinute = *partial.ReminderMinute
	}

	settings.Normalize()
	return settings
}

// Save persists the full settings object. Failures are logged, not surfaced;
// the in-memory settings remain authoritative for the session either way.
func (s *SettingsStore) Save(ctx context.Context, settings types.Settings) {
	settings.Normalize()
	data, err := json.Marshal(settings)
	if err != nil {
		log.Printf("settings: marshal failed: %v", err)
		return
	}
	if err := s.slots.WriteSlot(ctx, SettingsSlot, data); err != nil {
		log.Printf("settings: save failed: %v", err)
	}
}
