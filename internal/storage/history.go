package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/Antivibe-Inc/face-labs-sub000/pkg/types"
)

// HistoryStore manages the daily record collection on top of a SlotStore.
//
// Every exported operation favors silent degradation over failure: reads fall
// back to an empty collection and writes report success as a boolean. The
// store has a single local copy of the data and no recovery path, so there is
// nothing useful a caller could do with a richer error beyond telling the
// user, which is the caller's job, not the store's.
type HistoryStore struct {
	slots SlotStore
	now   func() time.Time
}

// NewHistoryStore creates a HistoryStore over the given slot engine.
func NewHistoryStore(slots SlotStore) *HistoryStore {
	return &HistoryStore{slots: slots, now: time.Now}
}

// SetClock overrides the store's notion of "now". Tests only.
func (s *HistoryStore) SetClock(now func() time.Time) {
	s.now = now
}

// Load returns all records sorted by date descending.
//
// Records whose thumbnail uses a non-persistent reference scheme (a legacy
// "blob:" object URL that cannot survive a reload) are dropped rather than
// shown broken. Any deserialization failure yields an empty list, never an
// error.
func (s *HistoryStore) Load(ctx context.Context) []types.Record {
	records, err := s.load(ctx)
	if err != nil {
		log.Printf("history: load failed, returning empty collection: %v", err)
		return []types.Record{}
	}
	return records
}

// HasRecordToday reports whether a record already exists for the current
// calendar day.
func (s *HistoryStore) HasRecordToday(ctx context.Context) bool {
	now := s.now()
	for _, rec := range s.Load(ctx) {
		if types.SameCalendarDay(now, rec.Date) {
			return true
		}
	}
	return false
}

// Save appends a record and persists the re-sorted collection.
//
// The daily admission policy rejects the save when a record already exists on
// the same calendar day as the new record, unless bypassDailyLimit is set
// (test/debug tooling only). Returns false on rejection or on any
// persistence failure.
func (s *HistoryStore) Save(ctx context.Context, rec types.Record, bypassDailyLimit bool) bool {
	if rec.ID == "" {
		log.Printf("history: refusing to save record without id")
		return false
	}

	records := s.Load(ctx)

	if !bypassDailyLimit {
		for _, existing := range records {
			if types.SameCalendarDay(rec.Date, existing.Date) {
				return false
			}
		}
	}

	rec.Normalize()
	records = append(records, rec)
	sortByDateDesc(records)

	if err := s.persist(ctx, records); err != nil {
		log.Printf("history: save failed: %v", err)
		return false
	}
	return true
}

// UpdateNote overwrites the note of the record with the given id and
// persists. Only the note field changes. No-op when the id is unknown;
// persistence failures are logged, not surfaced.
func (s *HistoryStore) UpdateNote(ctx context.Context, id, note string) {
	records := s.Load(ctx)
	found := false
	for i := range records {
		if records[i].ID == id {
			records[i].Note = note
			found = true
			break
		}
	}
	if !found {
		return
	}
	if err := s.persist(ctx, records); err != nil {
		log.Printf("history: update note failed for %s: %v", id, err)
	}
}

// Delete removes the record with the given id and persists the remainder.
// Deletion is immediate and irreversible; there is no tombstone and no undo.
func (s *HistoryStore) Delete(ctx context.Context, id string) {
	records := s.Load(ctx)
	remaining := records[:0]
	for _, rec := range records {
		if rec.ID != id {
			remaining = append(remaining, rec)
		}
	}
	if len(remaining) == len(records) {
		return
	}
	if err := s.persist(ctx, remaining); err != nil {
		log.Printf("history: delete failed for %s: %v", id, err)
	}
}

// Clear removes the entire collection unconditionally. Both the user-facing
// "clear history" action and the developer tooling use this same operation;
// confirmation is a UI concern. Clearing an already-empty store is fine.
func (s *HistoryStore) Clear(ctx context.Context) {
	if err := s.slots.DeleteSlot(ctx, HistorySlot); err != nil {
		log.Printf("history: clear failed: %v", err)
	}
}

// load reads and decodes the history slot. The decode is deliberately
// forgiving: individual records that fail to decode are skipped and the
// survivors are normalized, formalizing the ad hoc shape tolerance the
// original applied to legacy persisted data.
func (s *HistoryStore) load(ctx context.Context) ([]types.Record, error) {
	raw, err := s.slots.ReadSlot(ctx, HistorySlot)
	if errors.Is(err, ErrNotFound) {
		return []types.Record{}, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}

	records := make([]types.Record, 0, len(entries))
	for _, entry := range entries {
		var rec types.Record
		if err := json.Unmarshal(entry, &rec); err != nil {
			log.Printf("history: skipping undecodable record: %v", err)
			continue
		}
		if rec.ID == "" {
			continue
		}
		if hasEphemeralThumbnail(rec) {
			continue
		}
		rec.Normalize()
		records = append(records, rec)
	}

	sortByDateDesc(records)
	return records, nil
}

// persist encodes and writes the full collection, newest-first.
func (s *HistoryStore) persist(ctx context.Context, records []types.Record) error {
	sortByDateDesc(records)
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.slots.WriteSlot(ctx, HistorySlot, data)
}

// hasEphemeralThumbnail reports whether the record's thumbnail references a
// browser object URL instead of embedded image data.
func hasEphemeralThumbnail(rec types.Record) bool {
	return strings.HasPrefix(rec.Thumbnail, "blob:")
}

func sortByDateDesc(records []types.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
}
