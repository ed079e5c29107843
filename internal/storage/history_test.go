package storage_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Antivibe-Inc/face-labs-sub000/internal/storage"
	"github.com/Antivibe-Inc/face-labs-sub000/internal/storage/sqlite"
	"github.com/Antivibe-Inc/face-labs-sub000/pkg/types"
)

// setupSlots creates an in-memory SQLite slot store for testing.
func setupSlots(t *testing.T) *sqlite.SlotStore {
	t.Helper()
	slots, err := sqlite.NewSlotStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = slots.Close() })
	return slots
}

func newRecord(id string, date time.Time, energy, mood float64) types.Record {
	return types.Record{
		ID:        id,
		Date:      date,
		DateLabel: types.FormatDateLabel(date),
		Thumbnail: "data:image/png;base64,AAAA",
		Emotion: types.Emotion{
			Summary:        "平稳",
			EnergyLevel:    energy,
			MoodBrightness: mood,
			Tags:           []string{"平静"},
		},
	}
}

func TestHistoryStore_SaveAndLoad(t *testing.T) {
	slots := setupSlots(t)
	store := storage.NewHistoryStore(slots)
	ctx := context.Background()

	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.Local)
	ok := store.Save(ctx, newRecord("r1", now, 5, 6), false)
	require.True(t, ok)

	records := store.Load(ctx)
	require.Len(t, records, 1)
	assert.Equal(t, "r1", records[0].ID)
	assert.Equal(t, 5.0, records[0].Emotion.EnergyLevel)
}

// TestHistoryStore_DailyAdmission covers the one-record-per-day policy: the
// second same-day save without bypass must be rejected and must not alter
// the persisted collection.
func TestHistoryStore_DailyAdmission(t *testing.T) {
	slots := setupSlots(t)
	store := storage.NewHistoryStore(slots)
	ctx := context.Background()

	day := time.Date(2026, 8, 30, 9, 0, 0, 0, time.Local)
	store.SetClock(func() time.Time { return day })

	require.True(t, store.Save(ctx, newRecord("a", day, 3, 4), false))
	assert.True(t, store.HasRecordToday(ctx))

	// Same calendar day, later time, no bypass.
	rejected := store.Save(ctx, newRecord("b", day.Add(5*time.Hour), 9, 9), false)
	assert.False(t, rejected)

	records := store.Load(ctx)
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, 3.0, records[0].Emotion.EnergyLevel)
	assert.Equal(t, 4.0, records[0].Emotion.MoodBrightness)
}

func TestHistoryStore_DailyAdmissionBypass(t *testing.T) {
	slots := setupSlots(t)
	store := storage.NewHistoryStore(slots)
	ctx := context.Background()

	day := time.Date(2026, 8, 30, 9, 0, 0, 0, time.Local)
	require.True(t, store.Save(ctx, newRecord("a", day, 3, 4), false))
	require.True(t, store.Save(ctx, newRecord("b", day.Add(time.Hour), 9, 9), true))

	assert.Len(t, store.Load(ctx), 2)
}

// TestHistoryStore_SortInvariant verifies that Load always returns records
// sorted by date descending regardless of insertion order.
func TestHistoryStore_SortInvariant(t *testing.T) {
	slots := setupSlots(t)
	store := storage.NewHistoryStore(slots)
	ctx := context.Background()

	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.Local)
	require.True(t, store.Save(ctx, newRecord("mid", base.AddDate(0, 0, 1), 5, 5), false))
	require.True(t, store.Save(ctx, newRecord("old", base, 5, 5), false))
	require.True(t, store.Save(ctx, newRecord("new", base.AddDate(0, 0, 2), 5, 5), false))

	records := store.Load(ctx)
	require.Len(t, records, 3)
	assert.Equal(t, "new", records[0].ID)
	assert.Equal(t, "mid", records[1].ID)
	assert.Equal(t, "old", records[2].ID)
	for i := 1; i < len(records); i++ {
		assert.False(t, records[i].Date.After(records[i-1].Date))
	}
}

// TestHistoryStore_UpdateNoteIsolation verifies that UpdateNote changes only
// the note of the matching record and leaves everything else untouched.
func TestHistoryStore_UpdateNoteIsolation(t *testing.T) {
	slots := setupSlots(t)
	store := storage.NewHistoryStore(slots)
	ctx := context.Background()

	d1 := time.Date(2026, 8, 28, 8, 0, 0, 0, time.Local)
	d2 := time.Date(2026, 8, 29, 8, 0, 0, 0, time.Local)
	require.True(t, store.Save(ctx, newRecord("r1", d1, 4, 4), false))
	require.True(t, store.Save(ctx, newRecord("r2", d2, 7, 8), false))

	before := store.Load(ctx)
	store.UpdateNote(ctx, "r1", "今天有点累")
	after := store.Load(ctx)

	require.Len(t, after, 2)
	for i := range after {
		if after[i].ID == "r1" {
			assert.Equal(t, "今天有点累", after[i].Note)
			// Everything but the note is unchanged.
			stripped := after[i]
			stripped.Note = before[i].Note
			assert.Equal(t, before[i], stripped)
		} else {
			assert.Equal(t, before[i], after[i])
		}
	}

	// Unknown id is a no-op, not an error.
	store.UpdateNote(ctx, "missing", "x")
	assert.Len(t, store.Load(ctx), 2)
}

func TestHistoryStore_Delete(t *testing.T) {
	slots := setupSlots(t)
	store := storage.NewHistoryStore(slots)
	ctx := context.Background()

	d1 := time.Date(2026, 8, 28, 8, 0, 0, 0, time.Local)
	d2 := time.Date(2026, 8, 29, 8, 0, 0, 0, time.Local)
	require.True(t, store.Save(ctx, newRecord("r1", d1, 4, 4), false))
	require.True(t, store.Save(ctx, newRecord("r2", d2, 7, 8), false))

	store.Delete(ctx, "r1")
	records := store.Load(ctx)
	require.Len(t, records, 1)
	assert.Equal(t, "r2", records[0].ID)

	// Deleting an unknown id is a silent no-op.
	store.Delete(ctx, "missing")
	assert.Len(t, store.Load(ctx), 1)
}

// TestHistoryStore_ClearIdempotent verifies that clearing twice in a row
// leaves an empty collection both times without error.
func TestHistoryStore_ClearIdempotent(t *testing.T) {
	slots := setupSlots(t)
	store := storage.NewHistoryStore(slots)
	ctx := context.Background()

	require.True(t, store.Save(ctx, newRecord("r1", time.Now(), 4, 4), false))

	store.Clear(ctx)
	assert.Empty(t, store.Load(ctx))

	store.Clear(ctx)
	assert.Empty(t, store.Load(ctx))
}

// TestHistoryStore_EphemeralThumbnailFilter verifies that legacy blob: object
// URL thumbnails are dropped on load instead of being shown broken.
func TestHistoryStore_EphemeralThumbnailFilter(t *testing.T) {
	slots := setupSlots(t)
	store := storage.NewHistoryStore(slots)
	ctx := context.Background()

	legacy := newRecord("legacy", time.Date(2026, 8, 27, 8, 0, 0, 0, time.Local), 5, 5)
	legacy.Thumbnail = "blob:http://localhost/((uuid))"
	kept := newRecord("kept", time.Date(2026, 8, 28, 8, 0, 0, 0, time.Local), 5, 5)

	data, err := json.Marshal([]types.Record{legacy, kept})
	require.NoError(t, err)
	require.NoError(t, slots.WriteSlot(ctx, storage.HistorySlot, data))

	records := store.Load(ctx)
	require.Len(t, records, 1)
	assert.Equal(t, "kept", records[0].ID)
}

// TestHistoryStore_CorruptBlob verifies that an undecodable history blob
// degrades to an empty collection instead of an error.
func TestHistoryStore_CorruptBlob(t *testing.T) {
	slots := setupSlots(t)
	store := storage.NewHistoryStore(slots)
	ctx := context.Background()

	require.NoError(t, slots.WriteSlot(ctx, storage.HistorySlot, []byte("{not json")))
	assert.Empty(t, store.Load(ctx))

	// Individual bad entries are skipped, good ones survive.
	require.NoError(t, slots.WriteSlot(ctx, storage.HistorySlot,
		[]byte(`[{"id":"good","date":"2026-08-28T08:00:00Z","thumbnail":"data:image/png;base64,AAAA"},{"id":"bad","date":12345}]`)))
	records := store.Load(ctx)
	require.Len(t, records, 1)
	assert.Equal(t, "good", records[0].ID)
}

func TestHistoryStore_ScoreClampOnLoad(t *testing.T) {
	slots := setupSlots(t)
	store := storage.NewHistoryStore(slots)
	ctx := context.Background()

	rec := newRecord("r1", time.Now(), 14, -3)
	require.True(t, store.Save(ctx, rec, false))

	records := store.Load(ctx)
	require.Len(t, records, 1)
	assert.Equal(t, 10.0, records[0].Emotion.EnergyLevel)
	assert.Equal(t, 0.0, records[0].Emotion.MoodBrightness)
}
