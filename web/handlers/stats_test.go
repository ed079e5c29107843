package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Antivibe-Inc/face-labs-sub000/pkg/types"
)

// seedRecords stores one record per day counting back from now, oldest
// energy first.
func seedRecords(t *testing.T, h *APIHandlers, now time.Time, energies ...float64) {
	t.Helper()
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	for i, energy := range energies {
		day := now.AddDate(0, 0, -(len(energies) - 1 - i))
		h.history.SetClock(func() time.Time { return day })
		ok := h.history.Save(ctx, types.Record{
			ID:   fmt.Sprintf("rec-%d", i),
			Date: day,
			Emotion: types.Emotion{
				EnergyLevel:    energy,
				MoodBrightness: energy,
				Tags:           []string{"平静"},
			},
		}, false)
		require.True(t, ok)
	}
	h.history.SetClock(func() time.Time { return now })
}

func TestWeeklyStats(t *testing.T) {
	h := newTestHandlers(t)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	h.SetClock(func() time.Time { return now })
	seedRecords(t, h, now, 4, 8)

	w := httptest.NewRecorder()
	h.WeeklyStats(w, httptest.NewRequest(http.MethodGet, "/api/stats/weekly", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Stats struct {
			Count     int     `json:"count"`
			AvgEnergy float64 `json:"avg_energy"`
			HasData   bool    `json:"has_data"`
		} `json:"stats"`
		Narrative *struct {
			Title string `json:"title"`
		} `json:"narrative"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Stats.Count)
	assert.Equal(t, 6.0, resp.Stats.AvgEnergy)
	assert.True(t, resp.Stats.HasData)
	require.NotNil(t, resp.Narrative)
	assert.NotEmpty(t, resp.Narrative.Title)
}

func TestWellnessStats_NeutralWhenEmpty(t *testing.T) {
	h := newTestHandlers(t)

	w := httptest.NewRecorder()
	h.WellnessStats(w, httptest.NewRequest(http.MethodGet, "/api/stats/wellness", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Neutral  bool `json:"neutral"`
		Wellness struct {
			Vitality float64 `json:"vitality"`
		} `json:"wellness"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Neutral)
	assert.Equal(t, 5.0, resp.Wellness.Vitality)
}

func TestTagStats(t *testing.T) {
	h := newTestHandlers(t)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	h.SetClock(func() time.Time { return now })
	seedRecords(t, h, now, 5, 6)

	w := httptest.NewRecorder()
	h.TagStats(w, httptest.NewRequest(http.MethodGet, "/api/stats/tags", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Tags []struct {
			Tag   string `json:"tag"`
			Count int    `json:"count"`
		} `json:"tags"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Tags, 1)
	assert.Equal(t, "平静", resp.Tags[0].Tag)
	assert.Equal(t, 2, resp.Tags[0].Count)
}

func TestTrendPath(t *testing.T) {
	h := newTestHandlers(t)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	h.SetClock(func() time.Time { return now })
	seedRecords(t, h, now, 2, 5, 8)

	w := httptest.NewRecorder()
	h.TrendPath(w, httptest.NewRequest(http.MethodGet, "/api/stats/trend?metric=energy&limit=7", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp TrendResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "energy", resp.Metric)
	assert.Equal(t, []float64{2, 5, 8}, resp.Values)
	assert.Contains(t, resp.Path, "M ")
	assert.Contains(t, resp.Path, "C ")
}

func TestTrendPath_RejectsUnknownMetric(t *testing.T) {
	h := newTestHandlers(t)
	w := httptest.NewRecorder()
	h.TrendPath(w, httptest.NewRequest(http.MethodGet, "/api/stats/trend?metric=stress", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrendPath_EmptyHistory(t *testing.T) {
	h := newTestHandlers(t)
	w := httptest.NewRecorder()
	h.TrendPath(w, httptest.NewRequest(http.MethodGet, "/api/stats/trend", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp TrendResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Values)
	assert.Empty(t, resp.Path)
}
