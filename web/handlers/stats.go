package handlers

import (
	"net/http"

	"github.com/Antivibe-Inc/face-labs-sub000/internal/chart"
	"github.com/Antivibe-Inc/face-labs-sub000/internal/stats"
	"github.com/Antivibe-Inc/face-labs-sub000/pkg/types"
)

// WeeklyStats handles GET /api/stats/weekly: trailing 7-day averages plus
// the narrative summary when enough records exist.
func (h *APIHandlers) WeeklyStats(w http.ResponseWriter, r *http.Request) {
	records := h.history.Load(r.Context())
	weekly := stats.Weekly(records, h.now())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"stats":     weekly,
		"narrative": stats.WeeklyNarrative(weekly),
	})
}

// RhythmStats handles GET /api/stats/rhythm: day-of-week energy buckets
// over the trailing 90 days.
func (h *APIHandlers) RhythmStats(w http.ResponseWriter, r *http.Request) {
	records := h.history.Load(r.Context())
	rhythm, hasData := stats.Rhythm(records, h.now())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"rhythm":   rhythm,
		"has_data": hasData,
	})
}

// WellnessStats handles GET /api/stats/wellness: the five-dimension
// composite over the trailing 30 days, neutral when the window is empty.
func (h *APIHandlers) WellnessStats(w http.ResponseWriter, r *http.Request) {
	records := h.history.Load(r.Context())
	composite := stats.Wellness(records, h.now())
	neutral := composite.Count == 0
	if neutral {
		composite = stats.NeutralWellness()
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"wellness": composite,
		"neutral":  neutral,
	})
}

// TagStats handles GET /api/stats/tags: the top mood tags over the trailing
// 30 days.
func (h *APIHandlers) TagStats(w http.ResponseWriter, r *http.Request) {
	records := h.history.Load(r.Context())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tags": stats.TopTags(records, h.now()),
	})
}

// TrendPath handles GET /api/stats/trend?metric=energy|mood&limit=N: the
// smoothed SVG path for the most recent scores, oldest first, ready to drop
// into the UI's chart.
func (h *APIHandlers) TrendPath(w http.ResponseWriter, r *http.Request) {
	metric := r.URL.Query().Get("metric")
	if metric == "" {
		metric = "energy"
	}
	if metric != "energy" && metric != "mood" {
		respondError(w, http.StatusBadRequest, "metric must be energy or mood", nil)
		return
	}
	limit := parseInt(r.URL.Query().Get("limit"), 7)
	if limit < 1 {
		limit = 1
	}

	records := h.history.Load(r.Context()) // newest first
	if len(records) > limit {
		records = records[:limit]
	}

	// oldest first for left-to-right plotting
	values := make([]float64, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		values = append(values, metricValue(records[i], metric))
	}

	plot := chart.DefaultPlot()
	respondJSON(w, http.StatusOK, TrendResponse{
		Metric: metric,
		Values: values,
		Path:   chart.SmoothPath(plot.MapSeries(values)),
	})
}

func metricValue(rec types.Record, metric string) float64 {
	if metric == "mood" {
		return rec.Emotion.MoodBrightness
	}
	return rec.Emotion.EnergyLevel
}
