// Package types defines the core domain types for FaceLab: daily journal
// records, their embedded analysis sections, and user settings.
package types

import (
	"fmt"
	"time"
)

// Emotion holds the mood/energy portion of a daily assessment.
// All scores are on a 0-10 scale. The extended physiological scores are
// optional in the wire format and default to 0 when absent; a missing score
// and a measured zero are indistinguishable downstream.
type Emotion struct {
	Summary        string   `json:"summary"`
	EnergyLevel    float64  `json:"energy_level"`
	MoodBrightness float64  `json:"mood_brightness"`
	Tags           []string `json:"tags"`

	StressLevel          float64 `json:"stress_level,omitempty"`
	FatigueLevel         float64 `json:"fatigue_level,omitempty"`
	SleepinessLevel      float64 `json:"sleepiness_level,omitempty"`
	VitalityScore        float64 `json:"vitality_score,omitempty"`
	CalmnessScore        float64 `json:"calmness_score,omitempty"`
	FocusScore           float64 `json:"focus_score,omitempty"`
	ApproachabilityScore float64 `json:"approachability_score,omitempty"`
	ConfidenceScore      float64 `json:"confidence_score,omitempty"`
}

// Lifestyle holds observed signals and suggested adjustments.
type Lifestyle struct {
	Signals     []string `json:"signals"`
	Suggestions []string `json:"suggestions"`
}

// Reflection holds the journaling prompt portion of a record.
type Reflection struct {
	Summary   string   `json:"summary"`
	Questions []string `json:"questions"`
}

// ConversationTurn is one turn of the optional voice dialogue.
// Role is "user" or "assistant".
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Record is one persisted daily entry. Everything except Note is write-once:
// the record is assembled at creation time and only the free-text note may be
// edited afterwards.
type Record struct {
	ID        string    `json:"id"`        // Opaque unique identifier, immutable
	Date      time.Time `json:"date"`      // Creation time, immutable
	DateLabel string    `json:"dateLabel"` // Human-readable rendering of Date, cached at creation
	Thumbnail string    `json:"thumbnail"` // Embedded image data (data URL), immutable

	Emotion    Emotion    `json:"emotion"`
	Lifestyle  Lifestyle  `json:"lifestyle"`
	Reflection Reflection `json:"reflection"`

	Note string `json:"note,omitempty"` // User-editable after creation

	ConversationTranscript []ConversationTurn `json:"conversationTranscript,omitempty"`
	DialogSummary          string             `json:"dialogSummary,omitempty"`
}

// weekdayLabels renders weekdays the way the journal displays them.
var weekdayLabels = [7]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}

// FormatDateLabel renders a timestamp as the journal's display label,
// e.g. "2026年8月30日 周日".
func FormatDateLabel(t time.Time) string {
	return fmt.Sprintf("%d年%d月%d日 %s", t.Year(), int(t.Month()), t.Day(), weekdayLabels[int(t.Weekday())])
}

// SameCalendarDay reports whether two timestamps fall on the same calendar
// day in the local timezone of a. Used by the daily admission policy.
func SameCalendarDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ClampScore forces a score into the 0-10 range used by all assessments.
func ClampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

// Normalize clamps all score fields into range and ensures the list fields
// are non-nil so persisted JSON always carries arrays instead of nulls.
func (r *Record) Normalize() {
	r.Emotion.EnergyLevel = ClampScore(r.Emotion.EnergyLevel)
	r.Emotion.MoodBrightness = ClampScore(r.Emotion.MoodBrightness)
	r.Emotion.StressLevel = ClampScore(r.Emotion.StressLevel)
	r.Emotion.FatigueLevel = ClampScore(r.Emotion.FatigueLevel)
	r.Emotion.SleepinessLevel = ClampScore(r.Emotion.SleepinessLevel)
	r.Emotion.VitalityScore = ClampScore(r.Emotion.VitalityScore)
	r.Emotion.CalmnessScore = ClampScore(r.Emotion.CalmnessScore)
	r.Emotion.FocusScore = ClampScore(r.Emotion.FocusScore)
	r.Emotion.ApproachabilityScore = ClampScore(r.Emotion.ApproachabilityScore)
	r.Emotion.ConfidenceScore = ClampScore(r.Emotion.ConfidenceScore)

	if r.Emotion.Tags == nil {
		r.Emotion.Tags = []string{}
	}
	if r.Lifestyle.Signals == nil {
		r.Lifestyle.Signals = []string{}
	}
	if r.Lifestyle.Suggestions == nil {
		r.Lifestyle.Suggestions = []string{}
	}
	if r.Reflection.Questions == nil {
		r.Reflection.Questions = []string{}
	}
}
