package stats

import (
	"time"

	"github.com/Antivibe-Inc/face-labs-sub000/pkg/types"
)

// wellnessWindowDays is the trailing window for the five-dimension composite.
const wellnessWindowDays = 30

// WellnessComposite is the five-dimension wellness aggregate over the
// trailing 30 days. Count is the number of qualifying records; when it is
// zero the dimension values are zero and callers should substitute
// NeutralWellness for display.
type WellnessComposite struct {
	Vitality  float64 `json:"vitality"`
	Physio    float64 `json:"physio"`
	Emotion   float64 `json:"emotion"`
	Cognitive float64 `json:"cognitive"`
	Social    float64 `json:"social"`
	Count     int     `json:"count"`
}

// NeutralWellness is the display placeholder used when no records qualify:
// the midpoint on every dimension. It is a presentation fallback, never a
// computed value, and must never be persisted.
func NeutralWellness() WellnessComposite {
	return WellnessComposite{Vitality: 5, Physio: 5, Emotion: 5, Cognitive: 5, Social: 5}
}

// Wellness computes the five-dimension composite over the trailing 30 days.
// Per record:
//
//	vitality  = mean(energy, vitality_score)
//	physio    = 10 - mean(stress, fatigue, sleepiness), floored at 0
//	emotion   = mean(mood, calmness_score)
//	cognitive = focus_score
//	social    = mean(approachability_score, confidence_score)
//
// Each derived score is then averaged across all qualifying records.
func Wellness(records []types.Record, now time.Time) WellnessComposite {
	var (
		out   WellnessComposite
		start = now.AddDate(0, 0, -wellnessWindowDays)
	)

	for _, rec := range records {
		if rec.Date.Before(start) || rec.Date.After(now) {
			continue
		}
		e := rec.Emotion

		physio := 10 - (e.StressLevel+e.FatigueLevel+e.SleepinessLevel)/3
		if physio < 0 {
			physio = 0
		}

		out.Vitality += (e.EnergyLevel + e.VitalityScore) / 2
		out.Physio += physio
		out.Emotion += (e.MoodBrightness + e.CalmnessScore) / 2
		out.Cognitive += e.FocusScore
		out.Social += (e.ApproachabilityScore + e.ConfidenceScore) / 2
		out.Count++
	}

	if out.Count == 0 {
		return out
	}

	n := float64(out.Count)
	out.Vitality /= n
	out.Physio /= n
	out.Emotion /= n
	out.Cognitive /= n
	out.Social /= n
	return out
}
