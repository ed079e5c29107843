package stats

import (
	"time"

	"github.com/Antivibe-Inc/face-labs-sub000/pkg/types"
)

// rhythmWindowDays is the trailing window for the day-of-week rhythm.
const rhythmWindowDays = 90

// rhythmMinRecords is the minimum number of qualifying records required
// before the rhythm is considered meaningful.
const rhythmMinRecords = 3

// WeekdayRhythm is the per-weekday aggregate of the five raw metrics.
// A weekday with no records reports Count 0 and zero averages; it is never
// omitted from the output.
type WeekdayRhythm struct {
	Weekday       time.Weekday `json:"weekday"` // 0=Sunday .. 6=Saturday
	Count         int          `json:"count"`
	AvgEnergy     float64      `json:"avg_energy"`
	AvgMood       float64      `json:"avg_mood"`
	AvgStress     float64      `json:"avg_stress"`
	AvgFatigue    float64      `json:"avg_fatigue"`
	AvgSleepiness float64      `json:"avg_sleepiness"`
}

// Rhythm buckets the trailing-90-day records by weekday and averages the
// five raw metrics per bucket. All seven weekdays are always present in the
// result, Sunday first. The second return value is false when fewer than
// three qualifying records exist in the window.
func Rhythm(records []types.Record, now time.Time) ([7]WeekdayRhythm, bool) {
	var (
		out   [7]WeekdayRhythm
		total int
		start = now.AddDate(0, 0, -rhythmWindowDays)
	)

	for i := range out {
		out[i].Weekday = time.Weekday(i)
	}

	var sums [7][5]float64
	for _, rec := range records {
		if rec.Date.Before(start) || rec.Date.After(now) {
			continue
		}
		total++
		wd := int(rec.Date.Weekday())
		out[wd].Count++
		sums[wd][0] += rec.Emotion.EnergyLevel
		sums[wd][1] += rec.Emotion.MoodBrightness
		sums[wd][2] += rec.Emotion.StressLevel
		sums[wd][3] += rec.Emotion.FatigueLevel
		sums[wd][4] += rec.Emotion.SleepinessLevel
	}

	for i := range out {
		if out[i].Count == 0 {
			continue
		}
		n := float64(out[i].Count)
		out[i].AvgEnergy = sums[i][0] / n
		out[i].AvgMood = sums[i][1] / n
		out[i].AvgStress = sums[i][2] / n
		out[i].AvgFatigue = sums[i][3] / n
		out[i].AvgSleepiness = sums[i][4] / n
	}

	return out, total >= rhythmMinRecords
}
