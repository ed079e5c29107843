package stats

import (
	"sort"
	"time"

	"github.com/Antivibe-Inc/face-labs-sub000/pkg/types"
)

// tagWindowDays is the trailing window for the tag frequency ranking.
const tagWindowDays = 30

// tagTopN is the number of ranked tags returned.
const tagTopN = 5

// TagCount is one entry of the tag frequency ranking. Percent is the share
// of total tag occurrences in the window, not of record count.
type TagCount struct {
	Tag     string  `json:"tag"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// TopTags counts tag occurrences across all records in the trailing 30 days
// and returns the top five by count, descending. Ties break alphabetically
// so the ranking is deterministic.
func TopTags(records []types.Record, now time.Time) []TagCount {
	start := now.AddDate(0, 0, -tagWindowDays)
	counts := make(map[string]int)
	total := 0

	for _, rec := range records {
		if rec.Date.Before(start) || rec.Date.After(now) {
			continue
		}
		for _, tag := range rec.Emotion.Tags {
			if tag == "" {
				continue
			}
			counts[tag]++
			total++
		}
	}

	if total == 0 {
		return []TagCount{}
	}

	ranked := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		ranked = append(ranked, TagCount{
			Tag:     tag,
			Count:   count,
			Percent: float64(count) / float64(total) * 100,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Tag < ranked[j].Tag
	})

	if len(ranked) > tagTopN {
		ranked = ranked[:tagTopN]
	}
	return ranked
}
