// Package stats computes derived aggregates over the record collection.
// Everything here is a pure function of the input records and an explicit
// reference time; nothing is persisted and nothing is cached. Missing
// optional scores are treated as 0, so "not measured" and "measured zero"
// are indistinguishable in every aggregate.
package stats

import (
	"time"

	"github.com/Antivibe-Inc/face-labs-sub000/pkg/types"
)

// WeeklyStats is the trailing-7-day aggregate. HasData is false when fewer
// than two qualifying records exist; the numeric fields are then zero and
// must not be displayed.
type WeeklyStats struct {
	Count     int     `json:"count"`
	AvgEnergy float64 `json:"avg_energy"`
	AvgMood   float64 `json:"avg_mood"`
	HasData   bool    `json:"has_data"`
}

// Weekly computes the trailing-7-day stats ending at now. At least two
// qualifying records are required; otherwise the no-data sentinel is
// returned.
func Weekly(records []types.Record, now time.Time) WeeklyStats {
	var (
		count     int
		sumEnergy float64
		sumMood   float64
		weekAgo   = now.AddDate(0, 0, -7)
	)

	for _, rec := range records {
		if rec.Date.Before(weekAgo) || rec.Date.After(now) {
			continue
		}
		count++
		sumEnergy += rec.Emotion.EnergyLevel
		sumMood += rec.Emotion.MoodBrightness
	}

	if count < 2 {
		return WeeklyStats{Count: count}
	}

	return WeeklyStats{
		Count:     count,
		AvgEnergy: sumEnergy / float64(count),
		AvgMood:   sumMood / float64(count),
		HasData:   true,
	}
}

// Band is a coarse classification of an average score.
type Band string

// Bands for the weekly narrative lookup.
const (
	BandLow  Band = "low"
	BandMid  Band = "mid"
	BandHigh Band = "high"
)

// Classify maps an average score into a band: low when <=3, high when >=7,
// mid otherwise.
func Classify(v float64) Band {
	switch {
	case v <= 3:
		return BandLow
	case v >= 7:
		return BandHigh
	default:
		return BandMid
	}
}

// WeeklySummary is one of nine fixed narrative templates chosen by the
// energy and mood bands. This is a static lookup, not generated text.
type WeeklySummary struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tips        []string `json:"tips"`
}

var weeklyTemplates = map[Band]map[Band]WeeklySummary{
	BandLow: {
		BandLow: {
			Title:       "需要好好休息的一周",
			Description: "这一周能量和心情都偏低，身体在发出需要照顾的信号。",
			Tips:        []string{"今晚试着提前一小时睡觉", "减少一项不必要的安排", "和信任的人聊聊最近的状态"},
		},
		BandMid: {
			Title:       "心平气和但有些疲惫",
			Description: "心情还算平稳，但能量明显不足，多半是休息没跟上。",
			Tips:        []string{"午后留出二十分钟小憩", "晚饭后散步十分钟", "睡前少看屏幕"},
		},
		BandHigh: {
			Title:       "心情不错，身体在透支",
			Description: "心情很亮，但能量偏低，开心的事也在消耗体力，别忘了补觉。",
			Tips:        []string{"把聚会安排得松一点", "补充水分和规律三餐", "固定起床时间"},
		},
	},
	BandMid: {
		BandLow: {
			Title:       "身体还行，心里有些闷",
			Description: "能量维持在中间水平，心情却偏暗，可能有事压在心上。",
			Tips:        []string{"写下让你烦心的三件事", "做一次喜欢的小事", "晒十五分钟太阳"},
		},
		BandMid: {
			Title:       "平稳的一周",
			Description: "能量和心情都在中间地带，不高不低，是可以慢慢积累的状态。",
			Tips:        []string{"保持现在的作息", "试着加入一次轻量运动", "记录一件今天的小确幸"},
		},
		BandHigh: {
			Title:       "心情领跑的一周",
			Description: "心情明亮，能量跟得上日常，是舒服的节奏。",
			Tips:        []string{"把好状态用在想做的事上", "别安排得太满", "睡前做几次深呼吸"},
		},
	},
	BandHigh: {
		BandLow: {
			Title:       "有劲但不太开心",
			Description: "能量充沛，心情却偏暗，精力也许正耗在让你不舒服的事情上。",
			Tips:        []string{"把一部分精力挪到喜欢的事上", "和朋友约一次见面", "减少让你消耗的信息源"},
		},
		BandMid: {
			Title:       "精力充沛的一周",
			Description: "能量很足，心情平稳，适合推进一些搁置的计划。",
			Tips:        []string{"挑一件拖延的事开始做", "保持运动习惯", "注意别熬夜透支"},
		},
		BandHigh: {
			Title:       "闪闪发光的一周",
			Description: "能量和心情都在高位，状态很好，记住现在的节奏。",
			Tips:        []string{"记下这周做对了什么", "把好状态分享给身边的人", "继续保持规律作息"},
		},
	},
}

// WeeklyNarrative selects the narrative template for the given weekly stats.
// Returns nil when the stats carry the no-data sentinel.
func WeeklyNarrative(ws WeeklyStats) *WeeklySummary {
	if !ws.HasData {
		return nil
	}
	summary := weeklyTemplates[Classify(ws.AvgEnergy)][Classify(ws.AvgMood)]
	return &summary
}
