// Package analysis orchestrates the assessment flow: provider call,
// graceful degradation to a local generator, and mapping of raw assessments
// into the persisted record shape.
package analysis

import (
	"math/rand"
	"sync"

	"github.com/Antivibe-Inc/face-labs-sub000/internal/llm"
)

// fallbackProfile is one canned offline assessment. Profiles deliberately
// sit in the believable middle of the scale so a degraded result never
// claims a striking high or low the app cannot justify.
type fallbackProfile struct {
	assessment llm.Assessment
}

var fallbackProfiles = []fallbackProfile{
	{assessment: llm.Assessment{
		EnergyLevel: 5, MoodBrightness: 6,
		Tags:            []string{"平静", "放松"},
		SkinSignals:     []string{"气色平稳"},
		LifestyleHints:  []string{"多喝水", "睡前放下手机"},
		StressLevel:     4, FatigueLevel: 4, SleepinessLevel: 3,
		VitalityScore: 5, CalmnessScore: 6, FocusScore: 5,
		ApproachabilityScore: 6, ConfidenceScore: 5,
	}},
	{assessment: llm.Assessment{
		EnergyLevel: 4, MoodBrightness: 5,
		Tags:            []string{"疲惫", "平静"},
		SkinSignals:     []string{"眼周略显疲态"},
		LifestyleHints:  []string{"今晚早点休息", "午后散散步"},
		StressLevel:     5, FatigueLevel: 6, SleepinessLevel: 5,
		VitalityScore: 4, CalmnessScore: 5, FocusScore: 4,
		ApproachabilityScore: 5, ConfidenceScore: 4,
	}},
	{assessment: llm.Assessment{
		EnergyLevel: 6, MoodBrightness: 6,
		Tags:            []string{"专注", "沉稳"},
		SkinSignals:     []string{"精神状态尚可"},
		LifestyleHints:  []string{"保持目前的节奏", "记得按时吃饭"},
		StressLevel:     4, FatigueLevel: 3, SleepinessLevel: 3,
		VitalityScore: 6, CalmnessScore: 6, FocusScore: 7,
		ApproachabilityScore: 5, ConfidenceScore: 6,
	}},
	{assessment: llm.Assessment{
		EnergyLevel: 5, MoodBrightness: 4,
		Tags:            []string{"若有所思", "安静"},
		SkinSignals:     []string{"神情有些沉"},
		LifestyleHints:  []string{"和朋友聊聊天", "出门晒晒太阳"},
		StressLevel:     5, FatigueLevel: 4, SleepinessLevel: 4,
		VitalityScore: 5, CalmnessScore: 5, FocusScore: 5,
		ApproachabilityScore: 4, ConfidenceScore: 4,
	}},
}

var fallbackTurns = []llm.DialogueTurn{
	{Observation: "今天的你看起来比较平稳。", Question: "最近有什么让你在意的事情吗？"},
	{Observation: "从照片里能感觉到一点疲惫。", Question: "昨晚睡得还好吗？"},
	{Observation: "你的神情里有一种安静的专注。", Question: "今天有什么想完成的小目标吗？"},
}

// FallbackGenerator produces deterministic offline assessments when the
// provider is unreachable. The randomness source is seeded so tests can pin
// the sequence.
type FallbackGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewFallbackGenerator creates a generator with the given seed.
func NewFallbackGenerator(seed int64) *FallbackGenerator {
	return &FallbackGenerator{rng: rand.New(rand.NewSource(seed))}
}

// Assessment returns a copy of one of the canned profiles, confidence zeroed
// so a degraded result is recognizable downstream.
func (g *FallbackGenerator) Assessment() *llm.Assessment {
	g.mu.Lock()
	profile := fallbackProfiles[g.rng.Intn(len(fallbackProfiles))]
	g.mu.Unlock()

	a := profile.assessment
	a.Tags = append([]string(nil), a.Tags...)
	a.SkinSignals = append([]string(nil), a.SkinSignals...)
	a.LifestyleHints = append([]string(nil), a.LifestyleHints...)
	a.AnalysisConfidence = 0
	a.Warnings = []string{"离线分析，结果仅供参考"}
	return &a
}

// Turn returns a canned conversation turn.
func (g *FallbackGenerator) Turn() *llm.DialogueTurn {
	g.mu.Lock()
	defer g.mu.Unlock()
	turn := fallbackTurns[g.rng.Intn(len(fallbackTurns))]
	return &turn
}

// Summary builds a conversation summary from whatever assessment the session
// started with; with no provider there is nothing smarter to say.
func (g *FallbackGenerator) Summary(assessment *llm.Assessment) *llm.DialogueSummary {
	summary := &llm.DialogueSummary{
		EnergyLevel:    5,
		MoodBrightness: 5,
		Tags:           []string{"平静"},
		Suggestions:    []string{"照顾好自己的节奏"},
		DialogSummary:  "今天进行了一次简短的自我觉察。",
	}
	if assessment != nil {
		summary.EnergyLevel = assessment.EnergyLevel
		summary.MoodBrightness = assessment.MoodBrightness
		if len(assessment.Tags) > 0 {
			summary.Tags = append([]string(nil), assessment.Tags...)
		}
		if len(assessment.LifestyleHints) > 0 {
			summary.Suggestions = append([]string(nil), assessment.LifestyleHints...)
		}
	}
	return summary
}
