package analysis

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Antivibe-Inc/face-labs-sub000/internal/llm"
	"github.com/Antivibe-Inc/face-labs-sub000/pkg/types"
)

// Service runs the assessment flow. A provider failure of any kind degrades
// to the local generator instead of surfacing an error; the caller only
// learns about it through the degraded flag.
type Service struct {
	provider llm.VisionProvider
	fallback *FallbackGenerator
	now      func() time.Time
}

// NewService wires a provider (may be nil for offline-only deployments) and
// a fallback generator.
func NewService(provider llm.VisionProvider, fallback *FallbackGenerator) *Service {
	return &Service{
		provider: provider,
		fallback: fallback,
		now:      time.Now,
	}
}

// SetClock overrides the time source, for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Analyze assesses a base64 face image. The second return reports whether
// the result came from the offline generator.
func (s *Service) Analyze(ctx context.Context, imageBase64 string) (*llm.Assessment, bool) {
	if s.provider != nil {
		assessment, err := s.provider.AnalyzeFace(ctx, imageBase64)
		if err == nil {
			return assessment, false
		}
		log.Printf("analysis: provider failed, using offline generator: %v", err)
	}
	return s.fallback.Assessment(), true
}

// BuildRecord assembles a persistable record from an assessment. The caller
// supplies the thumbnail data URL; ID, timestamps and the narrative summary
// are filled in here.
func (s *Service) BuildRecord(assessment *llm.Assessment, thumbnail string) *types.Record {
	now := s.now()
	rec := &types.Record{
		ID:        uuid.New().String(),
		Date:      now,
		DateLabel: types.FormatDateLabel(now),
		Thumbnail: thumbnail,
		Emotion: types.Emotion{
			Summary:        summaryFor(assessment),
			EnergyLevel:    assessment.EnergyLevel,
			MoodBrightness: assessment.MoodBrightness,
			Tags:           append([]string(nil), assessment.Tags...),

			StressLevel:          assessment.StressLevel,
			FatigueLevel:         assessment.FatigueLevel,
			SleepinessLevel:      assessment.SleepinessLevel,
			VitalityScore:        assessment.VitalityScore,
			CalmnessScore:        assessment.CalmnessScore,
			FocusScore:           assessment.FocusScore,
			ApproachabilityScore: assessment.ApproachabilityScore,
			ConfidenceScore:      assessment.ConfidenceScore,
		},
		Lifestyle: types.Lifestyle{
			Signals:     append([]string(nil), assessment.SkinSignals...),
			Suggestions: append([]string(nil), assessment.LifestyleHints...),
		},
		Reflection: types.Reflection{
			Summary:   reflectionFor(assessment),
			Questions: reflectionQuestions(assessment),
		},
	}
	rec.Normalize()
	return rec
}

// ApplyDialogue folds a finished conversation into a record: the transcript,
// the closing summary, and any refreshed scores or tags the summary carries.
func ApplyDialogue(rec *types.Record, transcript []types.ConversationTurn, summary *llm.DialogueSummary) {
	rec.ConversationTranscript = append([]types.ConversationTurn(nil), transcript...)
	if summary == nil {
		return
	}
	rec.DialogSummary = summary.DialogSummary
	if summary.EnergyLevel > 0 {
		rec.Emotion.EnergyLevel = types.ClampScore(summary.EnergyLevel)
	}
	if summary.MoodBrightness > 0 {
		rec.Emotion.MoodBrightness = types.ClampScore(summary.MoodBrightness)
	}
	if len(summary.Tags) > 0 {
		rec.Emotion.Tags = append([]string(nil), summary.Tags...)
	}
	if len(summary.Suggestions) > 0 {
		rec.Lifestyle.Suggestions = append([]string(nil), summary.Suggestions...)
	}
}

// summaryFor renders the one-line narrative shown on the record card.
func summaryFor(a *llm.Assessment) string {
	energy := bandWord(a.EnergyLevel, "能量偏低", "能量平稳", "能量充沛")
	mood := bandWord(a.MoodBrightness, "心情有些低落", "心情平和", "心情明亮")
	if len(a.Tags) > 0 {
		return fmt.Sprintf("今天的你%s，%s，整体感觉是「%s」。", energy, mood, strings.Join(a.Tags, "、"))
	}
	return fmt.Sprintf("今天的你%s，%s。", energy, mood)
}

func reflectionFor(a *llm.Assessment) string {
	switch {
	case a.EnergyLevel <= 3:
		return "今天的能量不太够，允许自己慢下来。"
	case a.EnergyLevel >= 7:
		return "状态不错，把这份能量用在想做的事情上吧。"
	default:
		return "平平常常的一天，也值得被好好记录。"
	}
}

func reflectionQuestions(a *llm.Assessment) []string {
	questions := []string{"今天有什么瞬间让你印象深刻？"}
	if a.FatigueLevel >= 6 || a.SleepinessLevel >= 6 {
		questions = append(questions, "最近的休息够吗？")
	}
	if a.MoodBrightness <= 3 {
		questions = append(questions, "有什么事情压在心里吗？")
	}
	return questions
}

func bandWord(score float64, low, mid, high string) string {
	switch {
	case score <= 3:
		return low
	case score >= 7:
		return high
	default:
		return mid
	}
}
