// Package llm provides clients for the generative AI providers that produce
// face assessments and dialogue turns, plus the shared response parsing and
// circuit breaking around them.
package llm

import (
	"context"

	"github.com/Antivibe-Inc/face-labs-sub000/pkg/types"
)

// Assessment is the normalized analysis response for a face image.
// This mirrors the provider wire contract; the analysis service maps it into
// the persisted record shape.
type Assessment struct {
	EnergyLevel        float64  `json:"energy_level"`    // 0-10
	MoodBrightness     float64  `json:"mood_brightness"` // 0-10
	Tags               []string `json:"tags"`
	SkinSignals        []string `json:"skin_signals,omitempty"`
	LifestyleHints     []string `json:"lifestyle_hints,omitempty"`
	AnalysisConfidence float64  `json:"analysis_confidence,omitempty"` // 0-1
	Warnings           []string `json:"warnings,omitempty"`

	// Extended physiological scores, 0-10, optional; absent means 0.
	StressLevel          float64 `json:"stress_level,omitempty"`
	FatigueLevel         float64 `json:"fatigue_level,omitempty"`
	SleepinessLevel      float64 `json:"sleepiness_level,omitempty"`
	VitalityScore        float64 `json:"vitality_score,omitempty"`
	CalmnessScore        float64 `json:"calmness_score,omitempty"`
	FocusScore           float64 `json:"focus_score,omitempty"`
	ApproachabilityScore float64 `json:"approachability_score,omitempty"`
	ConfidenceScore      float64 `json:"confidence_score,omitempty"`
}

// DialogueTurn is one assistant turn of the follow-up conversation.
type DialogueTurn struct {
	Observation string `json:"observation"`
	Question    string `json:"question"`
}

// DialogueSummary is the structured payload returned when the user ends the
// conversation; it feeds the permanent record.
type DialogueSummary struct {
	EnergyLevel    float64  `json:"energy_level"`
	MoodBrightness float64  `json:"mood_brightness"`
	Tags           []string `json:"tags"`
	Suggestions    []string `json:"suggestions"`
	DialogSummary  string   `json:"dialog_summary"`
}

// DialogueRequest carries the full conversation context for a follow-up
// call: the original image, the prior structured assessment, and the ordered
// transcript so far.
type DialogueRequest struct {
	ImageBase64 string
	Assessment  *Assessment
	Transcript  []types.ConversationTurn
}

// VisionProvider is the interface to a generative AI service that can look
// at a face image. One in-flight request per user action and no retries; a
// failed call is the caller's cue to fall back.
type VisionProvider interface {
	// AnalyzeFace produces the impressionistic assessment for a base64 image.
	AnalyzeFace(ctx context.Context, imageBase64 string) (*Assessment, error)

	// DialogueTurn produces the next assistant turn of the follow-up
	// conversation.
	DialogueTurn(ctx context.Context, req DialogueRequest) (*DialogueTurn, error)

	// SummarizeDialogue closes the conversation and returns the structured
	// summary payload.
	SummarizeDialogue(ctx context.Context, req DialogueRequest) (*DialogueSummary, error)

	// GetModel returns the configured model name.
	GetModel() string
}
