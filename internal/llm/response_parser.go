package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Antivibe-Inc/face-labs-sub000/pkg/types"
)

// extractJSON extracts the first complete JSON object from a string that may
// contain extra text. Providers wrap their answer in markdown code fences or
// add explanations despite instructions; this strips both.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	if start == -1 {
		return text // No JSON found, return as-is and let the parser fail
	}

	braceCount := 0
	inString := false
	escape := false

	for i := start; i < len(text); i++ {
		char := text[i]

		if escape {
			escape = false
			continue
		}
		if char == '\\' {
			escape = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}

		if !inString {
			switch char {
			case '{':
				braceCount++
			case '}':
				braceCount--
				if braceCount == 0 {
					return text[start : i+1]
				}
			}
		}
	}

	return text // No complete JSON object found
}

// ParseAssessment parses an analysis response into a validated Assessment.
// Scores are clamped into range rather than rejected; only malformed JSON or
// a response missing the core fields is an error, which is the caller's cue
// to fall back to the local generator.
func ParseAssessment(raw string) (*Assessment, error) {
	cleanJSON := extractJSON(raw)

	var a Assessment
	if err := json.Unmarshal([]byte(cleanJSON), &a); err != nil {
		return nil, fmt.Errorf("failed to parse assessment JSON: %w", err)
	}

	if len(a.Tags) == 0 {
		return nil, fmt.Errorf("assessment has no tags")
	}

	a.EnergyLevel = types.ClampScore(a.EnergyLevel)
	a.MoodBrightness = types.ClampScore(a.MoodBrightness)
	a.StressLevel = types.ClampScore(a.StressLevel)
	a.FatigueLevel = types.ClampScore(a.FatigueLevel)
	a.SleepinessLevel = types.ClampScore(a.SleepinessLevel)
	a.VitalityScore = types.ClampScore(a.VitalityScore)
	a.CalmnessScore = types.ClampScore(a.CalmnessScore)
	a.FocusScore = types.ClampScore(a.FocusScore)
	a.ApproachabilityScore = types.ClampScore(a.ApproachabilityScore)
	a.ConfidenceScore = types.ClampScore(a.ConfidenceScore)

	if a.AnalysisConfidence < 0 {
		a.AnalysisConfidence = 0
	}
	if a.AnalysisConfidence > 1 {
		a.AnalysisConfidence = 1
	}

	return &a, nil
}

// ParseDialogueTurn parses a follow-up conversation response.
func ParseDialogueTurn(raw string) (*DialogueTurn, error) {
	cleanJSON := extractJSON(raw)

	var turn DialogueTurn
	if err := json.Unmarshal([]byte(cleanJSON), &turn); err != nil {
		return nil, fmt.Errorf("failed to parse dialogue turn JSON: %w", err)
	}
	if turn.Observation == "" && turn.Question == "" {
		return nil, fmt.Errorf("dialogue turn is empty")
	}
	return &turn, nil
}

// ParseDialogueSummary parses the end-of-conversation summary payload.
func ParseDialogueSummary(raw string) (*DialogueSummary, error) {
	cleanJSON := extractJSON(raw)

	var summary DialogueSummary
	if err := json.Unmarshal([]byte(cleanJSON), &summary); err != nil {
		return nil, fmt.Errorf("failed to parse dialogue summary JSON: %w", err)
	}

	summary.EnergyLevel = types.ClampScore(summary.EnergyLevel)
	summary.MoodBrightness = types.ClampScore(summary.MoodBrightness)
	return &summary, nil
}
