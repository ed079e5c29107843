package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validAssessmentJSON = `{
	"energy_level": 6,
	"mood_brightness": 7,
	"tags": ["平静", "放松"],
	"skin_signals": ["气色不错"],
	"lifestyle_hints": ["早点休息"],
	"analysis_confidence": 0.8
}`

func TestParseAssessment_Plain(t *testing.T) {
	a, err := ParseAssessment(validAssessmentJSON)
	require.NoError(t, err)
	assert.Equal(t, 6.0, a.EnergyLevel)
	assert.Equal(t, 7.0, a.MoodBrightness)
	assert.Equal(t, []string{"平静", "放松"}, a.Tags)
	assert.Equal(t, 0.8, a.AnalysisConfidence)
}

// TestParseAssessment_MarkdownFence verifies the parser tolerates the
// response being wrapped in a markdown code fence, with or without prose
// around it.
func TestParseAssessment_MarkdownFence(t *testing.T) {
	wrapped := "Here is the analysis you asked for:\n```json\n" + validAssessmentJSON + "\n```\nHope that helps!"
	a, err := ParseAssessment(wrapped)
	require.NoError(t, err)
	assert.Equal(t, 6.0, a.EnergyLevel)
	assert.Equal(t, []string{"平静", "放松"}, a.Tags)
}

func TestParseAssessment_BracesInsideStrings(t *testing.T) {
	raw := "```json\n{\"energy_level\": 5, \"mood_brightness\": 5, \"tags\": [\"像{谜}一样\"]}\n```"
	a, err := ParseAssessment(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"像{谜}一样"}, a.Tags)
}

func TestParseAssessment_ClampsScores(t *testing.T) {
	raw := `{"energy_level": 14, "mood_brightness": -2, "tags": ["x"], "analysis_confidence": 1.7, "stress_level": 99}`
	a, err := ParseAssessment(raw)
	require.NoError(t, err)
	assert.Equal(t, 10.0, a.EnergyLevel)
	assert.Equal(t, 0.0, a.MoodBrightness)
	assert.Equal(t, 1.0, a.AnalysisConfidence)
	assert.Equal(t, 10.0, a.StressLevel)
}

func TestParseAssessment_Rejects(t *testing.T) {
	// Not JSON at all.
	_, err := ParseAssessment("I cannot analyze this image.")
	assert.Error(t, err)

	// Parseable but missing the core shape.
	_, err = ParseAssessment(`{"energy_level": 5, "mood_brightness": 5}`)
	assert.Error(t, err)
}

func TestParseDialogueTurn(t *testing.T) {
	turn, err := ParseDialogueTurn("```json\n{\"observation\": \"你看起来放松了一些\", \"question\": \"今天睡得怎么样？\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "你看起来放松了一些", turn.Observation)
	assert.Equal(t, "今天睡得怎么样？", turn.Question)

	_, err = ParseDialogueTurn(`{"observation": "", "question": ""}`)
	assert.Error(t, err)
}

func TestParseDialogueSummary(t *testing.T) {
	raw := `{"energy_level": 11, "mood_brightness": 6, "tags": ["累"], "suggestions": ["早点睡"], "dialog_summary": "今天有些疲惫。"}`
	summary, err := ParseDialogueSummary(raw)
	require.NoError(t, err)
	assert.Equal(t, 10.0, summary.EnergyLevel)
	assert.Equal(t, "今天有些疲惫。", summary.DialogSummary)
	assert.Equal(t, []string{"早点睡"}, summary.Suggestions)
}

func TestExtractJSON_NoObject(t *testing.T) {
	assert.Equal(t, "plain text", extractJSON("plain text"))
}
