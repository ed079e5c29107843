package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// analysisPrompt is the fixed instruction sent with every face image.
// The provider must answer with a bare JSON object matching the Assessment
// shape; the parser tolerates a surrounding markdown code fence anyway.
const analysisPrompt = `You are a gentle wellness companion looking at a selfie.
Give an impressionistic, non-medical read of the person's visible mood and energy.

Respond with ONLY a JSON object, no other text:
{
  "energy_level": 0-10,
  "mood_brightness": 0-10,
  "tags": ["2-4 short mood words in Chinese"],
  "skin_signals": ["visible signals, e.g. 气色不错, 有些浮肿"],
  "lifestyle_hints": ["1-3 gentle suggestions in Chinese"],
  "analysis_confidence": 0.0-1.0,
  "warnings": [],
  "stress_level": 0-10,
  "fatigue_level": 0-10,
  "sleepiness_level": 0-10,
  "vitality_score": 0-10,
  "calmness_score": 0-10,
  "focus_score": 0-10,
  "approachability_score": 0-10,
  "confidence_score": 0-10
}

Never diagnose. Keep every text field warm and brief.`

// dialoguePromptHeader opens every follow-up conversation call.
const dialoguePromptHeader = `You are continuing a short supportive check-in conversation
about how the person in the photo is feeling today. Their structured assessment and the
conversation so far are below. Reply with ONLY a JSON object:
{"observation": "one warm sentence in Chinese", "question": "one gentle follow-up question in Chinese"}`

// summaryPromptHeader closes the conversation and asks for the structured
// summary payload that becomes part of the permanent record.
const summaryPromptHeader = `The check-in conversation below is ending. Produce a final
structured summary. Reply with ONLY a JSON object:
{"energy_level": 0-10, "mood_brightness": 0-10, "tags": ["short mood words in Chinese"],
"suggestions": ["1-3 gentle suggestions in Chinese"], "dialog_summary": "two sentences in Chinese"}`

// buildDialoguePrompt renders the conversation context for a follow-up call.
func buildDialoguePrompt(header string, req DialogueRequest) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\nAssessment:\n")

	if req.Assessment != nil {
		if data, err := json.Marshal(req.Assessment); err == nil {
			b.Write(data)
		}
	}

	b.WriteString("\n\nConversation:\n")
	for _, turn := range req.Transcript {
		fmt.Fprintf(&b, "%s: %s\n", turn.Role, turn.Content)
	}
	return b.String()
}
