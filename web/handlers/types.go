package handlers

import (
	"github.com/Antivibe-Inc/face-labs-sub000/internal/llm"
	"github.com/Antivibe-Inc/face-labs-sub000/pkg/types"
)

// ErrorResponse is the standard error response format for the API.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// AnalyzeRequest is the request format for POST /api/analyze.
type AnalyzeRequest struct {
	Image string `json:"image"` // base64 face image, bare or data URL
}

// AnalyzeResponse carries the assessment plus the dialogue session opened
// for optional follow-up conversation.
type AnalyzeResponse struct {
	Assessment *llm.Assessment `json:"assessment"`
	Degraded   bool            `json:"degraded"`
	SessionID  string          `json:"session_id"`
}

// DialogueTurnRequest is the request format for POST /api/dialogue/turn.
type DialogueTurnRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// DialogueEndRequest is the request format for POST /api/dialogue/end.
type DialogueEndRequest struct {
	SessionID string `json:"session_id"`
}

// DialogueEndResponse returns the structured summary and the transcript so
// the client can fold both into the record it saves.
type DialogueEndResponse struct {
	Summary    *llm.DialogueSummary     `json:"summary"`
	Transcript []types.ConversationTurn `json:"transcript"`
}

// SaveRecordRequest is the request format for POST /api/records. The server
// assembles the record (id, timestamps, narrative) from the assessment.
type SaveRecordRequest struct {
	Assessment       *llm.Assessment          `json:"assessment"`
	Thumbnail        string                   `json:"thumbnail"`
	Note             string                   `json:"note,omitempty"`
	BypassDailyLimit bool                     `json:"bypass_daily_limit,omitempty"`
	Transcript       []types.ConversationTurn `json:"transcript,omitempty"`
	Summary          *llm.DialogueSummary     `json:"summary,omitempty"`
}

// RecordListResponse is the response format for GET /api/records.
type RecordListResponse struct {
	Records []types.Record `json:"records"`
	Total   int            `json:"total"`
}

// UpdateNoteRequest is the request format for PATCH /api/records/{id}.
type UpdateNoteRequest struct {
	Note string `json:"note"`
}

// TrendResponse is the response format for GET /api/stats/trend: the SVG
// path for the recent score series, oldest first.
type TrendResponse struct {
	Metric string    `json:"metric"`
	Values []float64 `json:"values"`
	Path   string    `json:"path"`
}
