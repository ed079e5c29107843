package handlers

import (
	"encoding/json"
	"net/http"
)

// maxImageBytes bounds the accepted request body; a base64 selfie from the
// in-app camera is well under this.
const maxImageBytes = 8 << 20

// Analyze handles POST /api/analyze: assess a face image and open a
// dialogue session for optional follow-up. Provider failures degrade to the
// offline generator, so this endpoint only fails on bad input.
func (h *APIHandlers) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Image == "" {
		respondError(w, http.StatusBadRequest, "image is required", nil)
		return
	}

	assessment, degraded := h.analyzer.Analyze(r.Context(), req.Image)
	sessionID := h.dialogue.Start(req.Image, assessment)

	respondJSON(w, http.StatusOK, AnalyzeResponse{
		Assessment: assessment,
		Degraded:   degraded,
		SessionID:  sessionID,
	})
}

// DialogueTurn handles POST /api/dialogue/turn: one user utterance in, one
// assistant turn out.
func (h *APIHandlers) DialogueTurn(w http.ResponseWriter, r *http.Request) {
	var req DialogueTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.SessionID == "" {
		respondError(w, http.StatusBadRequest, "session_id is required", nil)
		return
	}

	turn := h.dialogue.Turn(r.Context(), req.SessionID, req.Text)
	respondJSON(w, http.StatusOK, turn)
}

// DialogueEnd handles POST /api/dialogue/end: closes the session and
// returns the structured summary plus the transcript for record assembly.
func (h *APIHandlers) DialogueEnd(w http.ResponseWriter, r *http.Request) {
	var req DialogueEndRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.SessionID == "" {
		respondError(w, http.StatusBadRequest, "session_id is required", nil)
		return
	}

	summary, transcript := h.dialogue.End(r.Context(), req.SessionID)
	respondJSON(w, http.StatusOK, DialogueEndResponse{
		Summary:    summary,
		Transcript: transcript,
	})
}
