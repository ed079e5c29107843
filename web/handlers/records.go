package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Antivibe-Inc/face-labs-sub000/internal/analysis"
)

// CreateRecord handles POST /api/records. The server assembles the record
// from the assessment and enforces the one-record-per-day admission policy.
func (h *APIHandlers) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req SaveRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Assessment == nil {
		respondError(w, http.StatusBadRequest, "assessment is required", nil)
		return
	}

	rec := h.analyzer.BuildRecord(req.Assessment, req.Thumbnail)
	rec.Note = req.Note
	if len(req.Transcript) > 0 || req.Summary != nil {
		analysis.ApplyDialogue(rec, req.Transcript, req.Summary)
	}

	if !h.history.Save(r.Context(), *rec, req.BypassDailyLimit) {
		respondError(w, http.StatusConflict, "record not saved", errors.New("a record already exists for today"))
		return
	}

	h.broadcastEvent("record-created", rec.ID)
	respondJSON(w, http.StatusCreated, rec)
}

// ListRecords handles GET /api/records, newest first.
func (h *APIHandlers) ListRecords(w http.ResponseWriter, r *http.Request) {
	records := h.history.Load(r.Context())
	respondJSON(w, http.StatusOK, RecordListResponse{
		Records: records,
		Total:   len(records),
	})
}

// GetRecord handles GET /api/records/{id}.
func (h *APIHandlers) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	for _, rec := range h.history.Load(r.Context()) {
		if rec.ID == id {
			respondJSON(w, http.StatusOK, rec)
			return
		}
	}
	respondError(w, http.StatusNotFound, "record not found", nil)
}

// UpdateRecordNote handles PATCH /api/records/{id}. Only the free-text note
// is mutable; a miss is not an error.
func (h *APIHandlers) UpdateRecordNote(w http.ResponseWriter, r *http.Request) {
	var req UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	h.history.UpdateNote(r.Context(), r.PathValue("id"), req.Note)
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DeleteRecord handles DELETE /api/records/{id}. Deleting an absent record
// succeeds.
func (h *APIHandlers) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.history.Delete(r.Context(), id)
	h.broadcastEvent("record-deleted", id)
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ClearRecords handles DELETE /api/records, wiping the whole journal.
func (h *APIHandlers) ClearRecords(w http.ResponseWriter, r *http.Request) {
	h.history.Clear(r.Context())
	h.broadcastEvent("records-cleared", "")
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
