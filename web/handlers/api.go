// Package handlers provides the HTTP handlers and middleware for the
// FaceLab JSON API.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Antivibe-Inc/face-labs-sub000/internal/analysis"
	"github.com/Antivibe-Inc/face-labs-sub000/internal/storage"
)

// APIHandlers contains the HTTP handlers for the REST API.
type APIHandlers struct {
	history  *storage.HistoryStore
	settings *storage.SettingsStore
	analyzer *analysis.Service
	dialogue *analysis.DialogueManager
	hub      *WebSocketHub
	now      func() time.Time
}

// NewAPIHandlers creates a new APIHandlers instance. hub may be nil; record
// lifecycle events are then simply not broadcast.
func NewAPIHandlers(history *storage.HistoryStore, settings *storage.SettingsStore, analyzer *analysis.Service, dialogue *analysis.DialogueManager, hub *WebSocketHub) *APIHandlers {
	return &APIHandlers{
		history:  history,
		settings: settings,
		analyzer: analyzer,
		dialogue: dialogue,
		hub:      hub,
		now:      time.Now,
	}
}

// SetClock overrides the time source used by the stats endpoints, for tests.
func (h *APIHandlers) SetClock(now func() time.Time) {
	h.now = now
}

// broadcastEvent pushes a record lifecycle event to connected clients.
func (h *APIHandlers) broadcastEvent(eventType, recordID string) {
	if h.hub == nil {
		return
	}
	h.hub.Broadcast(map[string]string{
		"type":      eventType,
		"record_id": recordID,
	})
}

// parseInt parses a string to int, returning defaultValue on failure.
func parseInt(s string, defaultValue int) int {
	if s == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return val
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// headers are already sent; nothing to do but note it
		fmt.Printf("failed to encode JSON response: %v\n", err)
	}
}

// respondError writes an error response with the given status code.
func respondError(w http.ResponseWriter, statusCode int, message string, err error) {
	errResp := ErrorResponse{
		Error: message,
		Code:  http.StatusText(statusCode),
	}
	if err != nil {
		errResp.Details = map[string]interface{}{
			"error": err.Error(),
		}
	}
	respondJSON(w, statusCode, errResp)
}
