package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Antivibe-Inc/face-labs-sub000/pkg/types"
)

// GetSettings handles GET /api/settings. Missing or corrupt persisted
// settings come back as the defaults, never an error.
func (h *APIHandlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.settings.Load(r.Context()))
}

// PutSettings handles PUT /api/settings. Invalid fields are normalized to
// their defaults rather than rejected.
func (h *APIHandlers) PutSettings(w http.ResponseWriter, r *http.Request) {
	var settings types.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	settings.Normalize()
	h.settings.Save(r.Context(), settings)
	respondJSON(w, http.StatusOK, settings)
}
