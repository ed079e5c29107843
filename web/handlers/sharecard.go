package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Antivibe-Inc/face-labs-sub000/internal/sharecard"
)

// ShareCard handles GET /api/records/{id}/card: renders the record as a
// downloadable PNG named after the record's date.
func (h *APIHandlers) ShareCard(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	for _, rec := range h.history.Load(r.Context()) {
		if rec.ID != id {
			continue
		}
		data, err := sharecard.PNG(&rec)
		if err != nil {
			if errors.Is(err, sharecard.ErrNoThumbnail) {
				respondError(w, http.StatusUnprocessableEntity, "record has no image to render", err)
				return
			}
			respondError(w, http.StatusInternalServerError, "failed to render share card", err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sharecard.Filename(&rec)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			fmt.Printf("failed to write share card response: %v\n", err)
		}
		return
	}
	respondError(w, http.StatusNotFound, "record not found", nil)
}
