package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	notes, err := h.services.Vault.ListNotes(ctx, userID)
	if err != nil {
		log.Err(err).Msg("listing notes failed")
		writeError(w, err)
		return
	}

	if notes == nil {
		notes = []models.EncryptedNote{}
	}
	writeJSON(w, notes, http.StatusOK)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	noteID, err := uuid.Parse(chi.URLParam(r, "noteID"))
	if err != nil {
		log.Err(err).Msg("invalid note id")
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}

	note, err := h.services.Vault.GetNote(ctx, userID, noteID)
	if err != nil {
		log.Err(err).Msg("fetching note failed")
		writeError(w, err)
		return
	}

	writeJSON(w, note, http.StatusOK)
}

func (h *Handler) putNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	noteID, err := uuid.Parse(chi.URLParam(r, "noteID"))
	if err != nil {
		log.Err(err).Msg("invalid note id")
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}

	var note models.EncryptedNote
	if err = json.NewDecoder(r.Body).Decode(&note); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	// the path is authoritative for the note id
	note.NoteID = noteID

	saved, err := h.services.Vault.PutNote(ctx, userID, note)
	if err != nil {
		log.Err(err).Msg("saving note failed")
		writeError(w, err)
		return
	}

	writeJSON(w, saved, http.StatusOK)
}
