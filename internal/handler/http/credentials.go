package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

func (h *Handler) getCredentials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	set, err := h.services.Vault.GetCredentials(ctx, userID)
	if err != nil {
		log.Err(err).Msg("fetching credential set failed")
		writeError(w, err)
		return
	}

	writeJSON(w, set, http.StatusOK)
}

func (h *Handler) replaceCredentials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.ReplaceCredentialSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	set, err := h.services.Vault.ReplaceCredentialSet(ctx, userID, req)
	if err != nil {
		log.Err(err).Msg("replacing credential set failed")
		writeError(w, err)
		return
	}

	log.Debug().Int64("user_id", userID).Int64("version", set.Version).Msg("credential set replaced")

	writeJSON(w, set, http.StatusOK)
}
