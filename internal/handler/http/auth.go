package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, token, err := h.services.Auth.Register(ctx, req)
	if err != nil {
		log.Err(err).Msg("user registration failed")
		writeError(w, err)
		return
	}

	log.Debug().Int64("user_id", user.UserID).Msg("user registered")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	writeJSON(w, user, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, token, err := h.services.Auth.Login(ctx, req)
	if err != nil {
		log.Err(err).Msg("login failed")
		writeError(w, err)
		return
	}

	log.Debug().Int64("user_id", user.UserID).Msg("user logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	writeJSON(w, user, http.StatusOK)
}
