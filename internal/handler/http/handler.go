package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
)

type ctxKey int

const userIDCtxKey ctxKey = iota

type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// userIDFromContext returns the authenticated user id stored by the auth
// middleware. The second return is false for unauthenticated requests.
func userIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDCtxKey).(int64)
	return userID, ok
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
