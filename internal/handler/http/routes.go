package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	// routes behind bearer-token auth
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/vault/credentials", h.getCredentials)
		r.Put("/api/vault/credentials", h.replaceCredentials)

		r.Get("/api/vault/notes", h.listNotes)
		r.Get("/api/vault/notes/{noteID}", h.getNote)
		r.Put("/api/vault/notes/{noteID}", h.putNote)
	})

	return router
}
