package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withRequestID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/v1/auth/register", h.register)
		r.Post("/api/v1/auth/token", h.token)

		r.Get("/health", h.health)
		r.Get("/health/db", h.healthDB)
	})

	// routes requiring a valid bearer token for an active account
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/v1/users", func(r chi.Router) {
			r.Get("/", h.listUsers)
			r.Get("/me", h.currentUser)
			r.Get("/{id}", h.getUser)
			r.Put("/{id}", h.updateUser)
			r.Delete("/{id}", h.deleteUser)
			r.Delete("/{id}/soft", h.softDeleteUser)
		})

		r.Route("/api/v1/upload", func(r chi.Router) {
			r.Post("/image", h.uploadImage)
			// wildcard: object keys contain slashes (tmp/20060102_...)
			r.Get("/url/*", h.presignURL)
		})
	})

	return router
}
