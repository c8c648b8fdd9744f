package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the fixed-income routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/fixed-income", func(r chi.Router) {
		r.Post("/project", h.HandleProject)
		r.Post("/schedule", h.HandleSchedule)
		r.Get("/benchmark", h.HandleGetBenchmark)
	})
}
