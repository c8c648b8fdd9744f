package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the simulation routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/simulations", func(r chi.Router) {
		r.Post("/gbm", h.HandleRunGBM)
		r.Get("/stream", h.HandleStream)
		r.Get("/scenarios", h.HandleListScenarios)
	})
}
