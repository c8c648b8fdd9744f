package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the analysis routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/assets", func(r chi.Router) {
		r.Post("/analyze", h.HandleAnalyze)
		r.Post("/analyze/batch", h.HandleAnalyzeBatch)
	})
	r.Get("/macro", h.HandleGetMacro)
}
