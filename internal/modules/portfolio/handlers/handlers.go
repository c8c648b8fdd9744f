// Package handlers provides HTTP handlers for portfolio summaries.
package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vantez/engine/internal/domain"
	"github.com/vantez/engine/internal/httputil"
	"github.com/vantez/engine/internal/modules/portfolio"
)

// Handler handles portfolio HTTP requests
type Handler struct {
	log zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{
		log: log.With().Str("handler", "portfolio").Logger(),
	}
}

type summaryRequest struct {
	Positions []domain.AssetInput `json:"positions" validate:"max=5000,dive"`
}

// HandleSummary handles POST /api/portfolio/summary
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := httputil.Decode(w, r, &req); err != nil {
		httputil.WriteDecodeError(w, r, h.log, err)
		return
	}

	positions := make([]domain.AssetRecord, len(req.Positions))
	for i, in := range req.Positions {
		positions[i] = in.ToRecord()
	}

	httputil.WriteData(w, r, h.log, http.StatusOK, portfolio.Summarize(positions))
}
