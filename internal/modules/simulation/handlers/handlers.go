// Package handlers provides HTTP and websocket handlers for price simulations.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vantez/engine/internal/httputil"
	"github.com/vantez/engine/internal/modules/simulation"
)

// Handler handles simulation requests
type Handler struct {
	simulator *simulation.Simulator
	log       zerolog.Logger
}

// NewHandler creates a new simulation handler
func NewHandler(simulator *simulation.Simulator, log zerolog.Logger) *Handler {
	return &Handler{
		simulator: simulator,
		log:       log.With().Str("handler", "simulation").Logger(),
	}
}

// HandleRunGBM handles POST /api/simulations/gbm
func (h *Handler) HandleRunGBM(w http.ResponseWriter, r *http.Request) {
	var req simulation.Request
	if err := httputil.Decode(w, r, &req); err != nil {
		httputil.WriteDecodeError(w, r, h.log, err)
		return
	}

	run, err := h.simulator.Run(r.Context(), req)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		httputil.WriteError(w, r, h.log, http.StatusServiceUnavailable, "simulation timed out")
		return
	}
	if err != nil {
		httputil.WriteError(w, r, h.log, http.StatusBadRequest, err.Error())
		return
	}

	httputil.WriteData(w, r, h.log, http.StatusOK, run)
}

// HandleListScenarios handles GET /api/simulations/scenarios
func (h *Handler) HandleListScenarios(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, r, h.log, http.StatusOK, simulation.Scenarios())
}
