// Package handlers provides HTTP handlers for fixed-income projections.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vantez/engine/internal/clients/bcb"
	"github.com/vantez/engine/internal/domain"
	"github.com/vantez/engine/internal/httputil"
	"github.com/vantez/engine/internal/modules/fixedincome"
	"github.com/vantez/engine/internal/utils"
)

// MaxScheduleYears bounds a year-by-year projection
const MaxScheduleYears = 100

// quoter is implemented by rate providers that can report where the rate came from
type quoter interface {
	Quote(ctx context.Context) bcb.Quote
}

// Handler handles fixed-income HTTP requests
type Handler struct {
	projector *fixedincome.Projector
	rates     fixedincome.BenchmarkRateProvider
	log       zerolog.Logger
}

// NewHandler creates a new fixed-income handler. A nil rate provider uses
// DefaultBenchmarkRate.
func NewHandler(projector *fixedincome.Projector, rates fixedincome.BenchmarkRateProvider, log zerolog.Logger) *Handler {
	if rates == nil {
		rates = fixedincome.StaticRate(fixedincome.DefaultBenchmarkRate)
	}
	return &Handler{
		projector: projector,
		rates:     rates,
		log:       log.With().Str("handler", "fixed_income").Logger(),
	}
}

// ProjectRequest is the body of the projection endpoints.
// BenchmarkRate overrides the live rate when present.
type ProjectRequest struct {
	Position      domain.AssetInput `json:"position" validate:"required"`
	Years         float64           `json:"years" validate:"gte=0,lte=100"`
	BenchmarkRate *float64          `json:"benchmark_rate" validate:"omitempty,gt=0"`
}

// ProjectResponse is the result of a single-horizon projection
type ProjectResponse struct {
	Ticker         string  `json:"ticker"`
	Principal      float64 `json:"principal"`
	AnnualRate     float64 `json:"annual_rate"`
	BenchmarkRate  float64 `json:"benchmark_rate"`
	Years          float64 `json:"years"`
	ProjectedValue float64 `json:"projected_value"`
	ProjectedLabel string  `json:"projected_label"`
}

// ScheduleResponse is the result of a year-by-year projection
type ScheduleResponse struct {
	Ticker        string                  `json:"ticker"`
	BenchmarkRate float64                 `json:"benchmark_rate"`
	Schedule      []fixedincome.YearValue `json:"schedule"`
}

// HandleProject handles POST /api/fixed-income/project
func (h *Handler) HandleProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := httputil.Decode(w, r, &req); err != nil {
		httputil.WriteDecodeError(w, r, h.log, err)
		return
	}

	position := req.Position.ToRecord()
	bench := h.benchmarkRate(r.Context(), req.BenchmarkRate)

	value, err := h.projector.Project(position, req.Years, bench)
	if err != nil {
		h.writeProjectionError(w, r, err)
		return
	}

	httputil.WriteData(w, r, h.log, http.StatusOK, ProjectResponse{
		Ticker:         position.Ticker,
		Principal:      fixedincome.Principal(position),
		AnnualRate:     h.projector.AnnualRate(position, bench),
		BenchmarkRate:  fixedincome.EffectiveBenchmark(bench),
		Years:          req.Years,
		ProjectedValue: value,
		ProjectedLabel: utils.FormatCurrency(value),
	})
}

// HandleSchedule handles POST /api/fixed-income/schedule
func (h *Handler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := httputil.Decode(w, r, &req); err != nil {
		httputil.WriteDecodeError(w, r, h.log, err)
		return
	}

	position := req.Position.ToRecord()
	bench := h.benchmarkRate(r.Context(), req.BenchmarkRate)
	years := int(req.Years)
	if years > MaxScheduleYears {
		years = MaxScheduleYears
	}

	schedule, err := h.projector.ProjectSchedule(position, years, bench)
	if err != nil {
		h.writeProjectionError(w, r, err)
		return
	}

	httputil.WriteData(w, r, h.log, http.StatusOK, ScheduleResponse{
		Ticker:        position.Ticker,
		BenchmarkRate: fixedincome.EffectiveBenchmark(bench),
		Schedule:      schedule,
	})
}

// HandleGetBenchmark handles GET /api/fixed-income/benchmark
func (h *Handler) HandleGetBenchmark(w http.ResponseWriter, r *http.Request) {
	if q, ok := h.rates.(quoter); ok {
		httputil.WriteData(w, r, h.log, http.StatusOK, q.Quote(r.Context()))
		return
	}

	httputil.WriteData(w, r, h.log, http.StatusOK, bcb.Quote{
		Rate:   fixedincome.EffectiveBenchmark(h.rates.CurrentRate(r.Context())),
		Source: "static",
	})
}

func (h *Handler) benchmarkRate(ctx context.Context, override *float64) float64 {
	if override != nil {
		return *override
	}
	return h.rates.CurrentRate(ctx)
}

func (h *Handler) writeProjectionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, fixedincome.ErrNotFixedIncome), errors.Is(err, fixedincome.ErrUndefinedProjection):
		httputil.WriteError(w, r, h.log, http.StatusUnprocessableEntity, err.Error())
	default:
		h.log.Error().Err(err).Msg("Failed to project position")
		httputil.WriteError(w, r, h.log, http.StatusInternalServerError, "failed to project position")
	}
}
