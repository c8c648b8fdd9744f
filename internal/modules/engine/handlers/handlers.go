// Package handlers provides HTTP handlers for asset analysis.
package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vantez/engine/internal/domain"
	"github.com/vantez/engine/internal/httputil"
	"github.com/vantez/engine/internal/modules/engine"
	"github.com/vantez/engine/internal/utils"
)

// LabelUnavailable is shown in place of a valuation the model cannot produce
const LabelUnavailable = "data unavailable"

// MaxBatchSize bounds a batch analysis request
const MaxBatchSize = 500

// Handler handles asset analysis HTTP requests
type Handler struct {
	service *engine.Service
	log     zerolog.Logger
}

// NewHandler creates a new analysis handler
func NewHandler(service *engine.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "engine").Logger(),
	}
}

// AnalysisView is an enriched asset plus display labels
type AnalysisView struct {
	domain.EnrichedAsset
	Labels map[string]string `json:"labels"`
}

type batchRequest struct {
	Assets []domain.AssetInput `json:"assets" validate:"required,min=1,max=500,dive"`
}

// HandleAnalyze handles POST /api/assets/analyze
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var in domain.AssetInput
	if err := httputil.Decode(w, r, &in); err != nil {
		httputil.WriteDecodeError(w, r, h.log, err)
		return
	}

	enriched := h.service.Analyze(in.ToRecord())
	httputil.WriteData(w, r, h.log, http.StatusOK, view(enriched))
}

// HandleAnalyzeBatch handles POST /api/assets/analyze/batch
func (h *Handler) HandleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := httputil.Decode(w, r, &req); err != nil {
		httputil.WriteDecodeError(w, r, h.log, err)
		return
	}

	records := make([]domain.AssetRecord, len(req.Assets))
	for i, in := range req.Assets {
		records[i] = in.ToRecord()
	}

	enriched := h.service.AnalyzeBatch(records)
	views := make([]AnalysisView, len(enriched))
	for i, e := range enriched {
		views[i] = view(e)
	}

	httputil.WriteData(w, r, h.log, http.StatusOK, map[string]interface{}{
		"assets": views,
		"count":  len(views),
	})
}

// HandleGetMacro handles GET /api/macro
func (h *Handler) HandleGetMacro(w http.ResponseWriter, r *http.Request) {
	macro := h.service.Macro()
	httputil.WriteData(w, r, h.log, http.StatusOK, map[string]interface{}{
		"macro":         macro,
		"discount_rate": macro.DiscountRate(),
	})
}

func view(e domain.EnrichedAsset) AnalysisView {
	labels := map[string]string{
		"current_price": utils.FormatCurrency(e.CurrentPrice),
	}
	if v := e.Valuation; v != nil {
		labels["graham_price"] = optionalLabel(v.GrahamPrice)
		labels["gordon_price"] = optionalLabel(v.GordonPrice)
		labels["bazin_ceiling"] = utils.FormatCurrency(v.BazinCeiling)
	}
	return AnalysisView{EnrichedAsset: e, Labels: labels}
}

func optionalLabel(v *float64) string {
	if v == nil {
		return LabelUnavailable
	}
	return utils.FormatCurrency(*v)
}
