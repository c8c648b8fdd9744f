package domain

// ValuationStatus classifies the price against the Graham estimate
type ValuationStatus string

const (
	StatusUndervalued ValuationStatus = "UNDERVALUED"
	StatusFair        ValuationStatus = "FAIR"
	StatusOvervalued  ValuationStatus = "OVERVALUED"
)

// ValuationResult holds the fair-value estimates for one asset.
// GrahamPrice and GordonPrice are nil when the model is undefined for the
// inputs; callers render them as "data unavailable".
type ValuationResult struct {
	GrahamPrice  *float64        `json:"graham_price"`
	BazinCeiling float64         `json:"bazin_ceiling"`
	GordonPrice  *float64        `json:"gordon_price"`
	PEReference  float64         `json:"pe_reference"`
	Status       ValuationStatus `json:"status"`
}

// RiskMetrics holds the parametric risk figures for one asset.
// VaR95 and CVaR95 are daily losses expressed as negative percentages.
type RiskMetrics struct {
	Volatility      float64 `json:"volatility"`
	Beta            float64 `json:"beta"`
	ProjectedSharpe float64 `json:"projected_sharpe"`
	VaR95           float64 `json:"var_95"`
	CVaR95          float64 `json:"cvar_95"`
}

// EnrichedAsset is an AssetRecord plus the engine output.
// Fixed-income assets carry no valuation, risk metrics or tags.
type EnrichedAsset struct {
	AssetRecord
	Valuation   *ValuationResult `json:"valuation,omitempty"`
	RiskMetrics *RiskMetrics     `json:"risk_metrics,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
}

// SimulationBand is the cross-sectional summary of a simulated ensemble at
// one time step.
type SimulationBand struct {
	Step  int     `json:"step" msgpack:"step"`
	Label string  `json:"label" msgpack:"label"`
	P10   float64 `json:"p10" msgpack:"p10"`
	P50   float64 `json:"p50" msgpack:"p50"`
	P90   float64 `json:"p90" msgpack:"p90"`
	Mean  float64 `json:"mean" msgpack:"mean"`
}
