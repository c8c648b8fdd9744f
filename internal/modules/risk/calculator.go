// Package risk computes parametric risk figures for an asset.
package risk

import (
	"github.com/vantez/engine/internal/domain"
	"github.com/vantez/engine/pkg/formulas"
)

const (
	// ZScore95 is the one-sided 95% quantile of the standard normal
	ZScore95 = 1.645
	// TradingDaysPerYear scales annual volatility to a daily horizon
	TradingDaysPerYear = 252
	// CVaRMultiplier approximates expected shortfall as a fixed multiple of VaR.
	// It is not a tail integral.
	CVaRMultiplier = 1.2

	// DefaultVolatility is used when volatility is absent or not positive
	DefaultVolatility = 0.25
	// DefaultBeta is used when beta is absent or zero
	DefaultBeta = 1.1
)

// ComputeRisk returns volatility, beta, projected Sharpe ratio and the daily
// 95% VaR/CVaR, both as negative percentages.
func ComputeRisk(asset domain.AssetRecord, macro domain.MacroAssumptions) domain.RiskMetrics {
	vol := Volatility(asset.Volatility)
	beta := Beta(asset.Beta)

	sharpe := (macro.ExpectedMarketReturn - macro.RiskFreeRate) / vol
	if !formulas.IsFinite(sharpe) {
		sharpe = 0
	}

	varPct := formulas.ParametricVaR(vol, ZScore95, TradingDaysPerYear) * 100

	return domain.RiskMetrics{
		Volatility:      vol,
		Beta:            beta,
		ProjectedSharpe: sharpe,
		VaR95:           varPct,
		CVaR95:          varPct * CVaRMultiplier,
	}
}

// Volatility returns the annualized volatility with its default applied.
func Volatility(v *float64) float64 {
	if v == nil || *v <= 0 || !formulas.IsFinite(*v) {
		return DefaultVolatility
	}
	return *v
}

// Beta returns beta with its default applied. Negative betas are kept.
func Beta(b *float64) float64 {
	if b == nil || *b == 0 || !formulas.IsFinite(*b) {
		return DefaultBeta
	}
	return *b
}
