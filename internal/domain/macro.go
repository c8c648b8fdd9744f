package domain

import (
	"fmt"

	"github.com/vantez/engine/pkg/formulas"
)

// MacroAssumptions are the read-only macro inputs threaded through every
// valuation and risk calculation. Pass by value; never share mutable copies.
type MacroAssumptions struct {
	Version              string  `json:"version,omitempty" yaml:"version"`
	RiskFreeRate         float64 `json:"risk_free_rate" yaml:"risk_free_rate"`
	ExpectedInflation    float64 `json:"expected_inflation" yaml:"expected_inflation"`
	EquityRiskPremium    float64 `json:"equity_risk_premium" yaml:"equity_risk_premium"`
	GDPGrowth            float64 `json:"gdp_growth" yaml:"gdp_growth"`
	ExpectedMarketReturn float64 `json:"expected_market_return" yaml:"expected_market_return"`
}

// DefaultMacro returns the reference 2026 regime.
func DefaultMacro() MacroAssumptions {
	return MacroAssumptions{
		Version:              "2026",
		RiskFreeRate:         0.1225,
		ExpectedInflation:    0.0397,
		EquityRiskPremium:    0.05,
		GDPGrowth:            0.02,
		ExpectedMarketReturn: 0.15,
	}
}

// DiscountRate is the Gordon-model required return (risk free + equity premium).
func (m MacroAssumptions) DiscountRate() float64 {
	return m.RiskFreeRate + m.EquityRiskPremium
}

// Validate rejects regimes containing non-finite numbers.
func (m MacroAssumptions) Validate() error {
	fields := map[string]float64{
		"risk_free_rate":         m.RiskFreeRate,
		"expected_inflation":     m.ExpectedInflation,
		"equity_risk_premium":    m.EquityRiskPremium,
		"gdp_growth":             m.GDPGrowth,
		"expected_market_return": m.ExpectedMarketReturn,
	}
	for name, v := range fields {
		if !formulas.IsFinite(v) {
			return fmt.Errorf("macro assumption %s is not a finite number", name)
		}
	}
	return nil
}
