// Package valuation computes fair-value estimates (Graham, Bazin, Gordon) and
// the relative valuation status of an asset.
package valuation

import (
	"math"

	"github.com/vantez/engine/internal/domain"
	"github.com/vantez/engine/pkg/formulas"
)

const (
	// GrahamMultiplier is the 15x P/E times 1.5x P/B ceiling of the Graham number
	GrahamMultiplier = 22.5
	// BazinRequiredYield is the minimum dividend yield of Bazin's ceiling price
	BazinRequiredYield = 0.06
	// UndervaluedThreshold is the fraction of the Graham price below which an asset is undervalued
	UndervaluedThreshold = 0.8
	// OvervaluedThreshold is the multiple of the Graham price above which an asset is overvalued
	OvervaluedThreshold = 1.2
	// DefaultPriceToEarnings is reported when P/E is missing or unreadable
	DefaultPriceToEarnings = 10.0

	defaultEarningsPerShare  = 1.0
	defaultBookValuePerShare = 1.0
)

// ComputeValuation returns the three fair-value estimates for asset under the
// given macro regime. It never fails: missing fundamentals take their
// defaults and undefined models are reported as nil.
func ComputeValuation(asset domain.AssetRecord, macro domain.MacroAssumptions) domain.ValuationResult {
	price := asset.CurrentPrice
	eps := domain.ValueOr(asset.EarningsPerShare, defaultEarningsPerShare)
	bvps := domain.ValueOr(asset.BookValuePerShare, defaultBookValuePerShare)
	if bvps == 0 {
		bvps = defaultBookValuePerShare
	}

	graham := GrahamPrice(price, eps, bvps)

	dividendPerShare := DividendPerShare(price, domain.ValueOr(asset.DividendYield, 0))

	return domain.ValuationResult{
		GrahamPrice:  graham,
		BazinCeiling: BazinCeiling(dividendPerShare),
		GordonPrice:  GordonPrice(dividendPerShare, macro),
		PEReference:  PEReference(asset.PriceToEarnings),
		Status:       Classify(price, graham),
	}
}

// GrahamPrice returns sqrt(22.5 * eps * bvps), or nil when the price is not
// positive or the fundamentals do not support an estimate.
func GrahamPrice(price, eps, bvps float64) *float64 {
	if price <= 0 || eps <= 0 {
		return nil
	}
	product := GrahamMultiplier * eps * bvps
	if product <= 0 || !formulas.IsFinite(product) {
		return nil
	}
	return domain.Float(math.Sqrt(product))
}

// DividendPerShare is price times the yield normalized to a fraction.
func DividendPerShare(price, dividendYield float64) float64 {
	dps := price * domain.NormalizeDividendYield(dividendYield)
	if !formulas.IsFinite(dps) {
		return 0
	}
	return dps
}

// BazinCeiling is the maximum price that still pays the required 6% yield.
func BazinCeiling(dividendPerShare float64) float64 {
	return dividendPerShare / BazinRequiredYield
}

// GordonPrice applies the Gordon growth model D / (k - g) with k the macro
// discount rate and g expected inflation. Without dividends the price is 0;
// when k <= g the model has no finite solution and nil is returned.
func GordonPrice(dividendPerShare float64, macro domain.MacroAssumptions) *float64 {
	if dividendPerShare <= 0 {
		return domain.Float(0)
	}
	spread := macro.DiscountRate() - macro.ExpectedInflation
	if spread <= 0 {
		return nil
	}
	price := dividendPerShare / spread
	if !formulas.IsFinite(price) {
		return nil
	}
	return domain.Float(price)
}

// PEReference returns the asset's P/E for display, or the default when it is
// absent, zero or non-finite.
func PEReference(pe *float64) float64 {
	if pe == nil || *pe == 0 || !formulas.IsFinite(*pe) {
		return DefaultPriceToEarnings
	}
	return *pe
}

// Classify compares price with the Graham estimate. Without an estimate the
// status is Fair.
func Classify(price float64, graham *float64) domain.ValuationStatus {
	if graham == nil {
		return domain.StatusFair
	}
	switch {
	case price < *graham*UndervaluedThreshold:
		return domain.StatusUndervalued
	case price > *graham*OvervaluedThreshold:
		return domain.StatusOvervalued
	default:
		return domain.StatusFair
	}
}
