// Package formulas holds the small numeric building blocks shared by the
// valuation, risk and simulation modules.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// Percentile returns the value at index floor(len*p) of an ascending slice.
// The index is clamped to the slice bounds; an empty slice yields 0.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}

	idx := int(math.Floor(float64(n) * p))
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return sorted[idx]
}

// NormalQuantile returns the inverse CDF of the standard normal distribution.
func NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// ParametricVaR returns the one-period parametric Value-at-Risk as a negative
// fraction: -(z * annualVol / sqrt(periodsPerYear)).
func ParametricVaR(annualVol, z, periodsPerYear float64) float64 {
	if periodsPerYear <= 0 {
		return 0
	}
	return -(z * annualVol / math.Sqrt(periodsPerYear))
}

// CompoundGrowth returns principal * (1 + rate)^years.
func CompoundGrowth(principal, rate, years float64) float64 {
	return principal * math.Pow(1+rate, years)
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
