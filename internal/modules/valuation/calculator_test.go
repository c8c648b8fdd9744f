package valuation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantez/engine/internal/domain"
)

func referenceMacro() domain.MacroAssumptions {
	return domain.MacroAssumptions{
		RiskFreeRate:         0.1225,
		ExpectedInflation:    0.0397,
		EquityRiskPremium:    0.05,
		ExpectedMarketReturn: 0.15,
	}
}

func TestComputeValuation_EndToEndScenario(t *testing.T) {
	asset := domain.AssetRecord{
		Ticker:            "PETR4",
		AssetClass:        domain.AssetClassEquity,
		CurrentPrice:      41.60,
		EarningsPerShare:  domain.Float(5.2),
		BookValuePerShare: domain.Float(20),
		DividendYield:     domain.Float(0.10),
	}

	result := ComputeValuation(asset, referenceMacro())

	require.NotNil(t, result.GrahamPrice)
	assert.InDelta(t, math.Sqrt(2340), *result.GrahamPrice, 1e-9)
	assert.InDelta(t, 48.37, *result.GrahamPrice, 0.01)
	assert.Equal(t, domain.StatusFair, result.Status)

	// DPS = 4.16
	assert.InDelta(t, 4.16/0.06, result.BazinCeiling, 1e-9)
	require.NotNil(t, result.GordonPrice)
	assert.InDelta(t, 4.16/(0.1725-0.0397), *result.GordonPrice, 1e-9)
	assert.Equal(t, DefaultPriceToEarnings, result.PEReference)
}

func TestGrahamPrice_Definedness(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		eps   float64
		bvps  float64
		want  *float64
	}{
		{"positive fundamentals", 10, 2, 8, domain.Float(math.Sqrt(22.5 * 2 * 8))},
		{"zero eps", 10, 0, 8, nil},
		{"negative eps", 10, -1.5, 8, nil},
		{"negative book value", 10, 2, -3, nil},
		{"zero price", 0, 2, 8, nil},
		{"negative price", -5, 2, 8, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GrahamPrice(tt.price, tt.eps, tt.bvps)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestComputeValuation_DefaultsFundamentals(t *testing.T) {
	asset := domain.AssetRecord{Ticker: "MGLU3", CurrentPrice: 2.05}

	result := ComputeValuation(asset, referenceMacro())

	require.NotNil(t, result.GrahamPrice, "absent eps and bvps default to 1")
	assert.InDelta(t, math.Sqrt(22.5), *result.GrahamPrice, 1e-12)
	assert.Equal(t, 0.0, result.BazinCeiling)
	require.NotNil(t, result.GordonPrice)
	assert.Equal(t, 0.0, *result.GordonPrice)
}

func TestComputeValuation_ZeroBookValueTakesDefault(t *testing.T) {
	tests := []struct {
		name string
		eps  *float64
		want *float64
	}{
		{"positive eps", domain.Float(2), domain.Float(math.Sqrt(45))},
		{"zero eps stays undefined", domain.Float(0), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset := domain.AssetRecord{
				Ticker:            "ITSA4",
				CurrentPrice:      9.5,
				EarningsPerShare:  tt.eps,
				BookValuePerShare: domain.Float(0),
			}

			result := ComputeValuation(asset, referenceMacro())

			if tt.want == nil {
				assert.Nil(t, result.GrahamPrice)
				return
			}
			require.NotNil(t, result.GrahamPrice)
			assert.InDelta(t, *tt.want, *result.GrahamPrice, 1e-12)
		})
	}
}

func TestComputeValuation_ExplicitNonPositiveEPS(t *testing.T) {
	asset := domain.AssetRecord{
		Ticker:           "LOSS3",
		CurrentPrice:     12,
		EarningsPerShare: domain.Float(-0.4),
	}

	result := ComputeValuation(asset, referenceMacro())

	assert.Nil(t, result.GrahamPrice)
	assert.Equal(t, domain.StatusFair, result.Status, "no valuation signal defaults to neutral")
}

func TestClassify_Monotonicity(t *testing.T) {
	graham := 50.0
	g := &graham

	tests := []struct {
		price float64
		want  domain.ValuationStatus
	}{
		{1, domain.StatusUndervalued},
		{39.99, domain.StatusUndervalued},
		{40, domain.StatusFair},
		{50, domain.StatusFair},
		{60, domain.StatusFair},
		{60.01, domain.StatusOvervalued},
		{500, domain.StatusOvervalued},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.price, g), "price=%v", tt.price)
	}

	assert.Equal(t, domain.StatusFair, Classify(1, nil))
}

func TestDividendPerShare_NormalizesYield(t *testing.T) {
	assert.InDelta(t, 1.0, DividendPerShare(10, 10), 1e-12, "percentage form")
	assert.InDelta(t, 1.0, DividendPerShare(10, 0.10), 1e-12, "fraction form")
	assert.Equal(t, 0.0, DividendPerShare(10, 0))
}

func TestGordonPrice_UndefinedWhenDiscountBelowGrowth(t *testing.T) {
	macro := referenceMacro()
	macro.ExpectedInflation = 0.20 // g > k

	assert.Nil(t, GordonPrice(4, macro))

	macro.ExpectedInflation = macro.DiscountRate() // g == k
	assert.Nil(t, GordonPrice(4, macro))

	// Without dividends the model is simply zero, even in a degenerate regime
	got := GordonPrice(0, macro)
	require.NotNil(t, got)
	assert.Equal(t, 0.0, *got)
}

func TestPEReference(t *testing.T) {
	assert.Equal(t, DefaultPriceToEarnings, PEReference(nil))
	assert.Equal(t, DefaultPriceToEarnings, PEReference(domain.Float(0)))
	assert.Equal(t, DefaultPriceToEarnings, PEReference(domain.Float(math.Inf(1))))
	assert.Equal(t, 8.2, PEReference(domain.Float(8.2)))
	assert.Equal(t, -3.0, PEReference(domain.Float(-3)))
}

func TestComputeValuation_VariedMacroRegimes(t *testing.T) {
	asset := domain.AssetRecord{
		Ticker:        "TAEE11",
		CurrentPrice:  35.40,
		DividendYield: domain.Float(9),
	}

	regimes := []domain.MacroAssumptions{
		{RiskFreeRate: 0.05, EquityRiskPremium: 0.04, ExpectedInflation: 0.02},
		{RiskFreeRate: 0.1375, EquityRiskPremium: 0.06, ExpectedInflation: 0.045},
		{RiskFreeRate: 0.02, EquityRiskPremium: 0.01, ExpectedInflation: 0.08},
	}

	for _, macro := range regimes {
		result := ComputeValuation(asset, macro)
		if result.GordonPrice != nil {
			assert.False(t, math.IsNaN(*result.GordonPrice))
			assert.False(t, math.IsInf(*result.GordonPrice, 0))
			assert.Greater(t, *result.GordonPrice, 0.0)
		} else {
			assert.LessOrEqual(t, macro.DiscountRate(), macro.ExpectedInflation)
		}
	}
}
