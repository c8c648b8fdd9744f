package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vantez/engine/internal/domain"
	"github.com/vantez/engine/pkg/formulas"
)

func TestComputeRisk_Defaults(t *testing.T) {
	macro := domain.DefaultMacro()

	metrics := ComputeRisk(domain.AssetRecord{Ticker: "ITSA4", CurrentPrice: 10}, macro)

	assert.Equal(t, DefaultVolatility, metrics.Volatility)
	assert.Equal(t, DefaultBeta, metrics.Beta)
	assert.InDelta(t, (0.15-0.1225)/0.25, metrics.ProjectedSharpe, 1e-12)
	assert.InDelta(t, -(1.645*0.25/math.Sqrt(252))*100, metrics.VaR95, 1e-12)
	assert.InDelta(t, metrics.VaR95*1.2, metrics.CVaR95, 1e-12)
}

func TestComputeRisk_TailOrdering(t *testing.T) {
	macro := domain.DefaultMacro()

	for _, vol := range []float64{0.01, 0.12, 0.25, 0.6, 1.5, -0.3, 0} {
		metrics := ComputeRisk(domain.AssetRecord{Volatility: domain.Float(vol)}, macro)

		assert.LessOrEqual(t, metrics.CVaR95, metrics.VaR95, "vol=%v", vol)
		assert.LessOrEqual(t, metrics.VaR95, 0.0, "vol=%v", vol)
		assert.Greater(t, metrics.Volatility, 0.0, "vol=%v", vol)
	}
}

func TestVolatility(t *testing.T) {
	tests := []struct {
		name string
		in   *float64
		want float64
	}{
		{"absent", nil, DefaultVolatility},
		{"zero", domain.Float(0), DefaultVolatility},
		{"negative", domain.Float(-0.2), DefaultVolatility},
		{"nan", domain.Float(math.NaN()), DefaultVolatility},
		{"provided", domain.Float(0.41), 0.41},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Volatility(tt.in))
		})
	}
}

func TestBeta(t *testing.T) {
	assert.Equal(t, DefaultBeta, Beta(nil))
	assert.Equal(t, DefaultBeta, Beta(domain.Float(0)))
	assert.Equal(t, 0.8, Beta(domain.Float(0.8)))
	assert.Equal(t, -0.3, Beta(domain.Float(-0.3)))
}

func TestZScore95MatchesNormalQuantile(t *testing.T) {
	assert.InDelta(t, formulas.NormalQuantile(0.95), ZScore95, 1e-3)
}

func TestComputeRisk_SharpeFollowsMacro(t *testing.T) {
	asset := domain.AssetRecord{Volatility: domain.Float(0.2)}

	low := ComputeRisk(asset, domain.MacroAssumptions{RiskFreeRate: 0.05, ExpectedMarketReturn: 0.12})
	high := ComputeRisk(asset, domain.MacroAssumptions{RiskFreeRate: 0.14, ExpectedMarketReturn: 0.12})

	assert.InDelta(t, 0.35, low.ProjectedSharpe, 1e-12)
	assert.InDelta(t, -0.1, high.ProjectedSharpe, 1e-12)
	assert.Equal(t, low.VaR95, high.VaR95)
}
