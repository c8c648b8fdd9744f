package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-12)
}

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		name string
		p    float64
		want float64
	}{
		{"p10 picks index 1", 0.1, 2},
		{"median picks index 5", 0.5, 6},
		{"p90 picks index 9", 0.9, 10},
		{"p0 picks first", 0.0, 1},
		{"p100 clamps to last", 1.0, 10},
		{"negative clamps to first", -0.5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percentile(sorted, tt.p))
		})
	}

	assert.Equal(t, 0.0, Percentile(nil, 0.5), "empty slice yields zero")
}

func TestNormalQuantile(t *testing.T) {
	assert.InDelta(t, 1.6449, NormalQuantile(0.95), 1e-4)
	assert.InDelta(t, 0.0, NormalQuantile(0.5), 1e-12)
}

func TestParametricVaR(t *testing.T) {
	got := ParametricVaR(0.25, 1.645, 252)
	assert.InDelta(t, -(1.645 * 0.25 / math.Sqrt(252)), got, 1e-12)
	assert.Less(t, got, 0.0)

	assert.Equal(t, 0.0, ParametricVaR(0.25, 1.645, 0), "no periods means no risk estimate")
}

func TestCompoundGrowth(t *testing.T) {
	assert.InDelta(t, 1000.0, CompoundGrowth(1000, 0.1, 0), 1e-9)
	assert.InDelta(t, 1210.0, CompoundGrowth(1000, 0.1, 2), 1e-9)
	assert.InDelta(t, 1000.0, CompoundGrowth(1000, 0, 10), 1e-9)
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(1.5))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(1)))
	assert.False(t, IsFinite(math.Inf(-1)))
}
