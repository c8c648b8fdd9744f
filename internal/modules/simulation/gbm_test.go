package simulation

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(p Params, seed uint64) Params {
	p.Seed = &seed
	return p
}

func TestSimulateGBM_Shape(t *testing.T) {
	bands := SimulateGBM(seeded(DefaultParams(41.60, 0.35), 7))

	require.Len(t, bands, 31)
	for i, b := range bands {
		assert.Equal(t, i, b.Step)
	}
	assert.Equal(t, "D+0", bands[0].Label)
	assert.Equal(t, "D+30", bands[30].Label)

	first := bands[0]
	assert.Equal(t, 41.60, first.P10)
	assert.Equal(t, 41.60, first.P50)
	assert.Equal(t, 41.60, first.P90)
	assert.InDelta(t, 41.60, first.Mean, 1e-9)
}

func TestSimulateGBM_PositiveAndOrdered(t *testing.T) {
	params := Params{
		InitialPrice:    100,
		Drift:           0.08,
		Volatility:      0.9,
		HorizonYears:    2,
		Steps:           50,
		SimulationCount: 800,
	}

	for _, b := range SimulateGBM(seeded(params, 42)) {
		assert.Greater(t, b.P10, 0.0, "step %d", b.Step)
		assert.LessOrEqual(t, b.P10, b.P50, "step %d", b.Step)
		assert.LessOrEqual(t, b.P50, b.P90, "step %d", b.Step)
		assert.False(t, math.IsNaN(b.Mean))
	}
}

func TestSimulateGBM_SeededDeterminismAcrossWorkers(t *testing.T) {
	base := Params{
		InitialPrice:    20,
		Drift:           0.1,
		Volatility:      0.4,
		HorizonYears:    1,
		SimulationCount: 777,
		Steps:           12,
	}

	reference := SimulateGBM(seeded(withWorkers(base, 1), 2024))
	for _, n := range []int{2, 5, 32} {
		assert.Equal(t, reference, SimulateGBM(seeded(withWorkers(base, n), 2024)), "workers=%d", n)
	}

	other := SimulateGBM(seeded(base, 2025))
	assert.NotEqual(t, reference[12], other[12])
}

func withWorkers(p Params, n int) Params {
	p.Workers = n
	return p
}

func TestSimulateGBM_ZeroVolatilityIsDeterministicDrift(t *testing.T) {
	params := Params{InitialPrice: 10, Drift: 0.1, HorizonYears: 1, Steps: 4, SimulationCount: 10}

	bands := SimulateGBM(params)

	last := bands[len(bands)-1]
	want := 10 * math.Exp(0.1)
	assert.InDelta(t, want, last.P10, 1e-9)
	assert.InDelta(t, want, last.P90, 1e-9)
}

func TestSimulateGBM_Defaults(t *testing.T) {
	bands := SimulateGBM(Params{InitialPrice: 5, Volatility: 0.2, HorizonYears: 0.5})

	assert.Len(t, bands, 2, "steps below one become one step")
}

func TestSimulateGBM_DegenerateInputs(t *testing.T) {
	params := Params{
		InitialPrice: math.NaN(),
		Drift:        math.Inf(1),
		Volatility:   -1,
		HorizonYears: -3,
		Steps:        3,
	}

	for _, b := range SimulateGBM(params) {
		assert.Equal(t, 0.0, b.P50)
		assert.Equal(t, 0.0, b.Mean)
	}
}

func TestSimulateGBM_MedianTracksDrift(t *testing.T) {
	params := seeded(Params{
		InitialPrice:    100,
		Drift:           0.2,
		Volatility:      0.2,
		HorizonYears:    1,
		Steps:           10,
		SimulationCount: 5000,
	}, 99)

	last := SimulateGBM(params)[10]

	// log-normal median is S0*exp(mu - sigma^2/2)
	assert.InEpsilon(t, 100*math.Exp(0.2-0.02), last.P50, 0.03)
}

func TestScenarios(t *testing.T) {
	assert.Equal(t, 0.3, ScenarioNormal.Apply(0.3))
	assert.InDelta(t, 0.75, ScenarioCrisis.Apply(0.3), 1e-12)
	assert.InDelta(t, 1.2, ScenarioPandemic.Apply(0.3), 1e-12)
	assert.Equal(t, 1.0, Scenario("UNKNOWN").Multiplier())

	sc, ok := ParseScenario(" crise ")
	assert.True(t, ok)
	assert.Equal(t, ScenarioCrisis, sc)

	sc, ok = ParseScenario("")
	assert.True(t, ok)
	assert.Equal(t, ScenarioNormal, sc)

	_, ok = ParseScenario("meteor")
	assert.False(t, ok)

	assert.Len(t, Scenarios(), 3)
}

func TestSimulateGBMContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bands, err := SimulateGBMContext(ctx, DefaultParams(10, 0.3))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, bands)
}

func TestSimulateGBMContext_MatchesSimulateGBM(t *testing.T) {
	params := seeded(DefaultParams(10, 0.3), 5)

	bands, err := SimulateGBMContext(context.Background(), params)

	require.NoError(t, err)
	assert.Equal(t, SimulateGBM(params), bands)
}

func TestParams_Cells(t *testing.T) {
	assert.Equal(t, 500*31, DefaultParams(10, 0.3).Cells())
	assert.Equal(t, DefaultSimulationCount*2, Params{}.Cells())
}
