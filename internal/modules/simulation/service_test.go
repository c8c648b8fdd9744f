package simulation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantez/engine/internal/domain"
)

func newTestSimulator() *Simulator {
	return NewSimulator(2, zerolog.New(nil).Level(zerolog.Disabled))
}

func TestSimulator_ParamsAppliesPresetAndScenario(t *testing.T) {
	s := newTestSimulator()

	params, scenario, err := s.Params(Request{InitialPrice: 41.6, Volatility: 0.3, Scenario: "pandemia"})

	require.NoError(t, err)
	assert.Equal(t, ScenarioPandemic, scenario)
	assert.InDelta(t, 1.2, params.Volatility, 1e-12)
	assert.Equal(t, 0.12, params.Drift)
	assert.Equal(t, 30, params.Steps)
	assert.InDelta(t, 30.0/365.0, params.HorizonYears, 1e-12)
	assert.Equal(t, DefaultSimulationCount, params.SimulationCount)
	assert.Equal(t, 2, params.Workers)
}

func TestSimulator_ParamsOverrides(t *testing.T) {
	s := newTestSimulator()
	drift := 0.0
	seed := uint64(3)

	params, _, err := s.Params(Request{
		InitialPrice:    10,
		Drift:           &drift,
		HorizonYears:    1,
		Steps:           12,
		SimulationCount: 100,
		Seed:            &seed,
	})

	require.NoError(t, err)
	assert.Equal(t, 0.0, params.Drift)
	assert.Equal(t, 1.0, params.HorizonYears)
	assert.Equal(t, 12, params.Steps)
	assert.Equal(t, 100, params.SimulationCount)
	assert.Equal(t, &seed, params.Seed)
}

func TestSimulator_ParamsUnknownScenario(t *testing.T) {
	_, _, err := newTestSimulator().Params(Request{InitialPrice: 1, Scenario: "asteroid"})
	assert.Error(t, err)
}

func TestSimulator_ParamsBoundsPathMatrix(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"preset", Request{InitialPrice: 10}, false},
		{"at the limit", Request{InitialPrice: 10, Steps: 99, SimulationCount: 50000}, false},
		{"one path over", Request{InitialPrice: 10, Steps: 99, SimulationCount: 50001}, true},
		{"largest fields", Request{InitialPrice: 10, HorizonYears: 10, Steps: 3650, SimulationCount: 100000}, true},
		{"default count with long horizon", Request{InitialPrice: 10, Steps: 3650}, false},
	}

	s := newTestSimulator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := s.Params(tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrSimulationTooLarge)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSimulator_Run(t *testing.T) {
	seed := uint64(11)
	run, err := newTestSimulator().Run(context.Background(), Request{InitialPrice: 20, Volatility: 0.25, Seed: &seed})

	require.NoError(t, err)
	_, err = uuid.Parse(run.RunID)
	assert.NoError(t, err)
	assert.Equal(t, ScenarioNormal, run.Scenario)
	assert.Len(t, run.Bands, 31)
	assert.Equal(t, 500, run.Paths)
}

func TestSimulator_RunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestSimulator().Run(ctx, Request{InitialPrice: 20})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulator_Stream(t *testing.T) {
	var got []domain.SimulationBand
	run, err := newTestSimulator().Stream(context.Background(), Request{InitialPrice: 5, Steps: 5}, func(b domain.SimulationBand) error {
		got = append(got, b)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, run.Bands, got)

	boom := errors.New("closed")
	_, err = newTestSimulator().Stream(context.Background(), Request{InitialPrice: 5, Steps: 5}, func(domain.SimulationBand) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}
