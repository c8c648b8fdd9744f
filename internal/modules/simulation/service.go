package simulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vantez/engine/internal/domain"
)

// ErrSimulationTooLarge is returned for requests whose path matrix exceeds
// MaxSimulationCells.
var ErrSimulationTooLarge = errors.New("simulation too large")

// Request is a simulation request as received from clients.
// Zero values for Drift, HorizonYears and Steps take the 30-day preset.
type Request struct {
	InitialPrice    float64  `json:"initial_price" validate:"gt=0"`
	Drift           *float64 `json:"drift"`
	Volatility      float64  `json:"volatility" validate:"gte=0,lte=5"`
	HorizonYears    float64  `json:"horizon_years" validate:"gte=0,lte=50"`
	Steps           int      `json:"steps" validate:"gte=0,lte=3650"`
	SimulationCount int      `json:"simulation_count" validate:"gte=0,lte=100000"`
	Seed            *uint64  `json:"seed"`
	Scenario        string   `json:"scenario"`
}

// Run is the result of one simulation request
type Run struct {
	RunID      string                  `json:"run_id" msgpack:"run_id"`
	Scenario   Scenario                `json:"scenario" msgpack:"scenario"`
	Volatility float64                 `json:"volatility" msgpack:"volatility"`
	Paths      int                     `json:"paths" msgpack:"paths"`
	Steps      int                     `json:"steps" msgpack:"steps"`
	Bands      []domain.SimulationBand `json:"bands" msgpack:"bands"`
	ElapsedMS  int64                   `json:"elapsed_ms" msgpack:"elapsed_ms"`
}

// Simulator runs GBM requests on a bounded number of workers
type Simulator struct {
	workers int
	log     zerolog.Logger
}

// NewSimulator creates a simulator using at most workers goroutines per run
func NewSimulator(workers int, log zerolog.Logger) *Simulator {
	return &Simulator{
		workers: workers,
		log:     log.With().Str("service", "simulator").Logger(),
	}
}

// Params resolves a request into simulation parameters, applying the preset
// and the scenario's volatility multiplier.
func (s *Simulator) Params(req Request) (Params, Scenario, error) {
	scenario, ok := ParseScenario(req.Scenario)
	if !ok {
		return Params{}, "", fmt.Errorf("unknown scenario %q", req.Scenario)
	}

	params := DefaultParams(req.InitialPrice, scenario.Apply(req.Volatility))
	if req.Drift != nil {
		params.Drift = *req.Drift
	}
	if req.HorizonYears > 0 {
		params.HorizonYears = req.HorizonYears
	}
	if req.Steps > 0 {
		params.Steps = req.Steps
	}
	if req.SimulationCount > 0 {
		params.SimulationCount = req.SimulationCount
	}
	params.Seed = req.Seed
	params.Workers = s.workers

	if cells := params.Cells(); cells > MaxSimulationCells {
		return Params{}, "", fmt.Errorf("%w: simulation_count × (steps+1) = %d exceeds %d",
			ErrSimulationTooLarge, cells, MaxSimulationCells)
	}

	return params, scenario, nil
}

// Run executes the request and tags the result with a fresh run ID
func (s *Simulator) Run(ctx context.Context, req Request) (*Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params, scenario, err := s.Params(req)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	start := time.Now()

	bands, err := SimulateGBMContext(ctx, params)
	if err != nil {
		s.log.Warn().Err(err).Str("run_id", runID).Msg("Simulation aborted")
		return nil, err
	}

	elapsed := time.Since(start)
	s.log.Info().
		Str("run_id", runID).
		Str("scenario", string(scenario)).
		Int("paths", params.SimulationCount).
		Int("steps", params.Steps).
		Dur("elapsed", elapsed).
		Msg("Simulation completed")

	return &Run{
		RunID:      runID,
		Scenario:   scenario,
		Volatility: params.Volatility,
		Paths:      params.SimulationCount,
		Steps:      params.Steps,
		Bands:      bands,
		ElapsedMS:  elapsed.Milliseconds(),
	}, nil
}

// Stream runs the request and hands the bands to emit one at a time,
// stopping at the first emit error or when ctx is done.
func (s *Simulator) Stream(ctx context.Context, req Request, emit func(domain.SimulationBand) error) (*Run, error) {
	run, err := s.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	for _, band := range run.Bands {
		if err := ctx.Err(); err != nil {
			return run, err
		}
		if err := emit(band); err != nil {
			return run, fmt.Errorf("emit band %d of run %s: %w", band.Step, run.RunID, err)
		}
	}
	return run, nil
}
