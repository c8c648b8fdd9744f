// Package simulation runs Monte Carlo geometric Brownian motion ensembles and
// summarizes them into percentile bands.
package simulation

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/vantez/engine/internal/domain"
	"github.com/vantez/engine/internal/workers"
	"github.com/vantez/engine/pkg/formulas"
)

const (
	// DefaultSimulationCount is the number of paths when none is requested
	DefaultSimulationCount = 500
	// pathsPerChunk is the unit of work handed to a worker. Each chunk owns its
	// random source, so the output does not depend on the worker count.
	pathsPerChunk = 64
	// MaxSimulationCells bounds SimulationCount × (Steps+1), the number of
	// prices held in memory by one run.
	MaxSimulationCells = 5_000_000
)

// Band percentiles
const (
	LowerPercentile  = 0.10
	MedianPercentile = 0.50
	UpperPercentile  = 0.90
)

// Params are the inputs of a GBM run
type Params struct {
	InitialPrice    float64
	Drift           float64 // annual
	Volatility      float64 // annual
	HorizonYears    float64
	Steps           int
	SimulationCount int
	// Seed makes the run reproducible. Nil draws a fresh seed.
	Seed *uint64
	// Workers bounds the goroutines used. Non-positive means one per CPU.
	Workers int
}

// DefaultParams is the 30-day, 30-step preset with a 12% annual drift
func DefaultParams(initialPrice, volatility float64) Params {
	return Params{
		InitialPrice:    initialPrice,
		Drift:           0.12,
		Volatility:      volatility,
		HorizonYears:    30.0 / 365.0,
		Steps:           30,
		SimulationCount: DefaultSimulationCount,
	}
}

func (p Params) normalized() Params {
	if p.SimulationCount <= 0 {
		p.SimulationCount = DefaultSimulationCount
	}
	if p.Steps < 1 {
		p.Steps = 1
	}
	if !formulas.IsFinite(p.InitialPrice) || p.InitialPrice < 0 {
		p.InitialPrice = 0
	}
	if !formulas.IsFinite(p.Drift) {
		p.Drift = 0
	}
	if !formulas.IsFinite(p.Volatility) || p.Volatility < 0 {
		p.Volatility = 0
	}
	if !formulas.IsFinite(p.HorizonYears) || p.HorizonYears < 0 {
		p.HorizonYears = 0
	}
	return p
}

// Cells is the size of the path matrix the run materializes
func (p Params) Cells() int {
	p = p.normalized()
	return p.SimulationCount * (p.Steps + 1)
}

type chunk struct {
	size int
}

// SimulateGBM simulates SimulationCount price paths and returns Steps+1
// bands, one per time index including the starting price.
func SimulateGBM(params Params) []domain.SimulationBand {
	bands, _ := SimulateGBMContext(context.Background(), params)
	return bands
}

// SimulateGBMContext is SimulateGBM that stops between chunks once ctx is
// done and returns its error.
func SimulateGBMContext(ctx context.Context, params Params) ([]domain.SimulationBand, error) {
	params = params.normalized()

	seed := rand.Uint64()
	if params.Seed != nil {
		seed = *params.Seed
	}

	pool := workers.NewPool(params.Workers)

	dt := params.HorizonYears / float64(params.Steps)
	drift := (params.Drift - 0.5*params.Volatility*params.Volatility) * dt
	diffusion := params.Volatility * math.Sqrt(dt)

	chunks := make([]chunk, 0, params.SimulationCount/pathsPerChunk+1)
	for remaining := params.SimulationCount; remaining > 0; remaining -= pathsPerChunk {
		chunks = append(chunks, chunk{size: min(remaining, pathsPerChunk)})
	}

	perChunk := workers.Map(pool, chunks, func(idx int, c chunk) [][]float64 {
		if ctx.Err() != nil {
			return nil
		}
		rng := rand.New(rand.NewPCG(seed, uint64(idx)))
		paths := make([][]float64, c.size)
		for i := range paths {
			paths[i] = simulatePath(rng, params.InitialPrice, params.Steps, drift, diffusion)
		}
		return paths
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	paths := make([][]float64, 0, params.SimulationCount)
	for _, c := range perChunk {
		paths = append(paths, c...)
	}

	stepIndexes := make([]int, params.Steps+1)
	for i := range stepIndexes {
		stepIndexes[i] = i
	}

	bands := workers.Map(pool, stepIndexes, func(_ int, step int) domain.SimulationBand {
		return summarizeStep(paths, step)
	})
	return bands, nil
}

func simulatePath(rng *rand.Rand, initial float64, steps int, drift, diffusion float64) []float64 {
	path := make([]float64, steps+1)
	path[0] = initial
	price := initial
	for t := 1; t <= steps; t++ {
		price *= math.Exp(drift + diffusion*standardNormal(rng))
		switch {
		case math.IsInf(price, 1):
			price = math.MaxFloat64
		case price <= 0 && initial > 0:
			// exp underflow; prices stay strictly positive
			price = math.SmallestNonzeroFloat64
		}
		path[t] = price
	}
	return path
}

// standardNormal draws Z ~ N(0,1) with the Box-Muller transform
func standardNormal(rng *rand.Rand) float64 {
	// 1 - [0,1) keeps u1 in (0,1] so log(u1) is finite
	u1 := 1 - rng.Float64()
	u2 := rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

func summarizeStep(paths [][]float64, step int) domain.SimulationBand {
	column := make([]float64, len(paths))
	for i, path := range paths {
		column[i] = path[step]
	}
	slices.Sort(column)

	mean := formulas.Mean(column)
	if !formulas.IsFinite(mean) {
		mean = column[len(column)/2]
	}

	return domain.SimulationBand{
		Step:  step,
		Label: fmt.Sprintf("D+%d", step),
		P10:   formulas.Percentile(column, LowerPercentile),
		P50:   formulas.Percentile(column, MedianPercentile),
		P90:   formulas.Percentile(column, UpperPercentile),
		Mean:  mean,
	}
}
