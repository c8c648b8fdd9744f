// Package fixedincome projects the future value of fixed-income positions.
package fixedincome

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vantez/engine/internal/domain"
	"github.com/vantez/engine/pkg/formulas"
)

// DefaultBenchmarkRate is the annual benchmark (Selic/CDI) in percent used
// when no usable rate is available
const DefaultBenchmarkRate = 11.25

var (
	// ErrNotFixedIncome is returned when an equity-pipeline asset is projected
	ErrNotFixedIncome = errors.New("asset is not a fixed-income position")
	// ErrUndefinedProjection is returned when the projection overflows
	ErrUndefinedProjection = errors.New("projection is undefined for the given inputs")
)

// BenchmarkRateProvider supplies the current benchmark rate in percent.
// Implementations absorb their own failures and always return a usable rate.
type BenchmarkRateProvider interface {
	CurrentRate(ctx context.Context) float64
}

// StaticRate is a BenchmarkRateProvider returning a fixed rate
type StaticRate float64

// CurrentRate implements BenchmarkRateProvider
func (s StaticRate) CurrentRate(context.Context) float64 {
	return float64(s)
}

// YearValue is one point of a year-by-year projection
type YearValue struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Projector compounds fixed-income positions under a macro regime
type Projector struct {
	macro domain.MacroAssumptions
	log   zerolog.Logger
}

// NewProjector creates a projector bound to the given macro assumptions
func NewProjector(macro domain.MacroAssumptions, log zerolog.Logger) *Projector {
	return &Projector{
		macro: macro,
		log:   log.With().Str("service", "fixed_income_projector").Logger(),
	}
}

// Macro returns the assumptions the projector was built with
func (p *Projector) Macro() domain.MacroAssumptions {
	return p.macro
}

// Project returns the value of position after years of compounding at the
// rate implied by its indexer. benchmarkRate is the annual benchmark in
// percent; non-positive or non-finite values fall back to DefaultBenchmarkRate.
func (p *Projector) Project(position domain.AssetRecord, years float64, benchmarkRate float64) (float64, error) {
	if !position.AssetClass.IsFixedIncome() {
		return 0, fmt.Errorf("project %s: %w", position.Ticker, ErrNotFixedIncome)
	}

	principal := Principal(position)
	if years <= 0 || !formulas.IsFinite(years) {
		return principal, nil
	}

	rate := p.AnnualRate(position, benchmarkRate)
	value := formulas.CompoundGrowth(principal, rate, years)
	if !formulas.IsFinite(value) {
		return 0, fmt.Errorf("project %s over %.2f years: %w", position.Ticker, years, ErrUndefinedProjection)
	}

	p.log.Debug().
		Str("ticker", position.Ticker).
		Str("indexer", string(position.Indexer)).
		Float64("rate", rate).
		Float64("years", years).
		Float64("value", value).
		Msg("Projected position")

	return value, nil
}

// ProjectSchedule returns the projected value at the end of every whole year
// from 0 through years.
func (p *Projector) ProjectSchedule(position domain.AssetRecord, years int, benchmarkRate float64) ([]YearValue, error) {
	if years < 0 {
		years = 0
	}

	schedule := make([]YearValue, 0, years+1)
	for y := 0; y <= years; y++ {
		value, err := p.Project(position, float64(y), benchmarkRate)
		if err != nil {
			return nil, err
		}
		schedule = append(schedule, YearValue{Year: y, Value: value})
	}
	return schedule, nil
}

// AnnualRate resolves the position's annual rate as a fraction.
// An unknown indexer yields 0 so the principal is carried unchanged.
func (p *Projector) AnnualRate(position domain.AssetRecord, benchmarkRate float64) float64 {
	contract := domain.ValueOr(position.ContractRate, 0)
	if !formulas.IsFinite(contract) {
		contract = 0
	}

	switch position.Indexer {
	case domain.IndexerPrefixed:
		return contract / 100
	case domain.IndexerCDI:
		return (contract / 100) * (EffectiveBenchmark(benchmarkRate) / 100)
	case domain.IndexerIPCA:
		return contract/100 + p.macro.ExpectedInflation
	default:
		return 0
	}
}

// Principal is the amount invested in the position
func Principal(position domain.AssetRecord) float64 {
	return position.AveragePrice * position.Quantity
}

// EffectiveBenchmark applies the fallback to an unusable benchmark rate
func EffectiveBenchmark(rate float64) float64 {
	if rate <= 0 || !formulas.IsFinite(rate) {
		return DefaultBenchmarkRate
	}
	return rate
}
