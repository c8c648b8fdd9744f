// Package engine composes valuation, risk and tag classification into a
// single analysis of an asset record.
package engine

import (
	"github.com/rs/zerolog"

	"github.com/vantez/engine/internal/domain"
	"github.com/vantez/engine/internal/modules/risk"
	"github.com/vantez/engine/internal/modules/tags"
	"github.com/vantez/engine/internal/modules/valuation"
	"github.com/vantez/engine/internal/workers"
)

var defaultClassifier = tags.NewClassifier(nil, zerolog.Nop())

// Analyze enriches asset with valuation, risk metrics and tags under macro.
// Fixed-income assets are returned as an unchanged copy. The input is never
// mutated.
func Analyze(asset domain.AssetRecord, macro domain.MacroAssumptions) domain.EnrichedAsset {
	return analyze(asset, macro, defaultClassifier)
}

func analyze(asset domain.AssetRecord, macro domain.MacroAssumptions, classifier *tags.Classifier) domain.EnrichedAsset {
	enriched := domain.EnrichedAsset{AssetRecord: asset.Clone()}
	if asset.AssetClass.IsFixedIncome() {
		return enriched
	}

	v := valuation.ComputeValuation(enriched.AssetRecord, macro)
	r := risk.ComputeRisk(enriched.AssetRecord, macro)

	enriched.Valuation = &v
	enriched.RiskMetrics = &r
	enriched.Tags = classifier.Classify(enriched.AssetRecord, v)
	return enriched
}

// Service analyzes assets under a fixed macro regime
type Service struct {
	macro      domain.MacroAssumptions
	classifier *tags.Classifier
	pool       *workers.Pool
	log        zerolog.Logger
}

// NewService creates an engine service. A nil classifier uses the default
// state-owned prefixes.
func NewService(macro domain.MacroAssumptions, classifier *tags.Classifier, pool *workers.Pool, log zerolog.Logger) *Service {
	if classifier == nil {
		classifier = defaultClassifier
	}
	if pool == nil {
		pool = workers.NewPool(0)
	}
	return &Service{
		macro:      macro,
		classifier: classifier,
		pool:       pool,
		log:        log.With().Str("service", "engine").Logger(),
	}
}

// Macro returns the assumptions every analysis runs under
func (s *Service) Macro() domain.MacroAssumptions {
	return s.macro
}

// Analyze enriches a single asset
func (s *Service) Analyze(asset domain.AssetRecord) domain.EnrichedAsset {
	enriched := analyze(asset, s.macro, s.classifier)

	event := s.log.Debug().
		Str("ticker", asset.Ticker).
		Str("asset_class", string(asset.AssetClass))
	if enriched.Valuation != nil {
		event = event.Str("status", string(enriched.Valuation.Status))
	}
	event.Msg("Analyzed asset")

	return enriched
}

// AnalyzeBatch enriches assets in parallel, preserving input order
func (s *Service) AnalyzeBatch(assets []domain.AssetRecord) []domain.EnrichedAsset {
	results := workers.Map(s.pool, assets, func(_ int, a domain.AssetRecord) domain.EnrichedAsset {
		return analyze(a, s.macro, s.classifier)
	})

	s.log.Info().
		Int("assets", len(assets)).
		Int("workers", s.pool.Size()).
		Msg("Analyzed batch")

	return results
}
