// Package tags assigns factor labels to analyzed assets.
package tags

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/vantez/engine/internal/domain"
)

// Tag labels, in the order the rules are evaluated
const (
	TagDividendLeader = "DividendLeader"
	TagQuality        = "Quality"
	TagSmallCap       = "SmallCap"
	TagDeepValue      = "DeepValue"
	TagStateOwnedRisk = "StateOwnedRisk"
)

// Rule thresholds
const (
	DividendLeaderMinYieldPct   = 8.0
	DividendLeaderMaxPayoutPct  = 100.0
	QualityMinROEPct            = 18.0
	QualityMaxDebtToEbitda      = 2.0
	SmallCapMaxMarketCap        = 10_000_000_000.0
	DeepValueMaxPriceToEarnings = 6.0
	DeepValueMaxPriceToBook     = 0.8
)

// DefaultStateOwnedPrefixes are the ticker prefixes treated as state-controlled issuers
var DefaultStateOwnedPrefixes = []string{"P", "B"}

// Classifier evaluates the tag rules against an asset
type Classifier struct {
	log              zerolog.Logger
	stateOwnedPrefix []string
}

// NewClassifier creates a classifier. An empty prefix list falls back to
// DefaultStateOwnedPrefixes.
func NewClassifier(stateOwnedPrefixes []string, log zerolog.Logger) *Classifier {
	prefixes := make([]string, 0, len(stateOwnedPrefixes))
	for _, p := range stateOwnedPrefixes {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			prefixes = append(prefixes, p)
		}
	}
	if len(prefixes) == 0 {
		prefixes = append(prefixes, DefaultStateOwnedPrefixes...)
	}

	return &Classifier{
		log:              log.With().Str("service", "tag_classifier").Logger(),
		stateOwnedPrefix: prefixes,
	}
}

// Classify returns the tags for asset in rule order. Every rule adds at most
// one tag and rules are independent of each other.
func (c *Classifier) Classify(asset domain.AssetRecord, valuation domain.ValuationResult) []string {
	tags := make([]string, 0, 5)

	yieldPct := domain.NormalizeDividendYield(domain.ValueOr(asset.DividendYield, 0)) * 100
	payout := domain.ValueOr(asset.PayoutRatio, 0)
	if yieldPct > DividendLeaderMinYieldPct && payout < DividendLeaderMaxPayoutPct {
		tags = append(tags, TagDividendLeader)
	}

	roe := domain.ValueOr(asset.ReturnOnEquity, 0)
	debt := domain.ValueOr(asset.DebtToEbitda, 0)
	if roe > QualityMinROEPct && debt < QualityMaxDebtToEbitda {
		tags = append(tags, TagQuality)
	}

	// Unknown market cap counts as large cap
	if asset.MarketCap != nil && *asset.MarketCap > 0 && *asset.MarketCap < SmallCapMaxMarketCap {
		tags = append(tags, TagSmallCap)
	}

	// Absent multiples read as 0 and therefore count as cheap
	pe := domain.ValueOr(asset.PriceToEarnings, 0)
	pb := domain.ValueOr(asset.PriceToBook, 0)
	if pe < DeepValueMaxPriceToEarnings && pb < DeepValueMaxPriceToBook {
		tags = append(tags, TagDeepValue)
	}

	if c.isStateOwned(asset.Ticker) {
		tags = append(tags, TagStateOwnedRisk)
	}

	c.log.Debug().
		Str("ticker", asset.Ticker).
		Str("status", string(valuation.Status)).
		Strs("tags", tags).
		Msg("Classified asset")

	return tags
}

func (c *Classifier) isStateOwned(ticker string) bool {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	for _, prefix := range c.stateOwnedPrefix {
		if strings.HasPrefix(ticker, prefix) {
			return true
		}
	}
	return false
}
