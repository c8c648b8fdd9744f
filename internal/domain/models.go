// Package domain provides the asset records and engine results shared by
// every module.
package domain

import "strings"

// AssetClass represents the kind of instrument an asset record describes
type AssetClass string

const (
	AssetClassEquity         AssetClass = "EQUITY"
	AssetClassRealEstateFund AssetClass = "REAL_ESTATE_FUND"
	AssetClassCrypto         AssetClass = "CRYPTO"
	AssetClassFixedIncome    AssetClass = "FIXED_INCOME"
	AssetClassTreasury       AssetClass = "TREASURY"
	AssetClassPension        AssetClass = "PENSION"
	AssetClassOffshore       AssetClass = "OFFSHORE"
)

// assetClassAliases maps the labels used by the dashboard onto asset classes.
var assetClassAliases = map[string]AssetClass{
	"EQUITY":           AssetClassEquity,
	"STOCK":            AssetClassEquity,
	"AÇÃO":             AssetClassEquity,
	"ACAO":             AssetClassEquity,
	"REAL_ESTATE_FUND": AssetClassRealEstateFund,
	"REALESTATEFUND":   AssetClassRealEstateFund,
	"FII":              AssetClassRealEstateFund,
	"CRYPTO":           AssetClassCrypto,
	"CRIPTO":           AssetClassCrypto,
	"FIXED_INCOME":     AssetClassFixedIncome,
	"FIXEDINCOME":      AssetClassFixedIncome,
	"RENDA FIXA":       AssetClassFixedIncome,
	"TREASURY":         AssetClassTreasury,
	"TESOURO":          AssetClassTreasury,
	"PENSION":          AssetClassPension,
	"PREVIDÊNCIA":      AssetClassPension,
	"PREVIDENCIA":      AssetClassPension,
	"OFFSHORE":         AssetClassOffshore,
}

// ParseAssetClass resolves a canonical or dashboard label.
func ParseAssetClass(s string) (AssetClass, bool) {
	class, ok := assetClassAliases[strings.ToUpper(strings.TrimSpace(s))]
	return class, ok
}

// IsFixedIncome reports whether the class is routed around the equity pipeline.
func (c AssetClass) IsFixedIncome() bool {
	return c == AssetClassFixedIncome || c == AssetClassTreasury
}

// Indexer is the rate regime of a fixed-income position
type Indexer string

const (
	// IndexerCDI pays a percentage of the CDI benchmark (post-fixed)
	IndexerCDI Indexer = "CDI"
	// IndexerIPCA pays a spread over IPCA inflation
	IndexerIPCA Indexer = "IPCA"
	// IndexerPrefixed pays a fixed annual rate
	IndexerPrefixed Indexer = "PRE"
)

var indexerAliases = map[string]Indexer{
	"CDI":            IndexerCDI,
	"POSTFIXED_CDI":  IndexerCDI,
	"POSTFIXED-CDI":  IndexerCDI,
	"IPCA":           IndexerIPCA,
	"INFLATION_IPCA": IndexerIPCA,
	"INFLATION-IPCA": IndexerIPCA,
	"PRE":            IndexerPrefixed,
	"PREFIXED":       IndexerPrefixed,
}

// ParseIndexer resolves an indexer label.
func ParseIndexer(s string) (Indexer, bool) {
	idx, ok := indexerAliases[strings.ToUpper(strings.TrimSpace(s))]
	return idx, ok
}

// AssetRecord is the engine input. Optional fundamentals are nil when absent.
type AssetRecord struct {
	Ticker       string     `json:"ticker"`
	Name         string     `json:"name,omitempty"`
	AssetClass   AssetClass `json:"asset_class"`
	CurrentPrice float64    `json:"current_price"`
	AveragePrice float64    `json:"average_price"`
	Quantity     float64    `json:"quantity"`

	EarningsPerShare  *float64 `json:"earnings_per_share,omitempty"`
	BookValuePerShare *float64 `json:"book_value_per_share,omitempty"`
	DividendYield     *float64 `json:"dividend_yield,omitempty"`
	PriceToEarnings   *float64 `json:"price_to_earnings,omitempty"`
	PriceToBook       *float64 `json:"price_to_book,omitempty"`
	PayoutRatio       *float64 `json:"payout_ratio,omitempty"`
	ReturnOnEquity    *float64 `json:"return_on_equity,omitempty"`
	DebtToEbitda      *float64 `json:"debt_to_ebitda,omitempty"`
	MarketCap         *float64 `json:"market_cap,omitempty"`

	Volatility *float64 `json:"volatility,omitempty"`
	Beta       *float64 `json:"beta,omitempty"`

	Indexer      Indexer  `json:"indexer,omitempty"`
	ContractRate *float64 `json:"contract_rate,omitempty"`
}

// Clone returns a deep copy so callers can never alias the input's pointers.
func (a AssetRecord) Clone() AssetRecord {
	c := a
	c.EarningsPerShare = clonePtr(a.EarningsPerShare)
	c.BookValuePerShare = clonePtr(a.BookValuePerShare)
	c.DividendYield = clonePtr(a.DividendYield)
	c.PriceToEarnings = clonePtr(a.PriceToEarnings)
	c.PriceToBook = clonePtr(a.PriceToBook)
	c.PayoutRatio = clonePtr(a.PayoutRatio)
	c.ReturnOnEquity = clonePtr(a.ReturnOnEquity)
	c.DebtToEbitda = clonePtr(a.DebtToEbitda)
	c.MarketCap = clonePtr(a.MarketCap)
	c.Volatility = clonePtr(a.Volatility)
	c.Beta = clonePtr(a.Beta)
	c.ContractRate = clonePtr(a.ContractRate)
	return c
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Float returns a pointer to v. Used to build optional fields.
func Float(v float64) *float64 {
	return &v
}

// ValueOr dereferences p, returning fallback when p is nil.
func ValueOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

// NormalizeDividendYield converts a percentage (> 1) to a fraction of one.
// Values already at or below 1 are returned unchanged, so the function is
// idempotent.
func NormalizeDividendYield(x float64) float64 {
	if x > 1 {
		return x / 100
	}
	return x
}
