package domain

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/vantez/engine/internal/utils"
)

// Number is a tolerant numeric decoded from JSON numbers, numeric strings
// ("14.5%", "R$ 41,60") or null. Decoding never fails: unreadable input is
// simply not Valid.
type Number struct {
	Value float64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler
func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{}

	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil
	}

	n.Value, n.Valid = utils.ParseNumber(raw)
	return nil
}

// MarshalJSON implements json.Marshaler
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Ptr returns nil for an absent number.
func (n Number) Ptr() *float64 {
	if !n.Valid {
		return nil
	}
	return Float(n.Value)
}

// Or returns the value, or fallback when absent.
func (n Number) Or(fallback float64) float64 {
	if !n.Valid {
		return fallback
	}
	return n.Value
}

// N builds a valid Number.
func N(v float64) Number {
	return Number{Value: v, Valid: true}
}

// AssetInput is the loose shape accepted at the API boundary. Every numeric
// field goes through the tolerant parser, and the short field names stored by
// the dashboard (lpa, vpa, dy, pl, pvp, …) are accepted when the canonical
// name is missing.
type AssetInput struct {
	Ticker       string `json:"ticker" validate:"required"`
	Name         string `json:"name"`
	AssetClass   string `json:"asset_class"`
	Type         string `json:"type"`
	CurrentPrice Number `json:"current_price"`
	AveragePrice Number `json:"average_price"`
	Quantity     Number `json:"quantity"`

	EarningsPerShare  Number `json:"earnings_per_share"`
	BookValuePerShare Number `json:"book_value_per_share"`
	DividendYield     Number `json:"dividend_yield"`
	PriceToEarnings   Number `json:"price_to_earnings"`
	PriceToBook       Number `json:"price_to_book"`
	PayoutRatio       Number `json:"payout_ratio"`
	ReturnOnEquity    Number `json:"return_on_equity"`
	DebtToEbitda      Number `json:"debt_to_ebitda"`
	MarketCap         Number `json:"market_cap"`
	Volatility        Number `json:"volatility"`
	Beta              Number `json:"beta"`

	Indexer      string `json:"indexer"`
	ContractRate Number `json:"contract_rate"`

	LPA          Number `json:"lpa"`
	VPA          Number `json:"vpa"`
	DY           Number `json:"dy"`
	PL           Number `json:"pl"`
	PVP          Number `json:"pvp"`
	Payout       Number `json:"payout"`
	ROE          Number `json:"roe"`
	DividaEbitda Number `json:"dividaEbitda"`
	Vol          Number `json:"vol"`
	Taxa         Number `json:"taxa"`
	Indexador    string `json:"indexador"`
}

// ToRecord converts the loose input into a definite AssetRecord.
func (in AssetInput) ToRecord() AssetRecord {
	record := AssetRecord{
		Ticker:       strings.ToUpper(strings.TrimSpace(in.Ticker)),
		Name:         strings.TrimSpace(in.Name),
		AssetClass:   resolveAssetClass(in.AssetClass, in.Type),
		CurrentPrice: in.CurrentPrice.Or(0),
		AveragePrice: in.AveragePrice.Or(0),
		Quantity:     in.Quantity.Or(0),

		EarningsPerShare:  first(in.EarningsPerShare, in.LPA),
		BookValuePerShare: first(in.BookValuePerShare, in.VPA),
		DividendYield:     first(in.DividendYield, in.DY),
		PriceToEarnings:   first(in.PriceToEarnings, in.PL),
		PriceToBook:       first(in.PriceToBook, in.PVP),
		PayoutRatio:       first(in.PayoutRatio, in.Payout),
		ReturnOnEquity:    first(in.ReturnOnEquity, in.ROE),
		DebtToEbitda:      first(in.DebtToEbitda, in.DividaEbitda),
		MarketCap:         in.MarketCap.Ptr(),
		Volatility:        first(in.Volatility, in.Vol),
		Beta:              in.Beta.Ptr(),
		ContractRate:      first(in.ContractRate, in.Taxa),
	}

	indexer := in.Indexer
	if indexer == "" {
		indexer = in.Indexador
	}
	if idx, ok := ParseIndexer(indexer); ok {
		record.Indexer = idx
	}

	return record
}

func first(primary, legacy Number) *float64 {
	if primary.Valid {
		return primary.Ptr()
	}
	return legacy.Ptr()
}

func resolveAssetClass(values ...string) AssetClass {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if class, ok := ParseAssetClass(v); ok {
			return class
		}
		return AssetClass(strings.ToUpper(strings.TrimSpace(v)))
	}
	return AssetClassEquity
}
