// Package portfolio aggregates positions into wallet totals.
package portfolio

import (
	"sort"

	"github.com/vantez/engine/internal/domain"
	"github.com/vantez/engine/internal/utils"
	"github.com/vantez/engine/pkg/formulas"
)

// Allocation is the share of the portfolio held in one asset class
type Allocation struct {
	AssetClass domain.AssetClass `json:"asset_class" msgpack:"asset_class"`
	Value      float64           `json:"value" msgpack:"value"`
	Weight     float64           `json:"weight" msgpack:"weight"` // percent of total equity
	Positions  int               `json:"positions" msgpack:"positions"`
}

// Summary holds the wallet totals
type Summary struct {
	TotalEquity      float64      `json:"total_equity" msgpack:"total_equity"`
	TotalInvested    float64      `json:"total_invested" msgpack:"total_invested"`
	ProfitLoss       float64      `json:"profit_loss" msgpack:"profit_loss"`
	ProfitLossPct    float64      `json:"profit_loss_pct" msgpack:"profit_loss_pct"`
	Positions        int          `json:"positions" msgpack:"positions"`
	Allocation       []Allocation `json:"allocation" msgpack:"allocation"`
	TotalEquityLabel string       `json:"total_equity_label" msgpack:"total_equity_label"`
	ProfitLossLabel  string       `json:"profit_loss_label" msgpack:"profit_loss_label"`
}

// MarketValue is quantity times current price. Positions without a quote,
// such as fixed income held at principal, are valued at the average price.
func MarketValue(p domain.AssetRecord) float64 {
	price := p.CurrentPrice
	if price <= 0 {
		price = p.AveragePrice
	}
	return finiteOrZero(p.Quantity * price)
}

// CostBasis is quantity times average price, falling back to the current
// price when no average was recorded.
func CostBasis(p domain.AssetRecord) float64 {
	price := p.AveragePrice
	if price <= 0 {
		price = p.CurrentPrice
	}
	return finiteOrZero(p.Quantity * price)
}

// Summarize totals positions and breaks equity down by asset class.
// Allocation is ordered by value, largest first.
func Summarize(positions []domain.AssetRecord) Summary {
	s := Summary{Allocation: []Allocation{}}
	byClass := make(map[domain.AssetClass]*Allocation)

	for _, p := range positions {
		value := MarketValue(p)
		s.TotalEquity += value
		s.TotalInvested += CostBasis(p)
		s.Positions++

		a, ok := byClass[p.AssetClass]
		if !ok {
			a = &Allocation{AssetClass: p.AssetClass}
			byClass[p.AssetClass] = a
		}
		a.Value += value
		a.Positions++
	}

	s.ProfitLoss = s.TotalEquity - s.TotalInvested
	if s.TotalInvested > 0 {
		s.ProfitLossPct = s.ProfitLoss / s.TotalInvested * 100
	}

	for _, a := range byClass {
		if s.TotalEquity > 0 {
			a.Weight = a.Value / s.TotalEquity * 100
		}
		s.Allocation = append(s.Allocation, *a)
	}
	sort.Slice(s.Allocation, func(i, j int) bool {
		if s.Allocation[i].Value != s.Allocation[j].Value {
			return s.Allocation[i].Value > s.Allocation[j].Value
		}
		return s.Allocation[i].AssetClass < s.Allocation[j].AssetClass
	})

	s.TotalEquityLabel = utils.FormatCurrency(s.TotalEquity)
	s.ProfitLossLabel = utils.FormatCurrency(s.ProfitLoss)
	return s
}

func finiteOrZero(x float64) float64 {
	if !formulas.IsFinite(x) {
		return 0
	}
	return x
}
