package testing

import (
	"github.com/vantez/engine/internal/domain"
)

// NewEquityFixture returns the reference dividend-paying state-owned equity:
// Graham price ≈ 48.37, status Fair, tagged DividendLeader and StateOwnedRisk.
func NewEquityFixture() domain.AssetRecord {
	return domain.AssetRecord{
		Ticker:            "PETR4",
		Name:              "Petrobras PN",
		AssetClass:        domain.AssetClassEquity,
		CurrentPrice:      41.60,
		AveragePrice:      35.00,
		Quantity:          100,
		EarningsPerShare:  domain.Float(5.2),
		BookValuePerShare: domain.Float(20),
		DividendYield:     domain.Float(10),
		PayoutRatio:       domain.Float(60),
		PriceToEarnings:   domain.Float(8),
		PriceToBook:       domain.Float(2.08),
	}
}

// NewAssetFixtures returns a mixed wallet covering every pipeline branch
func NewAssetFixtures() []domain.AssetRecord {
	return []domain.AssetRecord{
		NewEquityFixture(),
		{
			Ticker:            "WEGE3",
			AssetClass:        domain.AssetClassEquity,
			CurrentPrice:      52,
			AveragePrice:      40,
			Quantity:          50,
			EarningsPerShare:  domain.Float(1.6),
			BookValuePerShare: domain.Float(6.5),
			ReturnOnEquity:    domain.Float(28),
			DebtToEbitda:      domain.Float(0.3),
			Volatility:        domain.Float(0.22),
			Beta:              domain.Float(0.8),
		},
		{
			Ticker:       "HGLG11",
			AssetClass:   domain.AssetClassRealEstateFund,
			CurrentPrice: 160,
			AveragePrice: 150,
			Quantity:     10,
		},
		{
			Ticker:       "BTC",
			AssetClass:   domain.AssetClassCrypto,
			CurrentPrice: 350000,
			AveragePrice: 200000,
			Quantity:     0.01,
			Volatility:   domain.Float(0.7),
		},
		NewFixedIncomeFixture(),
	}
}

// NewFixedIncomeFixture returns a 110% CDI bank deposit of 1000
func NewFixedIncomeFixture() domain.AssetRecord {
	return domain.AssetRecord{
		Ticker:       "CDB-XP",
		AssetClass:   domain.AssetClassFixedIncome,
		AveragePrice: 1000,
		Quantity:     1,
		Indexer:      domain.IndexerCDI,
		ContractRate: domain.Float(110),
	}
}
