package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssetClass(t *testing.T) {
	tests := []struct {
		input    string
		expected AssetClass
		ok       bool
	}{
		{"EQUITY", AssetClassEquity, true},
		{"Ação", AssetClassEquity, true},
		{"fii", AssetClassRealEstateFund, true},
		{"Cripto", AssetClassCrypto, true},
		{"Renda Fixa", AssetClassFixedIncome, true},
		{" Tesouro ", AssetClassTreasury, true},
		{"Previdência", AssetClassPension, true},
		{"offshore", AssetClassOffshore, true},
		{"COE", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			class, ok := ParseAssetClass(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, class)
		})
	}
}

func TestAssetClass_IsFixedIncome(t *testing.T) {
	assert.True(t, AssetClassFixedIncome.IsFixedIncome())
	assert.True(t, AssetClassTreasury.IsFixedIncome())

	for _, class := range []AssetClass{
		AssetClassEquity, AssetClassRealEstateFund, AssetClassCrypto,
		AssetClassPension, AssetClassOffshore,
	} {
		assert.False(t, class.IsFixedIncome(), string(class))
	}
}

func TestParseIndexer(t *testing.T) {
	idx, ok := ParseIndexer("cdi")
	assert.True(t, ok)
	assert.Equal(t, IndexerCDI, idx)

	idx, ok = ParseIndexer("Inflation-IPCA")
	assert.True(t, ok)
	assert.Equal(t, IndexerIPCA, idx)

	idx, ok = ParseIndexer("prefixed")
	assert.True(t, ok)
	assert.Equal(t, IndexerPrefixed, idx)

	_, ok = ParseIndexer("SELIC")
	assert.False(t, ok)
}

func TestNormalizeDividendYield(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"fraction unchanged", 0.10, 0.10},
		{"exactly one unchanged", 1.0, 1.0},
		{"percentage divided", 14.5, 0.145},
		{"zero unchanged", 0, 0},
		{"negative unchanged", -2, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, NormalizeDividendYield(tt.input), 1e-12)
		})
	}
}

func TestNormalizeDividendYield_Idempotent(t *testing.T) {
	for _, x := range []float64{-5, 0, 0.05, 0.5, 1, 1.0001, 8, 14.5, 99, 100, 150, 12345} {
		once := NormalizeDividendYield(x)
		assert.Equal(t, once, NormalizeDividendYield(once), "x=%v", x)
	}
}

func TestAssetRecord_Clone(t *testing.T) {
	original := AssetRecord{
		Ticker:           "PETR4",
		EarningsPerShare: Float(5.2),
		Volatility:       Float(0.3),
	}

	clone := original.Clone()
	require.NotNil(t, clone.EarningsPerShare)
	*clone.EarningsPerShare = 99

	assert.Equal(t, 5.2, *original.EarningsPerShare, "clone must not alias the input")
	assert.Nil(t, clone.BookValuePerShare)
	assert.Equal(t, "PETR4", clone.Ticker)
}

func TestValueOr(t *testing.T) {
	assert.Equal(t, 3.0, ValueOr(nil, 3))
	assert.Equal(t, 1.5, ValueOr(Float(1.5), 3))
}

func TestMacroAssumptions(t *testing.T) {
	macro := DefaultMacro()
	assert.InDelta(t, 0.1725, macro.DiscountRate(), 1e-12)
	assert.NoError(t, macro.Validate())

	macro.RiskFreeRate = nan()
	assert.Error(t, macro.Validate())
}
