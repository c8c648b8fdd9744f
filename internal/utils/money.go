package utils

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/vantez/engine/pkg/formulas"
)

// DefaultCurrency is the ISO code used by FormatCurrency.
const DefaultCurrency = money.BRL

// ParseMonetaryString converts price-like input into a float64.
// Numbers pass through, strings are cleaned of currency symbols, percent
// signs and whitespace before locale separators are resolved. Anything that
// cannot be read as a finite number yields 0.
func ParseMonetaryString(input interface{}) float64 {
	value, _ := ParseNumber(input)
	return value
}

// ParseNumber is ParseMonetaryString that also reports whether the input held
// a usable number. Callers that need to tell "absent" apart from "zero" use it.
func ParseNumber(input interface{}) (float64, bool) {
	switch v := input.(type) {
	case nil:
		return 0, false
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case *float64:
		if v == nil {
			return 0, false
		}
		return finite(*v)
	case json.Number:
		return parseNumericText(v.String())
	case string:
		return parseNumericText(v)
	default:
		return 0, false
	}
}

func finite(v float64) (float64, bool) {
	if !formulas.IsFinite(v) {
		return 0, false
	}
	return v, true
}

func parseNumericText(raw string) (float64, bool) {
	s := strings.ReplaceAll(raw, "R$", "")
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '%' || unicode.Is(unicode.Sc, r) {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return 0, false
	}

	d, err := decimal.NewFromString(normalizeSeparators(s))
	if err != nil {
		return 0, false
	}
	return finite(d.InexactFloat64())
}

// normalizeSeparators rewrites a number using "." as the only decimal mark.
// The right-most separator wins when both are present ("1.234,56" and
// "1,234.56"); a repeated separator is a thousands mark ("1.234.567").
// A single "." is always decimal.
func normalizeSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			return strings.ReplaceAll(s, ",", "")
		}
		return strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ".") > 1:
		return strings.ReplaceAll(s, ".", "")
	}
	return s
}

// FormatCurrency renders value in the default currency (BRL), e.g. R$1.234,56.
func FormatCurrency(value float64) string {
	return FormatCurrencyIn(value, DefaultCurrency)
}

// FormatCurrencyIn renders value using the symbol, separators and fraction
// digits of the given ISO currency. Unknown codes fall back to BRL and
// non-finite values render as zero.
func FormatCurrencyIn(value float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	cur := money.GetCurrency(code)
	if cur == nil {
		code = DefaultCurrency
		cur = money.GetCurrency(code)
	}
	if !formulas.IsFinite(value) {
		value = 0
	}

	minor := decimal.NewFromFloat(value).Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, code).Display()
}
