package utils

import "strings"

// ParseCSV splits a comma-separated list into trimmed non-empty values.
// Returns nil for empty/whitespace-only input.
func ParseCSV(s string) []string {
	var result []string
	for _, v := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ParseUpperCSV is ParseCSV with every value upper-cased, for ticker
// prefixes and currency codes.
func ParseUpperCSV(s string) []string {
	values := ParseCSV(s)
	for i, v := range values {
		values[i] = strings.ToUpper(v)
	}
	return values
}
