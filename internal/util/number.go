package util

import (
	"strconv"
	"strings"
)

// Thousands separators are not handled: "1.234,56" cleans to "1.234.56",
// which fails to parse and yields 0.
func ParseLocaleNumber(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.Replace(b.String(), ",", ".", 1)
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}
