package scraper

import (
	"math"
	"strconv"
	"strings"
)

// ParsePrice converts locale-formatted price text (thousands separator ".",
// decimal separator ",") into a numeric value. An optional cents fragment is
// appended when the page renders it as a separate node. Returns ok=false on
// any parse failure, never an error.
func ParsePrice(fraction, cents string) (float64, bool) {
	fraction = strings.TrimSpace(fraction)
	if fraction == "" {
		return 0, false
	}

	normalized := strings.ReplaceAll(fraction, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")

	cents = strings.TrimSpace(cents)
	if cents != "" {
		normalized = normalized + "." + cents
	}

	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// Discount returns the discount percentage of current against previous,
// rounded to one decimal. Reports ok=false when no discount applies.
func Discount(current, previous float64) (float64, bool) {
	if current <= 0 || previous <= current {
		return 0, false
	}
	pct := (previous - current) / previous * 100
	return math.Round(pct*10) / 10, true
}
