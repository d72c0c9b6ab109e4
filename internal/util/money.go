package util

import (
	"fmt"
	"math"
)

// RoundCents rounds a monetary value half-up to two decimal places.
// Derived values (unit costs, suggested prices) are rounded once, at the
// point they are persisted, never mid-computation.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatMoney renders a monetary value with a currency symbol.
func FormatMoney(symbol string, v float64) string {
	if v < 0 {
		return fmt.Sprintf("-%s%.2f", symbol, -v)
	}
	return fmt.Sprintf("%s%.2f", symbol, v)
}

// ApplyPercent returns v increased by pct percent. Negative pct decreases.
func ApplyPercent(v, pct float64) float64 {
	return v * (1 + pct/100)
}

// NearlyEqual reports whether two floats are equal within a tolerance
// scaled to their magnitude. Used when comparing recomputed costs to
// cached ones to decide whether a value actually changed.
func NearlyEqual(a, b float64) bool {
	const epsilon = 1e-9
	diff := math.Abs(a - b)
	if diff <= epsilon {
		return true
	}
	return diff <= epsilon*math.Max(math.Abs(a), math.Abs(b))
}
