package round

import "math"

// Currency rounds a dollar amount to 2 decimal places.
func Currency(v float64) float64 {
	return math.Round(v*100) / 100
}

// Ratio rounds a ratio or factor (RAF, MLR) to 3 decimal places.
func Ratio(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Percent rounds a percentage to 1 decimal place.
func Percent(v float64) float64 {
	return math.Round(v*10) / 10
}

// BasisPoints converts a ratio delta to whole basis points.
// e.g. an MLR change of 0.0123 → 123 bps.
func BasisPoints(delta float64) int {
	return int(math.Round(delta * 10000))
}
