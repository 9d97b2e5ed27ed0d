package output

import "math"

// RoundFloat rounds a float to max 6 decimal places for stable encoding.
// Monetary figures are already finalized at 2 decimals upstream; this guards
// derived ratios against platform-dependent trailing digits.
func RoundFloat(f float64) float64 {
	multiplier := math.Pow(10, 6)
	return math.Round(f*multiplier) / multiplier
}
