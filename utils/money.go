package utils

import "math"

// Round2 rounds x to 2 decimal places. Every monetary value in the API is
// passed through this before it is stored or returned.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
