package compliance

import (
	"math"
	"strconv"
)

// RoundYears rounds half-up to one decimal. The epsilon absorbs binary
// representation error so that 0.15 rounds to 0.2.
func RoundYears(v float64) float64 {
	return math.Floor(v*10+0.5+1e-9) / 10
}

// FormatYears renders a year figure with exactly one decimal digit.
func FormatYears(v float64) string {
	r := RoundYears(v)
	if r == 0 {
		r = 0 // no "-0.0"
	}
	return strconv.FormatFloat(r, 'f', 1, 64)
}
