package utils

import (
	"math"
	"strconv"
	"strings"
)

// Number decodes JSON numbers, numeric strings and null. Values that do not
// parse decode to zero, so a malformed field never fails the whole document.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == "" {
		*n = 0
		return nil
	}
	s = strings.TrimSpace(strings.Trim(s, `"`))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*n = 0
		return nil
	}
	*n = Number(f)
	return nil
}

func (n Number) Float64() float64 {
	return float64(n)
}

// RoundHalfUp rounds to the nearest integer with halves going up.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// RoundTo rounds x to the given number of decimal places.
func RoundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
