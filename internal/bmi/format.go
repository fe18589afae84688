package bmi

import (
	"math"
	"strconv"
	"strings"
)

// Round2 rounds v to two decimals using the exact binary value, with ties
// going to the even digit (10.2249999 becomes 10.22, 2.625 becomes 2.62).
func Round2(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}

// FormatNumber prints the shortest round-trip form of v, keeping a ".0"
// suffix on integral values ("70.0", "1.75").
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !math.IsInf(v, 0) && !math.IsNaN(v) {
		s += ".0"
	}
	return s
}
