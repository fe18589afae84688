// Package bmi computes Body Mass Index values and maps them onto the four
// weight categories.
package bmi

// Thresholds are the lower edges of the Normal weight, Overweight and Obese
// bands, in ascending order.
var Thresholds = []float64{NormalLowerBound, OverweightLowerBound, ObeseLowerBound}

const (
	NormalLowerBound     = 18.5
	OverweightLowerBound = 25.0
	ObeseLowerBound      = 30.0
)

// Calculate returns weight (kg) divided by the square of height (m).
// Range checking is the caller's job, see Validate.
func Calculate(weight, height float64) float64 {
	return weight / (height * height)
}

// Categorize maps a BMI value to its category. Bands are half-open with the
// lower edge inclusive; the Obese band is unbounded.
func Categorize(v float64) Category {
	switch {
	case v < NormalLowerBound:
		return Underweight
	case v < OverweightLowerBound:
		return NormalWeight
	case v < ObeseLowerBound:
		return Overweight
	default:
		return Obese
	}
}
