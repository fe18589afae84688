package models

import (
	"errors"
	"fmt"

	"bmi-tracker/internal/bmi"
)

// ErrNoData is returned when history is requested before anything was saved.
var ErrNoData = errors.New("no BMI history to display yet")

// Record is one BMI computation as stored in the history file.
type Record struct {
	Weight   float64
	Height   float64
	BMI      float64
	Category bmi.Category
}

// NewRecord computes the BMI and category for an already validated
// weight (kg) and height (m).
func NewRecord(weight, height float64) Record {
	value := bmi.Calculate(weight, height)
	return Record{
		Weight:   weight,
		Height:   height,
		BMI:      value,
		Category: bmi.Categorize(value),
	}
}

// Summary is the text shown in the result label, e.g. "BMI: 22.86 (Normal weight)".
func (r Record) Summary() string {
	return fmt.Sprintf("BMI: %.2f (%s)", r.BMI, r.Category)
}
