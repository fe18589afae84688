package bmi

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Accepted input ranges, inclusive on both ends.
const (
	MinWeight = 10.0
	MaxWeight = 300.0
	MinHeight = 0.5
	MaxHeight = 2.5
)

const (
	msgWeightRange  = "Weight must be between 10kg and 300kg."
	msgHeightRange  = "Height must be between 0.5m and 2.5m."
	msgWeightNumber = "Weight must be a number."
	msgHeightNumber = "Height must be a number."
)

// InputError is a user-facing rejection of the entered weight or height.
// Message is shown verbatim in the Input Error dialog.
type InputError struct {
	Field   string
	Message string
	Err     error
}

func (e *InputError) Error() string {
	return e.Message
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// IsInputError reports whether err is, or wraps, an *InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// Validate checks weight (kg) and height (m) against the accepted ranges.
// Weight is checked first. NaN never satisfies a range check.
func Validate(weight, height float64) error {
	if !inRange(weight, MinWeight, MaxWeight) {
		return &InputError{Field: "weight", Message: msgWeightRange}
	}
	if !inRange(height, MinHeight, MaxHeight) {
		return &InputError{Field: "height", Message: msgHeightRange}
	}
	return nil
}

// ParseMeasurement parses the raw form text for weight and height and
// validates the result.
func ParseMeasurement(weightText, heightText string) (float64, float64, error) {
	weight, err := parseNumber("weight", msgWeightNumber, weightText)
	if err != nil {
		return 0, 0, err
	}
	height, err := parseNumber("height", msgHeightNumber, heightText)
	if err != nil {
		return 0, 0, err
	}
	if err := Validate(weight, height); err != nil {
		return 0, 0, err
	}
	return weight, height, nil
}

func parseNumber(field, message, text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, &InputError{Field: field, Message: message, Err: err}
	}
	return v, nil
}

func inRange(v, lo, hi float64) bool {
	if math.IsNaN(v) {
		return false
	}
	return v >= lo && v <= hi
}
