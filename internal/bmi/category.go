package bmi

import "fmt"

// Category is the label written to the history file for a BMI value.
type Category string

const (
	Underweight  Category = "Underweight"
	NormalWeight Category = "Normal weight"
	Overweight   Category = "Overweight"
	Obese        Category = "Obese"
)

// Categories lists every category in ascending BMI order.
var Categories = []Category{Underweight, NormalWeight, Overweight, Obese}

func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory converts a stored label back into a Category.
func ParseCategory(label string) (Category, error) {
	c := Category(label)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", label)
	}
	return c, nil
}
