package bmi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMatchesFormulaAcrossRange(t *testing.T) {
	for w := MinWeight; w <= MaxWeight; w += 7.3 {
		for h := MinHeight; h <= MaxHeight; h += 0.07 {
			assert.InDelta(t, w/(h*h), Calculate(w, h), 1e-9, "weight=%v height=%v", w, h)
		}
	}
	assert.InDelta(t, MaxWeight/(MaxHeight*MaxHeight), Calculate(MaxWeight, MaxHeight), 1e-9)
}

func TestCalculateReferenceCase(t *testing.T) {
	v := Calculate(70, 1.75)
	assert.InDelta(t, 22.857142857, v, 1e-6)
	assert.Equal(t, NormalWeight, Categorize(v))
}

func TestCategorizeBoundaries(t *testing.T) {
	cases := []struct {
		bmi  float64
		want Category
	}{
		{0, Underweight},
		{18.49, Underweight},
		{18.5, NormalWeight},
		{24.99, NormalWeight},
		{25, Overweight},
		{29.99, Overweight},
		{30, Obese},
		{1200, Obese},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Categorize(tc.bmi), "bmi=%v", tc.bmi)
	}
}

func TestThresholdsAscending(t *testing.T) {
	require.Len(t, Thresholds, 3)
	for i, th := range Thresholds {
		assert.Equal(t, Categories[i+1], Categorize(th))
		assert.Equal(t, Categories[i], Categorize(th-0.01))
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		got, err := ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseCategory("normal")
	assert.Error(t, err)
}
