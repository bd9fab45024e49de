// Package statistics computes descriptive statistics over water usage.
package statistics

import (
	"math"

	"github.com/smallbiznis/agritatva/internal/observation/domain"
)

// Summary holds descriptive statistics of the water usage column. Variance is
// the population variance (divisor = Count).
type Summary struct {
	Count    int
	Mean     float64
	Variance float64
	StdDev   float64
	Max      float64
	Min      float64
}

// Empty reports whether the summary was computed over zero observations. An
// empty summary has every numeric field set to zero, never NaN.
func (s Summary) Empty() bool {
	return s.Count == 0
}

// Calculate summarizes water usage in a single pass.
func Calculate(observations []domain.FieldObservation) Summary {
	return CalculateValues(domain.WaterUsages(observations))
}

// CalculateValues summarizes an arbitrary series. Mean and variance are
// accumulated with Welford's update so a large total never overflows.
func CalculateValues(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	mean, m2 := 0.0, 0.0
	minValue, maxValue := values[0], values[0]
	for i, v := range values {
		delta := v - mean
		mean += delta / float64(i+1)
		m2 += delta * (v - mean)
		minValue = math.Min(minValue, v)
		maxValue = math.Max(maxValue, v)
	}

	variance := m2 / float64(len(values))
	if variance < 0 {
		// rounding on identical values
		variance = 0
	}

	return Summary{
		Count:    len(values),
		Mean:     mean,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		Max:      maxValue,
		Min:      minValue,
	}
}
