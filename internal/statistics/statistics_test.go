package statistics

import (
	"math"
	"testing"

	"github.com/smallbiznis/agritatva/internal/observation/domain"
	"github.com/stretchr/testify/assert"
)

func observations(usages ...float64) []domain.FieldObservation {
	out := make([]domain.FieldObservation, len(usages))
	for i, u := range usages {
		out[i] = domain.FieldObservation{FieldName: "f", WaterUsage: u, Rainfall: 999}
	}
	return out
}

func TestCalculate(t *testing.T) {
	cases := []struct {
		name     string
		usages   []float64
		count    int
		mean     float64
		variance float64
		stdDev   float64
		max      float64
		min      float64
	}{
		{
			name:     "three_fields",
			usages:   []float64{100, 200, 300},
			count:    3,
			mean:     200,
			variance: 6666.6667,
			stdDev:   81.6497,
			max:      300,
			min:      100,
		},
		{
			name:   "single_field",
			usages: []float64{50},
			count:  1,
			mean:   50,
			max:    50,
			min:    50,
		},
		{
			name:     "unordered_with_zero",
			usages:   []float64{0, 40, 20},
			count:    3,
			mean:     20,
			variance: 266.6667,
			stdDev:   16.3299,
			max:      40,
			min:      0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Calculate(observations(tc.usages...))

			assert.False(t, got.Empty())
			assert.Equal(t, tc.count, got.Count)
			assert.InDelta(t, tc.mean, got.Mean, 1e-4)
			assert.InDelta(t, tc.variance, got.Variance, 1e-4)
			assert.InDelta(t, tc.stdDev, got.StdDev, 1e-4)
			assert.Equal(t, tc.max, got.Max)
			assert.Equal(t, tc.min, got.Min)
		})
	}
}

func TestCalculateEmptyIsExplicit(t *testing.T) {
	got := Calculate(nil)

	assert.True(t, got.Empty())
	assert.Equal(t, Summary{}, got)
	for _, v := range []float64{got.Mean, got.Variance, got.StdDev, got.Max, got.Min} {
		assert.False(t, math.IsNaN(v))
	}
}

func TestCalculateIgnoresRainfall(t *testing.T) {
	obs := []domain.FieldObservation{
		{WaterUsage: 10, Rainfall: 1000},
		{WaterUsage: 30, Rainfall: -5},
	}

	got := Calculate(obs)
	assert.Equal(t, 20.0, got.Mean)
	assert.Equal(t, 30.0, got.Max)
	assert.Equal(t, 10.0, got.Min)
}

func TestVarianceUsesPopulationDivisor(t *testing.T) {
	got := CalculateValues([]float64{2, 4})

	// sample variance would be 2
	assert.Equal(t, 1.0, got.Variance)
	assert.Equal(t, 1.0, got.StdDev)
}

func TestCalculateLargeValuesStayFinite(t *testing.T) {
	got := CalculateValues([]float64{1e308, 1e308})

	assert.Equal(t, 1e308, got.Mean)
	assert.Zero(t, got.Variance)
	assert.False(t, math.IsInf(got.StdDev, 0))

	capped := CalculateValues([]float64{domain.MaxMeasurement, domain.MaxMeasurement, 0})
	for _, v := range []float64{capped.Mean, capped.Variance, capped.StdDev} {
		assert.False(t, math.IsInf(v, 0))
		assert.False(t, math.IsNaN(v))
	}
	assert.InDelta(t, domain.MaxMeasurement*2/3, capped.Mean, 1)
}
