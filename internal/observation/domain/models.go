package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// FieldObservation is one submitted irrigation reading for a field.
type FieldObservation struct {
	ID         snowflake.ID
	FieldName  string
	WaterUsage float64 // liters
	Rainfall   float64 // mm
	RecordedAt time.Time
}

// WaterUsages returns the water usage column in insertion order.
func WaterUsages(observations []FieldObservation) []float64 {
	values := make([]float64, len(observations))
	for i, obs := range observations {
		values[i] = obs.WaterUsage
	}
	return values
}

// Rainfalls returns the rainfall column in insertion order.
func Rainfalls(observations []FieldObservation) []float64 {
	values := make([]float64, len(observations))
	for i, obs := range observations {
		values[i] = obs.Rainfall
	}
	return values
}
