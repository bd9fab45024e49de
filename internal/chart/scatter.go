// Package chart builds the water usage vs rainfall scatter plot.
//
// The chart is never updated in place: every mutation of the observation log
// produces a brand new Scatter from the full log, and the previous instance is
// dropped. Data volume is a handful of rows, so the rebuild is the policy.
package chart

import (
	"github.com/smallbiznis/agritatva/internal/observation/domain"
)

const (
	Title          = "Water Usage vs Rainfall per Field"
	XAxisLabel     = "Field Index"
	YAxisLabel     = "Value"
	WaterSeries    = "Water Usage (liters)"
	RainfallSeries = "Rainfall (mm)"
)

// RGBA is a series color.
type RGBA struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

var (
	waterColor    = RGBA{R: 54, G: 162, B: 235, A: 255}
	rainfallColor = RGBA{R: 255, G: 99, B: 132, A: 255}
)

// Point is one plotted observation; X is the 0-based insertion index.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Series struct {
	Name        string  `json:"name"`
	Color       RGBA    `json:"color"`
	PointRadius float64 `json:"point_radius"`
	Points      []Point `json:"points"`
}

type Axis struct {
	Label string `json:"label"`
	// Step is the tick interval; zero lets the renderer decide.
	Step        float64 `json:"step,omitempty"`
	BeginAtZero bool    `json:"begin_at_zero"`
}

type Scatter struct {
	Title  string   `json:"title"`
	XAxis  Axis     `json:"x_axis"`
	YAxis  Axis     `json:"y_axis"`
	Series []Series `json:"series"`
}

// Len returns the number of points in each series.
func (s Scatter) Len() int {
	if len(s.Series) == 0 {
		return 0
	}
	return len(s.Series[0].Points)
}

func (s Scatter) Empty() bool {
	return s.Len() == 0
}

// Build constructs a fresh scatter plot from the whole observation log.
func Build(observations []domain.FieldObservation) Scatter {
	water := make([]Point, len(observations))
	rainfall := make([]Point, len(observations))
	for i, obs := range observations {
		x := float64(i)
		water[i] = Point{X: x, Y: obs.WaterUsage}
		rainfall[i] = Point{X: x, Y: obs.Rainfall}
	}

	return Scatter{
		Title: Title,
		XAxis: Axis{Label: XAxisLabel, Step: 1},
		YAxis: Axis{Label: YAxisLabel, BeginAtZero: true},
		Series: []Series{
			{Name: WaterSeries, Color: waterColor, PointRadius: 5, Points: water},
			{Name: RainfallSeries, Color: rainfallColor, PointRadius: 5, Points: rainfall},
		},
	}
}
