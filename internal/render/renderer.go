package render

import (
	"github.com/smallbiznis/agritatva/internal/statistics"
	"go.uber.org/fx"
)

type Renderer interface {
	RenderPage(input PageInput) (string, error)
}

// PageInput is everything the single-page UI shows.
type PageInput struct {
	Title        string
	Rows         []Row
	Statistics   statistics.Summary
	ChartVersion uint64
	ReportURL    string
	ExportURL    string
	Error        string
	// Form echoes back rejected values so the user can correct them.
	Form FormValues
}

type Row struct {
	Index      int
	FieldName  string
	WaterUsage float64
	Rainfall   float64
}

type FormValues struct {
	FieldName  string
	WaterUsage string
	Rainfall   string
}

var Module = fx.Module("render",
	fx.Provide(NewRenderer),
)
