package domain

import (
	"context"
	"errors"
	"time"
)

const ContentTypePDF = "application/pdf"

// Header is the table header row of the report.
var Header = [3]string{"Field Name", "Water Usage (liters)", "Rainfall (mm)"}

type Service interface {
	Generate(ctx context.Context) (*Report, error)
}

// Document is the render-ready content of a water usage report. All values
// are preformatted strings so the PDF layer makes no formatting decisions.
type Document struct {
	Title       string
	GeneratedAt time.Time
	SessionID   string
	Header      [3]string
	Rows        []Row
	Statistics  StatisticsBlock
	TipsHeading string
	Tips        []string
	// ChartPNG is empty when there is no data or the chart is disabled.
	ChartPNG []byte
}

type Row struct {
	FieldName  string
	WaterUsage string
	Rainfall   string
}

type StatisticsBlock struct {
	TotalFields string
	MeanWater   string
	MaxWater    string
	MinWater    string
}

// Report is a finished PDF ready for download.
type Report struct {
	FileName    string
	ContentType string
	Content     []byte
}

var ErrReportRender = errors.New("report_render_failed")
