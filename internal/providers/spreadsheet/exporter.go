package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/smallbiznis/agritatva/internal/observation/domain"
	"github.com/smallbiznis/agritatva/internal/statistics"
	"github.com/xuri/excelize/v2"
	"go.uber.org/fx"
)

const (
	ObservationsSheet = "Observations"
	StatisticsSheet   = "Statistics"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	FileName    = "water_usage.xlsx"
)

type Exporter struct{}

func New() *Exporter {
	return &Exporter{}
}

// ExportObservations writes the observation log and its water usage summary
// into a two-sheet workbook.
func (e *Exporter) ExportObservations(observations []domain.FieldObservation, summary statistics.Summary) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ObservationsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := []interface{}{"Index", "Field Name", "Water Usage (liters)", "Rainfall (mm)", "Recorded At"}
	if err := f.SetSheetRow(ObservationsSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, obs := range observations {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		recordedAt := ""
		if !obs.RecordedAt.IsZero() {
			recordedAt = obs.RecordedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
		}
		row := []interface{}{i, obs.FieldName, obs.WaterUsage, obs.Rainfall, recordedAt}
		if err := f.SetSheetRow(ObservationsSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(StatisticsSheet); err != nil {
		return nil, fmt.Errorf("create statistics sheet: %w", err)
	}
	for i, row := range statisticsRows(summary) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(StatisticsSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

func statisticsRows(summary statistics.Summary) [][]interface{} {
	rows := [][]interface{}{
		{"Metric", "Water Usage"},
		{"Count", summary.Count},
	}
	if summary.Empty() {
		return append(rows,
			[]interface{}{"Mean", "n/a"},
			[]interface{}{"Variance", "n/a"},
			[]interface{}{"Std Dev", "n/a"},
			[]interface{}{"Max", "n/a"},
			[]interface{}{"Min", "n/a"},
		)
	}
	return append(rows,
		[]interface{}{"Mean", summary.Mean},
		[]interface{}{"Variance", summary.Variance},
		[]interface{}{"Std Dev", summary.StdDev},
		[]interface{}{"Max", summary.Max},
		[]interface{}{"Min", summary.Min},
	)
}

var Module = fx.Module("providers.spreadsheet",
	fx.Provide(New),
)
