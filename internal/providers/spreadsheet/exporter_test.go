package spreadsheet

import (
	"testing"
	"time"

	"github.com/smallbiznis/agritatva/internal/observation/domain"
	"github.com/smallbiznis/agritatva/internal/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportObservations(t *testing.T) {
	obs := []domain.FieldObservation{
		{FieldName: "North", WaterUsage: 100, Rainfall: 10, RecordedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
		{FieldName: "South", WaterUsage: 300, Rainfall: 2.5},
	}

	buf, err := New().ExportObservations(obs, statistics.Calculate(obs))
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ObservationsSheet, StatisticsSheet}, f.GetSheetList())

	rows, err := f.GetRows(ObservationsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Field Name", rows[0][1])
	assert.Equal(t, []string{"0", "North", "100", "10", "2024-01-02T03:04:05Z"}, rows[1])
	assert.Equal(t, "South", rows[2][1])
	assert.Equal(t, "2.5", rows[2][3])

	stats, err := f.GetRows(StatisticsSheet)
	require.NoError(t, err)
	require.Len(t, stats, 7)
	assert.Equal(t, []string{"Mean", "200"}, stats[2])
	assert.Equal(t, []string{"Max", "300"}, stats[5])
}

func TestExportEmpty(t *testing.T) {
	buf, err := New().ExportObservations(nil, statistics.Summary{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ObservationsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	stats, err := f.GetRows(StatisticsSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Count", "0"}, stats[1])
	assert.Equal(t, []string{"Mean", "n/a"}, stats[2])
}
