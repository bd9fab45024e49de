package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeReportFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestReportConfigFromFile(t *testing.T) {
	path := writeReportFile(t, `
report:
  title: "North Farm Water Report"
  fileName: "north.pdf"
  tips:
    - "  Check drip lines weekly.  "
    - ""
  includeChart: false
`)

	holder, err := NewReportConfigHolderFromFile(path, zap.NewNop())
	require.NoError(t, err)

	cfg := holder.Get()
	assert.Equal(t, "North Farm Water Report", cfg.Title)
	assert.Equal(t, "north.pdf", cfg.FileName)
	assert.Equal(t, []string{"Check drip lines weekly."}, cfg.Tips)
	assert.False(t, cfg.IncludeChart)
	assert.Equal(t, "AI Tip:", cfg.TipsHeading)
}

func TestReportConfigPartialFileKeepsDefaults(t *testing.T) {
	path := writeReportFile(t, `
report:
  title: "Custom"
`)

	holder, err := NewReportConfigHolderFromFile(path, zap.NewNop())
	require.NoError(t, err)

	cfg := holder.Get()
	defaults := DefaultReportConfig()
	assert.Equal(t, "Custom", cfg.Title)
	assert.Equal(t, DefaultReportFileName, cfg.FileName)
	assert.Equal(t, defaults.Tips, cfg.Tips)
	assert.True(t, cfg.IncludeChart)
}

func TestReportConfigRejectsInvalidFileName(t *testing.T) {
	cases := map[string]string{
		"not_pdf":   "report:\n  fileName: \"report.txt\"\n",
		"with_path": "report:\n  fileName: \"../report.pdf\"\n",
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeReportFile(t, body)
			_, err := NewReportConfigHolderFromFile(path, zap.NewNop())
			assert.Error(t, err)
		})
	}
}

func TestStaticReportConfigHolderNormalizes(t *testing.T) {
	holder := NewStaticReportConfigHolder(ReportConfig{
		Title:    "  Title  ",
		FileName: "out.pdf",
		Tips:     []string{" a ", "  "},
	})

	cfg := holder.Get()
	assert.Equal(t, "Title", cfg.Title)
	assert.Equal(t, []string{"a"}, cfg.Tips)
}
