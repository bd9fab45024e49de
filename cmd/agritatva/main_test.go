package main

import (
	"testing"

	"github.com/smallbiznis/agritatva/internal/chart"
	"github.com/smallbiznis/agritatva/internal/clock"
	"github.com/smallbiznis/agritatva/internal/config"
	"github.com/smallbiznis/agritatva/internal/observation"
	observationdomain "github.com/smallbiznis/agritatva/internal/observation/domain"
	"github.com/smallbiznis/agritatva/internal/providers"
	"github.com/smallbiznis/agritatva/internal/providers/spreadsheet"
	"github.com/smallbiznis/agritatva/internal/render"
	"github.com/smallbiznis/agritatva/internal/report"
	reportdomain "github.com/smallbiznis/agritatva/internal/report/domain"
	"github.com/smallbiznis/agritatva/internal/session"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// The HTTP and observability modules bind ports and global registries, so
// this only checks that the domain graph resolves.
func TestDomainGraphResolves(t *testing.T) {
	err := fx.ValidateApp(
		fx.Supply(config.Config{SnowflakeNode: 1, ChartWidth: 640, ChartHeight: 320}),
		fx.Supply(zap.NewNop()),
		fx.Provide(func() *config.ReportConfigHolder {
			return config.NewStaticReportConfigHolder(config.DefaultReportConfig())
		}),
		fx.Provide(RegisterSnowflake),
		clock.Module,
		session.Module,
		chart.Module,
		observation.Module,
		providers.Module,
		report.Module,
		render.Module,
		fx.Invoke(func(
			*session.Session,
			observationdomain.Service,
			reportdomain.Service,
			render.Renderer,
			*spreadsheet.Exporter,
			*chart.Renderer,
		) {
		}),
	)
	require.NoError(t, err)
}
