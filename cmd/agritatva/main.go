package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/agritatva/internal/chart"
	"github.com/smallbiznis/agritatva/internal/clock"
	"github.com/smallbiznis/agritatva/internal/config"
	"github.com/smallbiznis/agritatva/internal/observability"
	"github.com/smallbiznis/agritatva/internal/observation"
	"github.com/smallbiznis/agritatva/internal/providers"
	"github.com/smallbiznis/agritatva/internal/render"
	"github.com/smallbiznis/agritatva/internal/report"
	"github.com/smallbiznis/agritatva/internal/server"
	"github.com/smallbiznis/agritatva/internal/session"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		clock.Module,

		session.Module,
		chart.Module,
		observation.Module,
		providers.Module,
		report.Module,
		render.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.SnowflakeNode)
}
