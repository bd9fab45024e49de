package report

import (
	"github.com/smallbiznis/agritatva/internal/report/service"
	"go.uber.org/fx"
)

var Module = fx.Module("report.service",
	fx.Provide(service.NewService),
)
