package observation

import (
	"github.com/smallbiznis/agritatva/internal/observation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("observation.service",
	fx.Provide(service.NewService),
)
