package chart

import "go.uber.org/fx"

var Module = fx.Module("chart",
	fx.Provide(NewRenderer),
)
