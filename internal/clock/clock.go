package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock is the time source for recorded observations and report headers.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func System() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

var Module = fx.Module("clock",
	fx.Provide(System),
)
