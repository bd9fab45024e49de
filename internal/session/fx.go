package session

import (
	"context"

	"github.com/smallbiznis/agritatva/internal/chart"
	"github.com/smallbiznis/agritatva/internal/clock"
	"github.com/smallbiznis/agritatva/internal/observation/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Log       *zap.Logger
	Clock     clock.Clock
}

func Provide(p Params) *Session {
	s := New(store.NewMemory(), chart.NewCanvas(), p.Clock.Now())
	log := p.Log.Named("session").With(zap.String("session_id", s.ID.String()))

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("session started")
			return nil
		},
		OnStop: func(context.Context) error {
			log.Info("session closed", zap.Int("observations", s.Len()))
			s.Close()
			return nil
		},
	})
	return s
}

var Module = fx.Module("session",
	fx.Provide(Provide),
)
