package strategy

import (
	"trading_sim/internal/modules/config"
	"trading_sim/internal/modules/strategy/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("strategy",
		fx.Provide(
			func(cfg *config.Config) service.Engine {
				return service.NewSMATrend(cfg.Session.SMAWindow)
			},
		),
	)
}
