package engine

import (
	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"trading_sim/internal/modules/config"
	"trading_sim/internal/modules/engine/service"
	strategysvc "trading_sim/internal/modules/strategy/service"
	"trading_sim/internal/notify"
)

func Module() fx.Option {
	return fx.Module("engine",
		fx.Provide(
			func(cfg *config.Config, strat strategysvc.Engine, n notify.Notifier) *service.Engine {
				ledger := service.NewLedger(decimal.NewFromFloat(cfg.Session.InitialBalance))
				portfolio := service.NewPortfolio(
					ledger,
					cfg.Session.Slippage,
					cfg.Session.ExitMargin,
					cfg.Session.ForecastDrop,
					len(cfg.Session.Instruments),
				)
				desk := service.NewOptionDesk(
					ledger,
					cfg.Options.Maturity,
					cfg.Options.RiskFreeRate,
					cfg.Options.Volatility,
					cfg.Options.CallStrikePct,
					cfg.Options.PutStrikePct,
				)
				return service.NewEngine(service.EngineParams{
					Strategy:      strat,
					Ledger:        ledger,
					Portfolio:     portfolio,
					Desk:          desk,
					Notifier:      n,
					ExerciseEvery: cfg.Session.ExerciseEvery,
				})
			},
		),
	)
}
