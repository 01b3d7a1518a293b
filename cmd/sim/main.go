package main

import (
	"context"
	"log"

	"go.uber.org/fx"

	"trading_sim/internal/modules/config"
	"trading_sim/internal/modules/engine"
	"trading_sim/internal/modules/feed"
	"trading_sim/internal/modules/journal"
	"trading_sim/internal/modules/strategy"
	"trading_sim/internal/notify"
	"trading_sim/internal/runner"
	"trading_sim/pkg/logger"
	"trading_sim/pkg/tracing"
)

func main() {
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}
	logger.SetServiceName("trading_sim")
	tracing.SetServiceName("trading_sim")

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		fx.Invoke(func(cfg *config.Config) {
			if cfg.Jaeger.Host == "" {
				return
			}
			if _, _, err := tracing.InitTracer(tracing.Config{
				Host: cfg.Jaeger.Host,
				Port: cfg.Jaeger.Port,
			}); err != nil {
				logger.Error("tracing init: %v", err)
			}
		}),
		config.Module(),
		notify.Module(),
		feed.Module(),
		strategy.Module(),
		engine.Module(),
		journal.Module(),
		runner.Module(),
	)
	app.Run()
}
