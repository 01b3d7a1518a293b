package feed

import (
	"context"

	"go.uber.org/fx"

	"trading_sim/internal/modules/config"
	"trading_sim/internal/modules/feed/service"
)

func Module() fx.Option {
	return fx.Module("feed",
		fx.Provide(
			func(cfg *config.Config, lc fx.Lifecycle, ctx context.Context) service.PriceFeed {
				if cfg.Feed.Mode == "ws" {
					ws := service.NewWSFeed(cfg.Feed.WSURL)
					lc.Append(fx.Hook{
						OnStart: func(_ context.Context) error {
							ws.Start(ctx)
							return nil
						},
					})
					return ws
				}
				return service.NewRandomWalk(cfg.Feed.Seed)
			},
		),
	)
}
