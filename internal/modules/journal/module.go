package journal

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"trading_sim/internal/modules/config"
	"trading_sim/internal/modules/journal/service"
	"trading_sim/pkg/db"
)

func Module() fx.Option {
	return fx.Module("journal",
		fx.Provide(
			service.NewMemory,
			func(ctx context.Context, cfg *config.Config, mem *service.Memory, lc fx.Lifecycle) (service.Journal, error) {
				if cfg.DB == "" {
					return mem, nil
				}

				pool, err := db.NewPool(ctx, db.PoolConfig{DSN: cfg.DB})
				if err != nil {
					return nil, fmt.Errorf("failed to create journal pool: %w", err)
				}
				if err = pool.Ping(ctx); err != nil {
					return nil, err
				}

				manager := db.NewPgTxManager(pool)
				pg := service.NewPG(manager)

				lc.Append(fx.Hook{
					OnStart: func(startCtx context.Context) error {
						return pg.EnsureSchema(startCtx)
					},
					OnStop: func(context.Context) error {
						manager.Close()
						return nil
					},
				})

				return service.Multi{mem, pg}, nil
			},
		),
	)
}
