package runner

import (
	"context"

	"go.uber.org/fx"

	"trading_sim/pkg/logger"
)

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			NewSession,
		),
		fx.Invoke(func(
			lc fx.Lifecycle,
			s *Session,
			sh fx.Shutdowner,
			ctx context.Context,
		) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go func() {
						if _, err := s.Run(ctx); err != nil {
							logger.Error("session: %v", err)
						}
						_ = sh.Shutdown()
					}()
					return nil
				},
			})
		}),
	)
}
