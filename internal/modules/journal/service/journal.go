package service

import (
	"context"

	"trading_sim/internal/models"
)

// Journal records every executed action of the session.
type Journal interface {
	Record(ctx context.Context, ev models.TradeEvent) error
}

// Multi fans a record out to several journals (memory always, Postgres when
// configured).
type Multi []Journal

func (m Multi) Record(ctx context.Context, ev models.TradeEvent) error {
	for _, j := range m {
		if err := j.Record(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}
