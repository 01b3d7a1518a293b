package service

import (
	"context"

	"trading_sim/internal/models"
)

// PriceFeed produces the next observed price for an instrument at a tick.
// The engine never generates prices itself; feeds are injectable so runs are
// reproducible in tests.
type PriceFeed interface {
	Next(ctx context.Context, inst models.Instrument, tick int) (float64, error)
}
