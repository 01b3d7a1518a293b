package service

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"

	"trading_sim/internal/models"
	"trading_sim/pkg/db"
)

const createTradeEvents = `
CREATE TABLE IF NOT EXISTS trade_events (
	id          UUID PRIMARY KEY,
	session_id  UUID NOT NULL,
	tick        INT NOT NULL,
	instrument  TEXT NOT NULL,
	action      TEXT NOT NULL,
	qty         BIGINT NOT NULL,
	price       DOUBLE PRECISION NOT NULL,
	strike      DOUBLE PRECISION NOT NULL,
	amount      NUMERIC NOT NULL,
	details     JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
)`

const insertTradeEvent = `
INSERT INTO trade_events (id, session_id, tick, instrument, action, qty, price, strike, amount, details, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// PG persists trade events, one row per action.
type PG struct {
	tx db.TxManager
}

func NewPG(tx db.TxManager) *PG {
	return &PG{tx: tx}
}

// EnsureSchema creates the events table on first start.
func (p *PG) EnsureSchema(ctx context.Context) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Journal.EnsureSchema: %w", err)
		}
	}()
	return p.tx.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, createTradeEvents)
		return err
	})
}

func (p *PG) Record(ctx context.Context, ev models.TradeEvent) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Journal.Record: %w", err)
		}
	}()

	var details []byte
	details, err = sonic.Marshal(ev)
	if err != nil {
		return err
	}

	return p.tx.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, insertTradeEvent,
			ev.ID,
			ev.SessionID,
			ev.Tick,
			string(ev.Instrument),
			string(ev.Action),
			ev.Qty,
			ev.Price,
			ev.Strike,
			ev.Amount.String(),
			details,
			ev.At,
		)
		return err
	})
}
