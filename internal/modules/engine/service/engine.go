package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"trading_sim/internal/models"
	strategysvc "trading_sim/internal/modules/strategy/service"
)

// ServiceNotifier carries warmup progress and pricing trouble to a human.
type ServiceNotifier interface {
	Sendf(format string, args ...any)
}

// Engine turns one price observation into trade/exercise actions and balance
// changes. One instance per session; processing is fully serialized — within a
// tick, instruments earlier in the configured order get first claim on cash.
type Engine struct {
	mu sync.Mutex

	sessionID string
	strategy  strategysvc.Engine
	ledger    *Ledger
	portfolio *Portfolio
	desk      *OptionDesk
	n         ServiceNotifier

	exerciseEvery int
}

type EngineParams struct {
	Strategy      strategysvc.Engine
	Ledger        *Ledger
	Portfolio     *Portfolio
	Desk          *OptionDesk
	Notifier      ServiceNotifier // optional
	ExerciseEvery int
}

func NewEngine(p EngineParams) *Engine {
	every := p.ExerciseEvery
	if every <= 0 {
		every = 2
	}
	return &Engine{
		sessionID:     uuid.NewString(),
		strategy:      p.Strategy,
		ledger:        p.Ledger,
		portfolio:     p.Portfolio,
		desk:          p.Desk,
		n:             p.Notifier,
		exerciseEvery: every,
	}
}

func (e *Engine) SessionID() string        { return e.sessionID }
func (e *Engine) Balance() decimal.Decimal { return e.ledger.Balance() }

// Holdings returns the positions in creation order.
func (e *Engine) Holdings() []*models.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*models.Position, 0, len(e.portfolio.Order()))
	for _, inst := range e.portfolio.Order() {
		out = append(out, e.portfolio.Position(inst))
	}
	return out
}

// OnPrice processes one observation for one instrument. Ordering within the
// tick mirrors the settlement rules: buy (plus hedge issue), exit sell, then —
// on the subsampled cadence — forecast sell and early exercise. A cold history
// is a no-op, not an error.
func (e *Engine) OnPrice(inst models.Instrument, price float64, tick int) []models.TradeEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	sig, ok, becameReady := e.strategy.Observe(inst, price, tick)
	if becameReady && e.n != nil {
		e.n.Sendf("warmup done for %s: %s", inst, e.strategy.Dump(inst))
	}
	if !ok {
		return nil
	}

	var events []models.TradeEvent

	if res := e.portfolio.TryBuy(inst, sig); res.Outcome == BuyFilled {
		events = append(events, e.newEvent(tick, inst, models.TradeEvent{
			Action: models.ActionBuy,
			Qty:    res.Qty,
			Price:  res.Limit.InexactFloat64(),
			Amount: res.Cost,
		}))

		issued, err := e.desk.IssueHedge(e.portfolio.Position(inst), price)
		if err != nil && e.n != nil {
			e.n.Sendf("hedge issue on %s: %v", inst, err)
		}
		for _, c := range issued {
			action := models.ActionBuyCall
			if c.Kind == models.OptionPut {
				action = models.ActionBuyPut
			}
			events = append(events, e.newEvent(tick, inst, models.TradeEvent{
				Action: action,
				Price:  c.Premium,
				Strike: c.Strike,
				Amount: decimal.NewFromFloat(c.Premium),
			}))
		}
	}

	if res := e.portfolio.SellExit(inst, sig); res.Sold {
		events = append(events, e.newEvent(tick, inst, models.TradeEvent{
			Action: models.ActionSell,
			Qty:    res.Qty,
			Price:  res.Price.InexactFloat64(),
			Amount: res.Proceeds,
		}))
	}

	if tick%e.exerciseEvery == 0 {
		if res := e.portfolio.SellForecast(inst, sig); res.Sold {
			events = append(events, e.newEvent(tick, inst, models.TradeEvent{
				Action: models.ActionAlertSell,
				Qty:    res.Qty,
				Price:  res.Price.InexactFloat64(),
				Amount: res.Proceeds,
			}))
		}

		for _, ex := range e.desk.CheckExercise(e.portfolio.Position(inst), price) {
			action := models.ActionExitCall
			if ex.Contract.Kind == models.OptionPut {
				action = models.ActionExitPut
			}
			events = append(events, e.newEvent(tick, inst, models.TradeEvent{
				Action: action,
				Price:  price,
				Strike: ex.Contract.Strike,
				Amount: ex.Payout,
			}))
		}
	}

	return events
}

// Settle force-sells every open position at the final raw price, pays out
// in-the-money contracts at intrinsic value and clears the books. A second
// call finds empty positions and changes nothing.
func (e *Engine) Settle(lastPrices map[models.Instrument]float64) []models.TradeEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	var events []models.TradeEvent
	for _, inst := range e.portfolio.Order() {
		pos := e.portfolio.Position(inst)
		price := lastPrices[inst]

		if pos.Shares > 0 {
			proceeds := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(pos.Shares))
			e.ledger.Credit(proceeds)
			events = append(events, e.newEvent(-1, inst, models.TradeEvent{
				Action: models.ActionEODSell,
				Qty:    pos.Shares,
				Price:  price,
				Amount: proceeds,
			}))
			pos.Reset()
		}

		for _, c := range pos.Options {
			if !c.InTheMoney(price) {
				continue // expires worthless
			}
			payout := decimal.NewFromFloat(c.Intrinsic(price))
			e.ledger.Credit(payout)
			events = append(events, e.newEvent(-1, inst, models.TradeEvent{
				Action: models.ActionOptionPayout,
				Price:  price,
				Strike: c.Strike,
				Amount: payout,
			}))
		}
		pos.Options = nil
	}

	return events
}

func (e *Engine) newEvent(tick int, inst models.Instrument, ev models.TradeEvent) models.TradeEvent {
	ev.ID = uuid.NewString()
	ev.SessionID = e.sessionID
	ev.Tick = tick
	ev.Instrument = inst
	ev.At = time.Now()
	return ev
}
