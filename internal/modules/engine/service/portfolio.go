package service

import (
	"github.com/shopspring/decimal"

	"trading_sim/internal/models"
)

type BuyOutcome int

const (
	BuyNoSignal BuyOutcome = iota
	BuyInsufficientBalance
	BuyFilled
)

type BuyResult struct {
	Outcome BuyOutcome
	Qty     int64
	Limit   decimal.Decimal
	Cost    decimal.Decimal
}

type SellResult struct {
	Sold     bool
	Qty      int64
	Price    decimal.Decimal
	Proceeds decimal.Decimal
}

// Portfolio owns the per-instrument positions and executes buys/sells against
// the shared ledger. It is not safe for concurrent use; the engine serializes
// access.
type Portfolio struct {
	ledger *Ledger

	slippage     decimal.Decimal
	exitMargin   decimal.Decimal
	forecastDrop float64
	divisor      decimal.Decimal // total instrument count, not per-tick eligible count

	order     []models.Instrument
	positions map[models.Instrument]*models.Position
}

func NewPortfolio(ledger *Ledger, slippage, exitMargin, forecastDrop float64, instruments int) *Portfolio {
	return &Portfolio{
		ledger:       ledger,
		slippage:     decimal.NewFromFloat(slippage),
		exitMargin:   decimal.NewFromFloat(exitMargin),
		forecastDrop: forecastDrop,
		divisor:      decimal.NewFromInt(int64(instruments)),
		positions:    make(map[models.Instrument]*models.Position),
	}
}

// Position lazily creates the position on first reference and keeps creation
// order so settlement and summaries iterate deterministically.
func (p *Portfolio) Position(inst models.Instrument) *models.Position {
	if pos, ok := p.positions[inst]; ok {
		return pos
	}
	pos := &models.Position{Instrument: inst, AvgPrice: decimal.Zero}
	p.positions[inst] = pos
	p.order = append(p.order, inst)
	return pos
}

func (p *Portfolio) Order() []models.Instrument { return p.order }

// TryBuy enters at the slippage-adjusted limit price when the entry signal
// holds. Sizing draws a flat 1/N share of the balance where N is the total
// instrument count.
func (p *Portfolio) TryBuy(inst models.Instrument, sig models.TrendSignal) BuyResult {
	if !sig.Entry() {
		return BuyResult{Outcome: BuyNoSignal}
	}

	limit := decimal.NewFromFloat(sig.Price).Mul(decimal.NewFromInt(1).Sub(p.slippage))
	if limit.IsZero() || limit.IsNegative() {
		return BuyResult{Outcome: BuyNoSignal}
	}

	qty := p.ledger.Balance().Div(limit).Div(p.divisor).IntPart()
	if qty <= 0 {
		return BuyResult{Outcome: BuyInsufficientBalance}
	}

	cost := limit.Mul(decimal.NewFromInt(qty))
	if err := p.ledger.Debit(cost); err != nil {
		return BuyResult{Outcome: BuyInsufficientBalance}
	}

	pos := p.Position(inst)
	held := decimal.NewFromInt(pos.Shares)
	total := decimal.NewFromInt(pos.Shares + qty)
	pos.AvgPrice = pos.AvgPrice.Mul(held).Add(cost).Div(total)
	pos.Shares += qty

	return BuyResult{Outcome: BuyFilled, Qty: qty, Limit: limit, Cost: cost}
}

// SellExit liquidates the whole position at the slippage-adjusted limit once
// the price is above SMA and clears cost basis by the exit margin.
func (p *Portfolio) SellExit(inst models.Instrument, sig models.TrendSignal) SellResult {
	pos := p.Position(inst)
	if pos.Flat() || !sig.AboveSMA() {
		return SellResult{}
	}
	if !decimal.NewFromFloat(sig.Price).GreaterThan(pos.AvgPrice.Mul(p.exitMargin)) {
		return SellResult{}
	}

	limit := decimal.NewFromFloat(sig.Price).Mul(decimal.NewFromInt(1).Add(p.slippage))
	return p.liquidate(pos, limit)
}

// SellForecast liquidates at the raw observed price when the forecast-drop
// condition holds. The caller gates it to the subsampled tick cadence, and it
// runs after SellExit so it sees the position state the exit sell left behind.
func (p *Portfolio) SellForecast(inst models.Instrument, sig models.TrendSignal) SellResult {
	pos := p.Position(inst)
	if pos.Flat() || !sig.ForecastDrop(p.forecastDrop) {
		return SellResult{}
	}
	return p.liquidate(pos, decimal.NewFromFloat(sig.Price))
}

func (p *Portfolio) liquidate(pos *models.Position, price decimal.Decimal) SellResult {
	qty := pos.Shares
	proceeds := price.Mul(decimal.NewFromInt(qty))
	p.ledger.Credit(proceeds)
	pos.Reset()
	return SellResult{Sold: true, Qty: qty, Price: price, Proceeds: proceeds}
}
