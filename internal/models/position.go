package models

import "github.com/shopspring/decimal"

// Position tracks the share count and weighted average cost basis for one
// instrument, plus the option contracts issued alongside its buys.
// Invariant: Shares == 0 ⟺ AvgPrice == 0.
type Position struct {
	Instrument Instrument
	Shares     int64
	AvgPrice   decimal.Decimal
	Options    []OptionContract
}

func (p *Position) Flat() bool { return p.Shares == 0 }

// Reset zeroes the equity part of the position. Options stay untouched —
// they are cleared only by exercise or settlement.
func (p *Position) Reset() {
	p.Shares = 0
	p.AvgPrice = decimal.Zero
}
