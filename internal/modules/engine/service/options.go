package service

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"trading_sim/internal/models"
)

// OptionDesk issues and exercises the hedge contracts attached to positions.
// Contracts are bought against the shared ledger; each leg of a hedge is an
// independent affordability check, never an all-or-nothing pair.
type OptionDesk struct {
	ledger *Ledger

	maturity float64
	rate     float64
	vol      float64

	callStrikePct float64
	putStrikePct  float64
}

func NewOptionDesk(ledger *Ledger, maturity, rate, vol, callStrikePct, putStrikePct float64) *OptionDesk {
	return &OptionDesk{
		ledger:        ledger,
		maturity:      maturity,
		rate:          rate,
		vol:           vol,
		callStrikePct: callStrikePct,
		putStrikePct:  putStrikePct,
	}
}

type Exercise struct {
	Contract models.OptionContract
	Payout   decimal.Decimal
}

// IssueHedge buys one OTM call and one OTM put against a freshly filled buy.
// A leg that cannot be priced or afforded is skipped; the other still trades.
// The returned error reports pricing failures only — skipped-for-cash legs are
// a normal outcome.
func (d *OptionDesk) IssueHedge(pos *models.Position, price float64) ([]models.OptionContract, error) {
	var issued []models.OptionContract
	var firstErr error

	legs := []struct {
		kind   models.OptionKind
		strike float64
	}{
		{models.OptionCall, price * d.callStrikePct},
		{models.OptionPut, price * d.putStrikePct},
	}

	for _, leg := range legs {
		var premium float64
		var err error
		if leg.kind == models.OptionCall {
			premium, err = CallPrice(price, leg.strike, d.maturity, d.rate, d.vol)
		} else {
			premium, err = PutPrice(price, leg.strike, d.maturity, d.rate, d.vol)
		}
		if err != nil {
			if firstErr == nil {
				firstErr = errors.Wrapf(err, "price %s hedge for %s", leg.kind, pos.Instrument)
			}
			continue
		}

		cost := decimal.NewFromFloat(premium)
		if d.ledger.Debit(cost) != nil {
			continue // can't afford this leg, keep going
		}

		contract := models.OptionContract{
			Kind:     leg.kind,
			Strike:   leg.strike,
			Premium:  premium,
			Maturity: d.maturity,
		}
		pos.Options = append(pos.Options, contract)
		issued = append(issued, contract)
	}

	return issued, firstErr
}

// CheckExercise exercises every in-the-money contract at intrinsic value and
// removes it from the position. Out-of-the-money contracts are retained
// unchanged; time decay is not modeled.
func (d *OptionDesk) CheckExercise(pos *models.Position, price float64) []Exercise {
	var exercised []Exercise
	remaining := pos.Options[:0]

	for _, c := range pos.Options {
		if !c.InTheMoney(price) {
			remaining = append(remaining, c)
			continue
		}
		payout := decimal.NewFromFloat(c.Intrinsic(price))
		d.ledger.Credit(payout)
		exercised = append(exercised, Exercise{Contract: c, Payout: payout})
	}

	pos.Options = remaining
	return exercised
}
