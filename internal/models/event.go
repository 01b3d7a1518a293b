package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeAction is the observable vocabulary of the session: one line per action.
type TradeAction string

const (
	ActionBuy          TradeAction = "BUY"
	ActionBuyCall      TradeAction = "BUY CALL OPTION"
	ActionBuyPut       TradeAction = "BUY PUT OPTION"
	ActionSell         TradeAction = "SELL"
	ActionAlertSell    TradeAction = "ALERT SELL"
	ActionExitCall     TradeAction = "ALERT EXIT CALL OPTION"
	ActionExitPut      TradeAction = "ALERT EXIT PUT OPTION"
	ActionEODSell      TradeAction = "EOD SELL"
	ActionOptionPayout TradeAction = "OPTION PAYOUT"
)

// TradeEvent records one executed action and the numbers behind it.
// Price is the execution price (limit or raw, depending on the action),
// Amount is the signed-free cash delta magnitude: cost for buys, proceeds
// for sells, payout for exercises.
type TradeEvent struct {
	ID         string
	SessionID  string
	Tick       int
	Instrument Instrument
	Action     TradeAction
	Qty        int64
	Price      float64
	Strike     float64
	Amount     decimal.Decimal
	At         time.Time
}
