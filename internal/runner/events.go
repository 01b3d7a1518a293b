package runner

import (
	"fmt"

	"trading_sim/internal/models"
)

// EventLine renders the observable one-line form of an action.
func EventLine(ev models.TradeEvent) string {
	switch ev.Action {
	case models.ActionBuy:
		return fmt.Sprintf("BUY %d shares of %s at $%.2f", ev.Qty, ev.Instrument, ev.Price)
	case models.ActionBuyCall:
		return fmt.Sprintf("BUY CALL OPTION on %s strike: $%.2f premium: $%.2f", ev.Instrument, ev.Strike, ev.Price)
	case models.ActionBuyPut:
		return fmt.Sprintf("BUY PUT OPTION on %s strike: $%.2f premium: $%.2f", ev.Instrument, ev.Strike, ev.Price)
	case models.ActionSell:
		return fmt.Sprintf("SELL %d shares of %s at $%.2f", ev.Qty, ev.Instrument, ev.Price)
	case models.ActionAlertSell:
		return fmt.Sprintf("ALERT SELL %d shares of %s at $%.2f due to drop forecast", ev.Qty, ev.Instrument, ev.Price)
	case models.ActionExitCall:
		return fmt.Sprintf("ALERT EXIT CALL OPTION on %s payout: $%s", ev.Instrument, ev.Amount.StringFixed(2))
	case models.ActionExitPut:
		return fmt.Sprintf("ALERT EXIT PUT OPTION on %s payout: $%s", ev.Instrument, ev.Amount.StringFixed(2))
	case models.ActionEODSell:
		return fmt.Sprintf("EOD SELL %d shares of %s at $%.2f", ev.Qty, ev.Instrument, ev.Price)
	case models.ActionOptionPayout:
		return fmt.Sprintf("OPTION PAYOUT for %s strike $%.2f: $%s", ev.Instrument, ev.Strike, ev.Amount.StringFixed(2))
	}
	return fmt.Sprintf("%s %s", ev.Action, ev.Instrument)
}
