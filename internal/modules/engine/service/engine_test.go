package service

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"trading_sim/internal/models"
	strategysvc "trading_sim/internal/modules/strategy/service"
)

type recordingNotifier struct {
	msgs []string
}

func (r *recordingNotifier) Sendf(format string, args ...any) {
	r.msgs = append(r.msgs, fmt.Sprintf(format, args...))
}

func newTestEngine(balance float64, instruments int) (*Engine, *Ledger, *recordingNotifier) {
	ledger := NewLedger(decimal.NewFromFloat(balance))
	n := &recordingNotifier{}
	eng := NewEngine(EngineParams{
		Strategy:      strategysvc.NewSMATrend(10),
		Ledger:        ledger,
		Portfolio:     NewPortfolio(ledger, 0.01, 1.01, 0.97, instruments),
		Desk:          NewOptionDesk(ledger, 0.1, 0.01, 0.2, 1.05, 0.95),
		Notifier:      n,
		ExerciseEvery: 2,
	})
	return eng, ledger, n
}

func actions(events []models.TradeEvent) []models.TradeAction {
	out := make([]models.TradeAction, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Action)
	}
	return out
}

// Drives one instrument through warmup, an entry with its hedge, a
// forecast-drop liquidation with early exercise, and a no-op settlement.
func TestEngine_FullCycle(t *testing.T) {
	eng, ledger, n := newTestEngine(100000, 1)

	// ticks 0..8: flat at 100, history still cold
	for tick := 0; tick < 9; tick++ {
		if events := eng.OnPrice("AAPL", 100, tick); len(events) != 0 {
			t.Fatalf("tick %d: got events %v while cold", tick, actions(events))
		}
	}
	if len(n.msgs) != 0 {
		t.Fatalf("notified before warmup completed: %v", n.msgs)
	}

	// tick 9: history fills, SMA = 99, price 90 dips below it
	events := eng.OnPrice("AAPL", 90, 9)
	if len(n.msgs) != 1 {
		t.Errorf("warmup notifications = %d, want 1", len(n.msgs))
	}
	want := []models.TradeAction{models.ActionBuy, models.ActionBuyCall, models.ActionBuyPut}
	got := actions(events)
	if len(got) != len(want) {
		t.Fatalf("tick 9 actions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tick 9 actions = %v, want %v", got, want)
		}
	}

	buy := events[0]
	if buy.Qty != 1122 {
		t.Errorf("buy qty = %d, want floor(100000/89.1)", buy.Qty)
	}
	if buy.Price != 89.1 {
		t.Errorf("buy price = %v, want 89.1", buy.Price)
	}
	if wantCost := decimal.RequireFromString("99970.2"); !buy.Amount.Equal(wantCost) {
		t.Errorf("buy amount = %s, want %s", buy.Amount, wantCost)
	}
	for _, ev := range events {
		if ev.SessionID != eng.SessionID() || ev.Tick != 9 || ev.Instrument != "AAPL" || ev.ID == "" {
			t.Errorf("event not stamped: %+v", ev)
		}
	}

	callStrike := 90 * 1.05
	putStrike := 90 * 0.95
	callPremium, err := CallPrice(90, callStrike, 0.1, 0.01, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	putPremium, err := PutPrice(90, putStrike, 0.1, 0.01, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	if events[1].Strike != callStrike || events[1].Price != callPremium {
		t.Errorf("call leg = %+v, want strike %v premium %v", events[1], callStrike, callPremium)
	}
	if events[2].Strike != putStrike || events[2].Price != putPremium {
		t.Errorf("put leg = %+v, want strike %v premium %v", events[2], putStrike, putPremium)
	}

	// tick 10 (even): SMA = 98.5, price 95 is under the 0.97 forecast line,
	// and the call strike sits under the spot, so early exercise fires too.
	events = eng.OnPrice("AAPL", 95, 10)
	got = actions(events)
	want = []models.TradeAction{models.ActionAlertSell, models.ActionExitCall}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("tick 10 actions = %v, want %v", got, want)
	}
	if events[0].Qty != 1122 || events[0].Price != 95 {
		t.Errorf("alert sell = %+v, want 1122 @ raw 95", events[0])
	}

	callPayout := decimal.NewFromFloat(
		models.OptionContract{Kind: models.OptionCall, Strike: callStrike}.Intrinsic(95))
	if !events[1].Amount.Equal(callPayout) {
		t.Errorf("exercise payout = %s, want %s", events[1].Amount, callPayout)
	}

	// the put is still open and out of the money; settlement at 95 clears it
	// without paying, and a second settlement finds nothing at all.
	last := map[models.Instrument]float64{"AAPL": 95}
	if events = eng.Settle(last); len(events) != 0 {
		t.Fatalf("settle actions = %v, want none", actions(events))
	}
	if events = eng.Settle(last); len(events) != 0 {
		t.Fatalf("second settle actions = %v, want none", actions(events))
	}

	holdings := eng.Holdings()
	if len(holdings) != 1 || !holdings[0].Flat() || len(holdings[0].Options) != 0 {
		t.Errorf("holdings after settle = %+v, want one flat position", holdings)
	}

	wantBalance := decimal.NewFromInt(100000).
		Sub(decimal.RequireFromString("99970.2")).
		Sub(decimal.NewFromFloat(callPremium)).
		Sub(decimal.NewFromFloat(putPremium)).
		Add(decimal.RequireFromString("106590")).
		Add(callPayout)
	if !ledger.Balance().Equal(wantBalance) {
		t.Errorf("final balance = %s, want %s", ledger.Balance(), wantBalance)
	}
}

func TestEngine_SettleSellsAndPaysOut(t *testing.T) {
	eng, ledger, _ := newTestEngine(100000, 1)

	for tick := 0; tick < 9; tick++ {
		eng.OnPrice("AAPL", 100, tick)
	}
	eng.OnPrice("AAPL", 90, 9) // buy 1122 @ 89.1 plus both hedge legs
	balanceBefore := ledger.Balance()

	events := eng.Settle(map[models.Instrument]float64{"AAPL": 80})
	got := actions(events)
	want := []models.TradeAction{models.ActionEODSell, models.ActionOptionPayout}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("settle actions = %v, want %v", got, want)
	}

	eod := events[0]
	if eod.Tick != -1 || eod.Qty != 1122 || eod.Price != 80 {
		t.Errorf("eod sell = %+v, want 1122 @ 80 at tick -1", eod)
	}
	if wantAmt := decimal.RequireFromString("89760"); !eod.Amount.Equal(wantAmt) {
		t.Errorf("eod amount = %s, want %s", eod.Amount, wantAmt)
	}

	putStrike := 90 * 0.95
	putPayout := decimal.NewFromFloat(
		models.OptionContract{Kind: models.OptionPut, Strike: putStrike}.Intrinsic(80))
	payout := events[1]
	if payout.Tick != -1 || payout.Strike != putStrike || !payout.Amount.Equal(putPayout) {
		t.Errorf("payout = %+v, want strike %v amount %s", payout, putStrike, putPayout)
	}

	wantBalance := balanceBefore.Add(decimal.RequireFromString("89760")).Add(putPayout)
	if !ledger.Balance().Equal(wantBalance) {
		t.Errorf("balance = %s, want %s", ledger.Balance(), wantBalance)
	}

	if events = eng.Settle(map[models.Instrument]float64{"AAPL": 80}); len(events) != 0 {
		t.Errorf("second settle actions = %v, want none", actions(events))
	}
}

// Cash is claimed in instrument order within a tick: the first instrument to
// signal takes its slice, later ones size against what remains.
func TestEngine_SharedBalanceAcrossInstruments(t *testing.T) {
	eng, _, _ := newTestEngine(100000, 2)

	for tick := 0; tick < 9; tick++ {
		eng.OnPrice("AAPL", 100, tick)
		eng.OnPrice("GOOGL", 100, tick)
	}

	a := eng.OnPrice("AAPL", 90, 9)
	g := eng.OnPrice("GOOGL", 90, 9)
	if len(a) == 0 || a[0].Action != models.ActionBuy {
		t.Fatalf("AAPL actions = %v, want a buy", actions(a))
	}
	if len(g) == 0 || g[0].Action != models.ActionBuy {
		t.Fatalf("GOOGL actions = %v, want a buy", actions(g))
	}
	// both size as balance/limit/2, but GOOGL sees the post-AAPL balance
	if a[0].Qty != 561 {
		t.Errorf("AAPL qty = %d, want 561", a[0].Qty)
	}
	if g[0].Qty >= a[0].Qty {
		t.Errorf("GOOGL qty = %d, want less than AAPL's %d", g[0].Qty, a[0].Qty)
	}
}
