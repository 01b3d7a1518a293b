package runner

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"trading_sim/internal/models"
	"trading_sim/internal/modules/config"
	enginesvc "trading_sim/internal/modules/engine/service"
	feedsvc "trading_sim/internal/modules/feed/service"
	journalsvc "trading_sim/internal/modules/journal/service"
	"trading_sim/internal/notify"
	"trading_sim/pkg/logger"
)

// Session drives one full trading day: ticks 0..N-1, instruments in the fixed
// configured order (earlier instruments get first claim on cash), settlement
// once after the final tick. Single-use — a finished session is not restarted.
type Session struct {
	instruments []models.Instrument
	ticks       int

	feed    feedsvc.PriceFeed
	engine  *enginesvc.Engine
	journal journalsvc.Journal
	n       notify.Notifier
}

// Report is what a finished session leaves behind.
type Report struct {
	SessionID      string
	InitialBalance decimal.Decimal
	FinalBalance   decimal.Decimal
	ProfitLoss     decimal.Decimal
	Events         int
}

func NewSession(
	cfg *config.Config,
	feed feedsvc.PriceFeed,
	engine *enginesvc.Engine,
	journal journalsvc.Journal,
	n notify.Notifier,
) *Session {
	instruments := make([]models.Instrument, 0, len(cfg.Session.Instruments))
	for _, name := range cfg.Session.Instruments {
		instruments = append(instruments, models.Instrument(name))
	}
	return &Session{
		instruments: instruments,
		ticks:       cfg.Session.Ticks,
		feed:        feed,
		engine:      engine,
		journal:     journal,
		n:           n,
	}
}

func (s *Session) Run(ctx context.Context) (*Report, error) {
	span := opentracing.StartSpan("trading_session")
	defer span.Finish()
	span.SetTag("session_id", s.engine.SessionID())

	initial := s.engine.Balance()
	logger.Info("Initial Balance: $%s", initial.StringFixed(2))

	recorded := 0
	lastPrices := make(map[models.Instrument]float64, len(s.instruments))

	for tick := 0; tick < s.ticks; tick++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		tickSpan := opentracing.StartSpan("tick", opentracing.ChildOf(span.Context()))
		for _, inst := range s.instruments {
			price, err := s.feed.Next(ctx, inst, tick)
			if err != nil {
				tickSpan.Finish()
				return nil, errors.Wrapf(err, "feed %s tick %d", inst, tick)
			}
			lastPrices[inst] = price

			for _, ev := range s.engine.OnPrice(inst, price, tick) {
				s.handleEvent(ctx, ev)
				recorded++
			}
		}
		tickSpan.Finish()
	}

	for _, ev := range s.engine.Settle(lastPrices) {
		s.handleEvent(ctx, ev)
		recorded++
	}

	report := &Report{
		SessionID:      s.engine.SessionID(),
		InitialBalance: initial,
		FinalBalance:   s.engine.Balance(),
		Events:         recorded,
	}
	report.ProfitLoss = report.FinalBalance.Sub(report.InitialBalance)

	s.logSummary(report)
	return report, nil
}

func (s *Session) handleEvent(ctx context.Context, ev models.TradeEvent) {
	line := EventLine(ev)
	logger.Info("%s", line)

	if err := s.journal.Record(ctx, ev); err != nil {
		logger.Error("journal: %v", err)
	}

	switch ev.Action {
	case models.ActionAlertSell, models.ActionExitCall, models.ActionExitPut:
		s.n.Sendf("%s", line)
	}
}

func (s *Session) logSummary(r *Report) {
	logger.Info("Final Balance: $%s", r.FinalBalance.StringFixed(2))
	if r.ProfitLoss.IsNegative() {
		logger.Info("Loss: $%s", r.ProfitLoss.Abs().StringFixed(2))
	} else {
		logger.Info("Profit: $%s", r.ProfitLoss.StringFixed(2))
	}

	for _, pos := range s.engine.Holdings() {
		if pos.Shares > 0 {
			logger.Info("%s: %d shares held at avg $%s",
				pos.Instrument, pos.Shares, pos.AvgPrice.StringFixed(2))
		}
	}

	s.n.Sendf("session %s done: balance $%s, p/l $%s over %d events",
		r.SessionID, r.FinalBalance.StringFixed(2), r.ProfitLoss.StringFixed(2), r.Events)
}
