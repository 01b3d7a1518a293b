package service

import (
	"fmt"
	"sync"

	"trading_sim/internal/models"
)

// SMATrend keeps a bounded price history per instrument and derives the
// simple moving average once the history holds exactly `window` observations.
// Until then the instrument is cold and produces no signal.
type SMATrend struct {
	window int

	mu sync.Mutex
	st map[models.Instrument]*smaState
}

// smaState is a fixed-capacity ring buffer: head points at the slot the next
// observation overwrites, so the oldest price is always the one evicted.
type smaState struct {
	buf   []float64
	head  int
	count int
	ready bool
}

func NewSMATrend(window int) *SMATrend {
	if window <= 0 {
		window = 1
	}
	return &SMATrend{
		window: window,
		st:     make(map[models.Instrument]*smaState),
	}
}

func (e *SMATrend) get(inst models.Instrument) *smaState {
	if s, ok := e.st[inst]; ok {
		return s
	}
	s := &smaState{buf: make([]float64, e.window)}
	e.st[inst] = s
	return s
}

func (e *SMATrend) Observe(inst models.Instrument, price float64, tick int) (models.TrendSignal, bool, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.get(inst)
	st.buf[st.head] = price
	st.head = (st.head + 1) % e.window
	if st.count < e.window {
		st.count++
	}

	becameReady := false
	if st.count == e.window && !st.ready {
		st.ready = true
		becameReady = true
	}
	if !st.ready {
		return models.TrendSignal{}, false, false
	}

	var sum float64
	for _, p := range st.buf {
		sum += p
	}

	sig := models.TrendSignal{
		Instrument: inst,
		Tick:       tick,
		Price:      price,
		SMA:        sum / float64(e.window),
	}
	return sig, true, becameReady
}

func (e *SMATrend) IsReady(inst models.Instrument) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.st[inst]
	return ok && st.ready
}

func (e *SMATrend) Name() string { return "sma_trend" }

func (e *SMATrend) Dump(inst models.Instrument) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, ok := e.st[inst]
	if !ok {
		return "sma: no state"
	}
	var sum float64
	for _, p := range st.buf {
		sum += p
	}
	return fmt.Sprintf("sma[%d] w=%d/%d ready=%v mean=%.4f",
		e.window, st.count, e.window, st.ready, sum/float64(e.window))
}
