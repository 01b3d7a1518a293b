package models

// TrendSignal is what the strategy derives from one price observation once the
// instrument's history is warm. Predicates that also depend on position state
// (exit, forecast sell sizing) live in the portfolio.
type TrendSignal struct {
	Instrument Instrument
	Tick       int
	Price      float64
	SMA        float64
}

// Entry: цена ниже средней — берём.
func (s TrendSignal) Entry() bool { return s.Price < s.SMA }

// AboveSMA is the market half of the exit condition; the portfolio still
// checks shares and cost-basis clearance.
func (s TrendSignal) AboveSMA() bool { return s.Price > s.SMA }

// ForecastDrop reports whether the price sits below SMA*threshold
// (threshold < 1, e.g. 0.97).
func (s TrendSignal) ForecastDrop(threshold float64) bool {
	return s.Price < s.SMA*threshold
}
