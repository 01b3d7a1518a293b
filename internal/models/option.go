package models

// OptionKind tags a contract as a call or a put.
type OptionKind int

const (
	OptionCall OptionKind = iota
	OptionPut
)

func (k OptionKind) String() string {
	if k == OptionCall {
		return "CALL"
	}
	return "PUT"
}

// OptionContract is immutable once issued. Maturity is fixed at issue time and
// is not decremented over the session; contracts leave the book only through
// exercise or settlement.
type OptionContract struct {
	Kind     OptionKind
	Strike   float64
	Premium  float64
	Maturity float64 // years
}

// InTheMoney reports whether exercising at price pays anything.
func (c OptionContract) InTheMoney(price float64) bool {
	if c.Kind == OptionCall {
		return price > c.Strike
	}
	return price < c.Strike
}

// Intrinsic is the immediate exercise payoff at price, floored at zero.
func (c OptionContract) Intrinsic(price float64) float64 {
	var v float64
	if c.Kind == OptionCall {
		v = price - c.Strike
	} else {
		v = c.Strike - price
	}
	if v < 0 {
		return 0
	}
	return v
}
