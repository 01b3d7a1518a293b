package service

import (
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidPricingInput is returned when the closed form cannot be evaluated
// and intrinsic value is not a sane substitute (non-positive spot/strike,
// negative volatility). Callers skip the contract; nothing reaches the ledger.
var ErrInvalidPricingInput = errors.New("pricing: invalid input")

// CallPrice values a European call with the Black-Scholes closed form.
// sigma == 0 or T <= 0 degenerate to intrinsic value so the formula never
// divides by zero.
func CallPrice(s, k, t, r, sigma float64) (float64, error) {
	if err := checkPricingInput(s, k, sigma); err != nil {
		return 0, err
	}
	if sigma == 0 || t <= 0 {
		return math.Max(0, s-k), nil
	}
	d1, d2 := dTerms(s, k, t, r, sigma)
	return s*normCDF(d1) - k*math.Exp(-r*t)*normCDF(d2), nil
}

// PutPrice values a European put. Same degenerate policy as CallPrice.
func PutPrice(s, k, t, r, sigma float64) (float64, error) {
	if err := checkPricingInput(s, k, sigma); err != nil {
		return 0, err
	}
	if sigma == 0 || t <= 0 {
		return math.Max(0, k-s), nil
	}
	d1, d2 := dTerms(s, k, t, r, sigma)
	return k*math.Exp(-r*t)*normCDF(-d2) - s*normCDF(-d1), nil
}

func dTerms(s, k, t, r, sigma float64) (float64, float64) {
	d1 := (math.Log(s/k) + (r+0.5*sigma*sigma)*t) / (sigma * math.Sqrt(t))
	return d1, d1 - sigma*math.Sqrt(t)
}

func checkPricingInput(s, k, sigma float64) error {
	if s <= 0 || k <= 0 || sigma < 0 {
		return ErrInvalidPricingInput
	}
	return nil
}

// normCDF is the standard normal cumulative distribution function.
func normCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}
