package service

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestCallPrice_ReferenceValue(t *testing.T) {
	got, err := CallPrice(100, 100, 1, 0.05, 0.2)
	if err != nil {
		t.Fatalf("CallPrice failed: %v", err)
	}
	if math.Abs(got-10.45) > 1e-2 {
		t.Errorf("CallPrice(100,100,1,0.05,0.2) = %.4f, want ~10.45", got)
	}
}

func TestPutPrice_ReferenceValue(t *testing.T) {
	got, err := PutPrice(100, 100, 1, 0.05, 0.2)
	if err != nil {
		t.Fatalf("PutPrice failed: %v", err)
	}
	if math.Abs(got-5.57) > 1e-2 {
		t.Errorf("PutPrice(100,100,1,0.05,0.2) = %.4f, want ~5.57", got)
	}
}

func TestPutCallParity(t *testing.T) {
	s, k, maturity, r, sigma := 105.0, 98.0, 0.7, 0.03, 0.25

	call, err := CallPrice(s, k, maturity, r, sigma)
	if err != nil {
		t.Fatalf("CallPrice failed: %v", err)
	}
	put, err := PutPrice(s, k, maturity, r, sigma)
	if err != nil {
		t.Fatalf("PutPrice failed: %v", err)
	}

	lhs := call - put
	rhs := s - k*math.Exp(-r*maturity)
	if math.Abs(lhs-rhs) > 1e-9 {
		t.Errorf("parity violated: C-P = %.10f, S-K·e^(-rT) = %.10f", lhs, rhs)
	}
}

func TestPricing_DegenerateInputs(t *testing.T) {
	tests := []struct {
		name     string
		s, k, tt float64
		sigma    float64
		wantCall float64
		wantPut  float64
	}{
		{"zero vol ITM call", 110, 100, 1, 0, 10, 0},
		{"zero vol ITM put", 90, 100, 1, 0, 0, 10},
		{"zero vol at the money", 100, 100, 1, 0, 0, 0},
		{"zero maturity", 120, 100, 0, 0.2, 20, 0},
		{"negative maturity", 80, 100, -0.5, 0.2, 0, 20},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			call, err := CallPrice(tc.s, tc.k, tc.tt, 0.05, tc.sigma)
			if err != nil {
				t.Fatalf("CallPrice failed: %v", err)
			}
			if call != tc.wantCall {
				t.Errorf("call = %v, want %v (intrinsic)", call, tc.wantCall)
			}

			put, err := PutPrice(tc.s, tc.k, tc.tt, 0.05, tc.sigma)
			if err != nil {
				t.Fatalf("PutPrice failed: %v", err)
			}
			if put != tc.wantPut {
				t.Errorf("put = %v, want %v (intrinsic)", put, tc.wantPut)
			}
		})
	}
}

func TestPricing_InvalidInputs(t *testing.T) {
	tests := []struct {
		name  string
		s, k  float64
		sigma float64
	}{
		{"zero spot", 0, 100, 0.2},
		{"negative spot", -5, 100, 0.2},
		{"zero strike", 100, 0, 0.2},
		{"negative volatility", 100, 100, -0.2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := CallPrice(tc.s, tc.k, 1, 0.05, tc.sigma); !errors.Is(err, ErrInvalidPricingInput) {
				t.Errorf("CallPrice err = %v, want ErrInvalidPricingInput", err)
			}
			if _, err := PutPrice(tc.s, tc.k, 1, 0.05, tc.sigma); !errors.Is(err, ErrInvalidPricingInput) {
				t.Errorf("PutPrice err = %v, want ErrInvalidPricingInput", err)
			}
		})
	}
}

func TestNormCDF(t *testing.T) {
	tests := []struct {
		x    float64
		want float64
	}{
		{0, 0.5},
		{1.96, 0.975},
		{-1.96, 0.025},
	}
	for _, tc := range tests {
		if got := normCDF(tc.x); math.Abs(got-tc.want) > 1e-3 {
			t.Errorf("normCDF(%v) = %.5f, want ~%.5f", tc.x, got, tc.want)
		}
	}
}
