package service

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

func TestLedger_DebitCredit(t *testing.T) {
	l := NewLedger(decimal.NewFromInt(100))

	if err := l.Debit(decimal.NewFromInt(40)); err != nil {
		t.Fatalf("Debit failed: %v", err)
	}
	if got := l.Balance(); !got.Equal(decimal.NewFromInt(60)) {
		t.Errorf("Balance = %s, want 60", got)
	}

	l.Credit(decimal.NewFromInt(15))
	if got := l.Balance(); !got.Equal(decimal.NewFromInt(75)) {
		t.Errorf("Balance = %s, want 75", got)
	}
}

func TestLedger_InsufficientBalance(t *testing.T) {
	l := NewLedger(decimal.NewFromInt(10))

	err := l.Debit(decimal.NewFromInt(11))
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("Debit err = %v, want ErrInsufficientBalance", err)
	}
	if got := l.Balance(); !got.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Balance changed on declined debit: %s, want 10", got)
	}
}

func TestLedger_ExactDebitAllowed(t *testing.T) {
	l := NewLedger(decimal.NewFromInt(10))
	if err := l.Debit(decimal.NewFromInt(10)); err != nil {
		t.Fatalf("Debit of exact balance failed: %v", err)
	}
	if !l.Balance().IsZero() {
		t.Errorf("Balance = %s, want 0", l.Balance())
	}
}

func TestLedger_NegativeDebitRejected(t *testing.T) {
	l := NewLedger(decimal.NewFromInt(10))
	if err := l.Debit(decimal.NewFromInt(-1)); err == nil {
		t.Fatal("negative debit accepted, want error")
	}
}
