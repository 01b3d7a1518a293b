package service

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ErrInsufficientBalance declines a debit that would push the ledger negative.
// It is a normal outcome for the engine, not a fatal error.
var ErrInsufficientBalance = errors.New("ledger: insufficient balance")

// Ledger is the single cash balance every instrument draws from. All mutation
// goes through Debit/Credit; Debit checks affordability first, so the balance
// can never go negative.
type Ledger struct {
	mu      sync.Mutex
	balance decimal.Decimal
}

func NewLedger(initial decimal.Decimal) *Ledger {
	return &Ledger{balance: initial}
}

func (l *Ledger) Balance() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

func (l *Ledger) CanAfford(amount decimal.Decimal) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance.GreaterThanOrEqual(amount)
}

func (l *Ledger) Debit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errors.New("ledger: negative debit")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balance.LessThan(amount) {
		return ErrInsufficientBalance
	}
	l.balance = l.balance.Sub(amount)
	return nil
}

func (l *Ledger) Credit(amount decimal.Decimal) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balance = l.balance.Add(amount)
}
