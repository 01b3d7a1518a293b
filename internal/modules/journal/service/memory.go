package service

import (
	"context"
	"sync"

	"trading_sim/internal/models"
)

// Memory keeps the session's events in order; the summary and tests read it
// back.
type Memory struct {
	mu     sync.Mutex
	events []models.TradeEvent
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Record(_ context.Context, ev models.TradeEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

func (m *Memory) Events() []models.TradeEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.TradeEvent, len(m.events))
	copy(out, m.events)
	return out
}
