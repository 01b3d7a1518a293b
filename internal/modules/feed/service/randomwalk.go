package service

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"trading_sim/internal/models"
)

// RandomWalk emits a bounded random walk per instrument: the first observation
// starts at 100..149, every tick moves the price by a relative step in
// [-0.100, +0.100] and rounds to 2 decimal places. The seed is explicit, so a
// run replays exactly.
type RandomWalk struct {
	mu   sync.Mutex
	rng  *rand.Rand
	last map[models.Instrument]float64
}

func NewRandomWalk(seed int64) *RandomWalk {
	return &RandomWalk{
		rng:  rand.New(rand.NewSource(seed)),
		last: make(map[models.Instrument]float64),
	}
}

func (f *RandomWalk) Next(_ context.Context, inst models.Instrument, _ int) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	change := float64(f.rng.Intn(201)-100) / 1000.0
	price, ok := f.last[inst]
	if !ok {
		price = 100 + float64(f.rng.Intn(50))
	}
	price *= 1 + change
	price = math.Round(price*100) / 100

	f.last[inst] = price
	return price, nil
}
