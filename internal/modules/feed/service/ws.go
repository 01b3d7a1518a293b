package service

import (
	"context"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"trading_sim/internal/models"
	"trading_sim/pkg/logger"
)

// WSFeed reads tick messages from an external websocket stream and hands the
// most recent price per instrument to the session. It is an alternative to
// the random walk for driving the engine off a live source.
type WSFeed struct {
	url      string
	wsDialer *websocket.Dialer

	mu   sync.RWMutex
	last map[models.Instrument]float64
}

type wsTick struct {
	Instrument string  `json:"instrument"`
	Price      float64 `json:"price"`
}

func NewWSFeed(url string) *WSFeed {
	return &WSFeed{
		url:      url,
		wsDialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		last:     make(map[models.Instrument]float64),
	}
}

// Start keeps one read loop alive for the whole session, redialing on errors.
func (f *WSFeed) Start(ctx context.Context) {
	go func() {
		for {
			if ctx.Err() != nil {
				return
			}
			if err := f.readLoop(ctx); err != nil && ctx.Err() == nil {
				logger.Error("ws feed: %v, reconnecting", err)
				time.Sleep(2 * time.Second)
			}
		}
	}()
}

func (f *WSFeed) readLoop(ctx context.Context) error {
	conn, _, err := f.wsDialer.DialContext(ctx, f.url, nil)
	if err != nil {
		return errors.Wrap(err, "dial")
	}
	defer func() {
		_ = conn.Close()
	}()

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return errors.Wrap(err, "read")
		}

		var t wsTick
		if err := sonic.Unmarshal(raw, &t); err != nil {
			logger.Error("ws feed: bad tick: %v", err)
			continue
		}
		if t.Instrument == "" || t.Price <= 0 {
			continue
		}

		f.mu.Lock()
		f.last[models.Instrument(t.Instrument)] = t.Price
		f.mu.Unlock()
	}
}

// Next blocks until the stream has produced at least one price for inst.
func (f *WSFeed) Next(ctx context.Context, inst models.Instrument, _ int) (float64, error) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		f.mu.RLock()
		price, ok := f.last[inst]
		f.mu.RUnlock()
		if ok {
			return price, nil
		}

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-ticker.C:
		}
	}
}
