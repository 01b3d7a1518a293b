package service

import "trading_sim/internal/models"

type Engine interface {
	// ok==true когда история прогрета и сигнал посчитан
	// becameReady==true когда инструмент впервые перешёл в "готов"
	Observe(inst models.Instrument, price float64, tick int) (sig models.TrendSignal, ok bool, becameReady bool)

	IsReady(inst models.Instrument) bool
	Dump(inst models.Instrument) string
	Name() string
}
