package engine

import (
	"salvage-server/internal/config"
	"salvage-server/internal/domain"
	"salvage-server/internal/infrastructure/storage"
	"salvage-server/pkg/logger"
	"salvage-server/pkg/seamap"

	"github.com/sirupsen/logrus"
)

// Replay проигрывает журнал на свежем море: тики идут с шагом журнала, каждая команда
// выполняется в тике со своим временем. Результат совпадает с исходной сессией,
// если та тикала по той же сетке (тесты, автопилот с фиксированным шагом).
func Replay(cfg *config.Config, sea *seamap.Sea, j *storage.Journal, until int64) *GameService {
	s := NewServiceWithSea(cfg, sea, j.Seed, j.Start)
	entries := j.Entries()

	step := int64(j.TickMs)
	if step <= 0 {
		step = cfg.Sim.TickMs
	}

	next := 0
	for now := j.Start + step; now <= until; now += step {
		for next < len(entries) && entries[next].At <= now {
			s.replayEntry(entries[next])
			next++
		}
		s.Tick(now)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "replay",
		"seed":      j.Seed,
		"commands":  next,
		"skipped":   len(entries) - next,
		"until":     until,
	}).Info("Journal replayed")
	return s
}

// replayEntry ставит команду журнала в очередь ближайшего тика
func (s *GameService) replayEntry(e storage.Entry) {
	q := queuedCommand{reply: make(chan domain.CommandResult, 1)}
	if e.Admin {
		q.admin = e.Action
		q.cmd = domain.InternalCommand{Token: e.Token, Payload: e.Payload}
	} else {
		q.cmd = domain.InternalCommand{Action: domain.ParseAction(e.Action), Token: e.Token, Payload: e.Payload}
	}
	s.enqueue(q)
}
