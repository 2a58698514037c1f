package engine

import (
	"salvage-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// processDeadlines срабатывает все наступившие дедлайны по порядку (At, seq).
// Цепочки (опрос боя, проверка браконьеров) ставят следующий дедлайн от d.At,
// поэтому результат не зависит от длины тика.
func (s *GameService) processDeadlines() {
	for {
		d, ok := s.sched.PopNextDue(s.now)
		if !ok {
			return
		}
		s.fireDeadline(d)
	}
}

func (s *GameService) fireDeadline(d Deadline) {
	logger.Log.WithFields(logrus.Fields{
		"component": "scheduler",
		"entity_id": d.EntityID,
		"kind":      d.Kind.String(),
		"at":        d.At,
		"now":       s.now,
	}).Debug("Deadline fired")

	switch d.Kind {
	case DeadlineCrewCollect:
		s.onCrewCollectDone(d)
	case DeadlineDriftGrace:
		s.onDriftGrace(d)
	case DeadlineDriftLoss:
		s.onDriftLoss(d)
	case DeadlinePoachCheck:
		s.onPoachCheck(d)
	case DeadlineCombatPoll:
		s.pollCombat(d)
	case DeadlineSpeedBoostExpiry:
		s.onSpeedBoostExpired(d)
	}
}
