package engine

import (
	"fmt"

	"salvage-server/internal/domain"
	"salvage-server/internal/systems"
	"salvage-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Экипаж: каждый матрос - отдельная машина состояний на дедлайнах.
// Idle -> Collecting -> AwaitingPickup -> (подобран) Idle
//                                      -> Drifting -> Removed
// Collecting/AwaitingPickup -> Removed (браконьеры)

func crewLog(c *domain.CrewMember) *logrus.Entry {
	return logger.Log.WithFields(logrus.Fields{
		"component": "crew",
		"crew_id":   c.ID,
		"state":     c.State.String(),
	})
}

// DeployCrew отправляет свободного матроса собирать ресурс.
// pos - клетка высадки, не дальше одной клетки от ресурса.
func (s *GameService) DeployCrew(pos domain.Position, collectibleID string) domain.CommandResult {
	w := s.world

	crew := w.IdleCrew()
	if crew == nil {
		logger.Log.WithField("component", "crew").Info("Deploy rejected: no idle crew")
		return domain.Rejected(domain.CodeNoIdleCrew, "Все матросы заняты.")
	}
	c, ok := w.Collectibles[collectibleID]
	if !ok {
		return domain.Rejected(domain.CodeNotFound, "Ресурс не найден.")
	}
	if c.ReservedBy != "" {
		return domain.Rejected(domain.CodeReserved, "Ресурс уже собирает экипаж.")
	}
	if w.Collection != nil && w.Collection.CollectibleID == c.ID {
		return domain.Rejected(domain.CodeReserved, "Этот ресурс собирает корабль.")
	}
	if dst, ok := w.Player.Motion.Destination(); ok && w.Activity == domain.ActivityTraveling && dst == c.Pos {
		return domain.Rejected(domain.CodeReserved, "Корабль уже идет к этому ресурсу.")
	}
	if !w.Grid.IsWalkable(pos) || pos.ChebyshevTo(c.Pos) > 1 {
		return domain.Rejected(domain.CodeOutOfRange, "Высадка возможна только рядом с ресурсом.")
	}

	start := w.Player.Pos
	var path []domain.Position
	if pos != start {
		path = systems.FindPath(start, pos, w.Grid.Size, w.Grid.IsWalkable)
		if len(path) == 0 {
			return domain.Rejected(domain.CodeNoPath, "Шлюпке не доплыть.")
		}
	}

	crew.Pos = start
	systems.AssignPath(&crew.Motion, start, path, s.cfg.Movement.SegmentMs)
	crew.State = domain.CrewCollecting
	crew.TargetID = c.ID
	crew.DeployedAt = s.now
	crew.CollectDoneAt = 0
	crew.ResetPoaching()
	c.ReservedBy = crew.ID
	w.Touch()

	s.sched.Schedule(crew.ID, DeadlinePoachCheck, s.now+s.cfg.Crew.PoachCheckMs, domain.CrewCollecting)
	if crew.Motion.IsIdle() {
		s.startCrewCollect(crew)
	}

	crewLog(crew).WithField("target", c.ID).Info("Crew deployed")
	return domain.Accepted(fmt.Sprintf("%s отправлен за %s.", crew.ID, c.Type))
}

// startCrewCollect запускает таймер сбора. Матрос уже стоит в клетке высадки.
func (s *GameService) startCrewCollect(crew *domain.CrewMember) {
	crew.CollectDoneAt = s.now + s.cfg.Crew.CollectMs
	s.sched.Schedule(crew.ID, DeadlineCrewCollect, crew.CollectDoneAt, domain.CrewCollecting)
	s.world.Touch()
	crewLog(crew).WithField("done_at", crew.CollectDoneAt).Debug("Crew started collecting")
}

// RetrieveCrew подбирает матроса (ждущего или дрейфующего) вместе с добычей
func (s *GameService) RetrieveCrew(crewID string) domain.CommandResult {
	w := s.world
	crew, ok := w.Crew[crewID]
	if !ok {
		return domain.Rejected(domain.CodeNotFound, "Матрос не найден.")
	}
	if !crew.CanBeRetrieved() {
		return domain.Rejected(domain.CodeWrongState, fmt.Sprintf("%s сейчас нельзя подобрать (%s).", crew.ID, crew.State))
	}

	s.sched.CancelEntity(crew.ID)
	hold := crew.Hold
	crew.ReturnToDock(w.Player.Pos)
	w.Touch()
	crewLog(crew).Info("Crew retrieved")

	if hold != nil {
		s.creditCollectible(hold)
	}
	return domain.Accepted(fmt.Sprintf("%s снова на борту.", crew.ID))
}

// updateCrew продвигает шлюпки
func (s *GameService) updateCrew(dt float64) {
	w := s.world
	for _, id := range w.CrewIDs() {
		crew := w.Crew[id]
		if crew.Motion.IsIdle() {
			continue
		}
		for _, cell := range systems.AdvanceMotion(&crew.Motion, dt) {
			crew.Pos = cell
		}
		w.Touch()

		// Доплыл до клетки высадки - сбор начинается с тика прибытия
		if crew.Motion.IsIdle() && crew.State == domain.CrewCollecting && crew.CollectDoneAt == 0 {
			s.startCrewCollect(crew)
		}
	}
}

// crewFor находит матроса для дедлайна и проверяет, что он все еще в ожидаемом состоянии
func (s *GameService) crewFor(d Deadline) *domain.CrewMember {
	crew, ok := s.world.Crew[d.EntityID]
	if !ok {
		return nil
	}
	if crew.State != d.Expect {
		crewLog(crew).WithField("kind", d.Kind.String()).Debug("Stale deadline ignored")
		return nil
	}
	return crew
}

// onCrewCollectDone - Collecting -> AwaitingPickup, ресурс уходит в трюм шлюпки
func (s *GameService) onCrewCollectDone(d Deadline) {
	crew := s.crewFor(d)
	if crew == nil {
		return
	}
	w := s.world
	if c, ok := w.Collectibles[crew.TargetID]; ok {
		delete(w.Collectibles, c.ID)
		c.ReservedBy = ""
		crew.Hold = c
	}
	crew.State = domain.CrewAwaitingPickup
	w.Touch()

	s.sched.Schedule(crew.ID, DeadlineDriftGrace, d.At+s.cfg.Crew.DriftGraceMs, domain.CrewAwaitingPickup)
	s.AddLog(fmt.Sprintf("%s закончил сбор и ждет шлюпку.", crew.ID), domain.LogCrew)
}

// onDriftGrace - никто не забрал вовремя: AwaitingPickup -> Drifting
func (s *GameService) onDriftGrace(d Deadline) {
	crew := s.crewFor(d)
	if crew == nil {
		return
	}
	crew.State = domain.CrewDrifting
	crew.DriftStartTime = d.At
	crew.ResetPoaching()
	s.world.Touch()

	// Дрейфующего браконьеры не трогают
	s.sched.Cancel(crew.ID, DeadlinePoachCheck)
	s.sched.Schedule(crew.ID, DeadlineDriftLoss, d.At+s.cfg.Crew.DriftLossMs, domain.CrewDrifting)
	s.AddLog(fmt.Sprintf("%s дрейфует! Заберите его.", crew.ID), domain.LogCrew)
}

// onDriftLoss - матрос потерян вместе с добычей
func (s *GameService) onDriftLoss(d Deadline) {
	crew := s.crewFor(d)
	if crew == nil {
		return
	}
	s.loseCrew(crew, "унесен течением")
}

// onPoachCheck - периодическая проверка браконьеров рядом с работающим матросом
func (s *GameService) onPoachCheck(d Deadline) {
	crew, ok := s.world.Crew[d.EntityID]
	if !ok || !crew.IsExposed() {
		return
	}
	tuning := s.cfg.Crew
	next := d.At + tuning.PoachCheckMs

	if d.At-crew.DeployedAt < tuning.PoachMinDeployedMs {
		s.sched.Schedule(crew.ID, DeadlinePoachCheck, next, crew.State)
		return
	}

	enemy := systems.ClosestWithin(crew.Pos, s.world.Enemies, tuning.PoachRadius)
	switch {
	case enemy == nil:
		if crew.PoachingEnemyID != "" {
			crew.ResetPoaching()
			s.world.Touch()
		}
	case enemy.ID != crew.PoachingEnemyID:
		// Новый браконьер - состязание начинается заново
		crew.PoachingEnemyID = enemy.ID
		crew.PoachStartTime = d.At
		s.world.Touch()
	case d.At-crew.PoachStartTime >= tuning.PoachContestMs:
		if s.rng.Float64() < tuning.PoachChance {
			s.captureCrew(crew, enemy.Name)
			return
		}
	}
	s.sched.Schedule(crew.ID, DeadlinePoachCheck, next, crew.State)
}

// captureCrew - браконьеры забрали матроса. Ресурс возвращается в мир.
func (s *GameService) captureCrew(crew *domain.CrewMember, by string) {
	w := s.world
	if c, ok := w.Collectibles[crew.TargetID]; ok && c.ReservedBy == crew.ID {
		c.ReservedBy = ""
	}
	if crew.Hold != nil {
		released := crew.Hold
		w.Collectibles[released.ID] = released
		crew.Hold = nil
	}
	s.loseCrew(crew, "захвачен: "+by)
}

// loseCrew - терминальное удаление со снятием всех дедлайнов
func (s *GameService) loseCrew(crew *domain.CrewMember, reason string) {
	s.sched.CancelEntity(crew.ID)
	crewLog(crew).WithField("reason", reason).Info("Crew lost")
	s.world.removeCrew(crew.ID)
	s.AddLog(fmt.Sprintf("%s потерян (%s).", crew.ID, reason), domain.LogCrew)
}
