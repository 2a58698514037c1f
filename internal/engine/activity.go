package engine

import (
	"fmt"

	"salvage-server/internal/domain"
	"salvage-server/internal/systems"
	"salvage-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Машина занятий игрока: Idle, Traveling, Collecting, InCombat. В каждый момент ровно одно.

// playerSegmentMs - длительность сегмента с учетом двигателя и ускорителя
func (s *GameService) playerSegmentMs() float64 {
	p := s.world.Player
	base := s.cfg.Movement.SegmentMs * s.cfg.EngineMultiplier(p.EngineLevel)
	if p.HasSpeedBoost(s.now) {
		base *= s.cfg.Movement.SpeedBoostFactor
	}
	return base
}

// applySpeedChange пересчитывает текущий маршрут под новую скорость без скачка позиции
func (s *GameService) applySpeedChange() {
	m := &s.world.Player.Motion
	if m.IsIdle() {
		return
	}
	systems.Reroute(m, append([]domain.Position(nil), m.Path[1:]...), s.playerSegmentMs())
	s.world.Touch()
}

// RequestMove - запрос на движение к клетке
func (s *GameService) RequestMove(target domain.Position) domain.CommandResult {
	w := s.world
	switch w.Activity {
	case domain.ActivityInCombat:
		return domain.Rejected(domain.CodeInCombat, "Нельзя уйти из боя.")
	case domain.ActivityCollecting:
		// Сам ход не выполняется, пока игрок не подтвердит отмену сбора
		pending := target
		w.PendingMove = &pending
		w.Touch()
		return domain.CommandResult{
			Code:         domain.CodeConfirmRequired,
			Message:      "Идет сбор. Прервать? Прогресс будет потерян.",
			NeedsConfirm: true,
		}
	}
	return s.moveTo(target)
}

// moveTo прокладывает маршрут и запускает (или перенаправляет) движение
func (s *GameService) moveTo(target domain.Position) domain.CommandResult {
	w := s.world
	p := w.Player
	m := &p.Motion

	// В движении маршрут считается от клетки, в которую идет текущий сегмент
	from := p.Pos
	segTarget, moving := m.Target()
	if moving {
		from = segTarget
	}

	if !w.Grid.IsWalkable(target) {
		s.resetHighlight()
		return domain.Rejected(domain.CodeNoPath, "Туда не доплыть.")
	}
	if !moving && target == p.Pos {
		return domain.Rejected(domain.CodeNoPath, "Корабль уже здесь.")
	}

	var path []domain.Position
	if target != from {
		path = systems.FindPath(from, target, w.Grid.Size, w.Grid.IsWalkable)
		if len(path) == 0 {
			s.resetHighlight()
			logger.Log.WithFields(logrus.Fields{
				"component": "activity",
				"from":      from,
				"target":    target,
			}).Debug("No path")
			return domain.Rejected(domain.CodeNoPath, "Путь не найден.")
		}
	}

	base := s.playerSegmentMs()
	if moving {
		systems.Reroute(m, path, base)
	} else {
		systems.AssignPath(m, p.Pos, path, base)
	}

	w.Grid.ClearHighlights()
	w.Grid.Highlight(m.Path)
	w.Activity = domain.ActivityTraveling
	w.Touch()

	return domain.Accepted(fmt.Sprintf("Курс на (%d, %d).", target.X, target.Y))
}

// resetHighlight оставляет подсветку только у маршрута, который корабль продолжает
func (s *GameService) resetHighlight() {
	w := s.world
	w.Grid.Highlight(w.Player.Motion.Path)
	w.Touch()
}

// updatePlayer продвигает корабль игрока на dt мс
func (s *GameService) updatePlayer(dt float64) {
	w := s.world
	p := w.Player
	if p.Motion.IsIdle() {
		return
	}

	reached := systems.AdvanceMotion(&p.Motion, dt)
	w.Touch()
	for _, cell := range reached {
		p.Pos = cell
		s.onPlayerCell(cell)
	}

	if !p.Motion.IsIdle() {
		return
	}
	w.Grid.ClearHighlights()
	// В бою корабль только доплывает до ближайшей клетки
	if w.Activity == domain.ActivityTraveling {
		w.Activity = domain.ActivityIdle
		s.onPlayerArrived(p.Pos)
	}
}

// onPlayerCell - побочные эффекты входа в клетку: туман и опыт
func (s *GameService) onPlayerCell(cell domain.Position) {
	revealed := s.world.Grid.RevealAround(cell, s.cfg.World.RevealRadius)
	if revealed > 0 {
		s.grantXP(domain.SkillExploration, int64(revealed*s.cfg.XP.ExplorationPerTile))
	}
	s.grantXP(domain.SkillNavigation, int64(s.cfg.XP.NavigationPerCell))
}

// onPlayerArrived - конец маршрута. Артефакт важнее ресурса в той же клетке.
func (s *GameService) onPlayerArrived(cell domain.Position) {
	w := s.world
	if a := w.ArtifactAt(cell); a != nil {
		if a.Collect() {
			w.Touch()
			s.AddLog(fmt.Sprintf("Найден артефакт: %s!", a.Name), domain.LogInfo)
		}
		return
	}
	if c := w.CollectibleAt(cell); c != nil {
		s.startCollection(c)
	}
}

// --- СБОР ---

// RequestCollect - собрать ресурс. Если он не под кораблем, сначала плывем к нему.
func (s *GameService) RequestCollect(collectibleID string) domain.CommandResult {
	w := s.world
	if w.Collection != nil {
		return domain.Rejected(domain.CodeBusy, "Сбор уже идет.")
	}
	if w.Activity == domain.ActivityInCombat {
		return domain.Rejected(domain.CodeInCombat, "Сначала закончите бой.")
	}
	c, ok := w.Collectibles[collectibleID]
	if !ok {
		return domain.Rejected(domain.CodeNotFound, "Ресурс не найден.")
	}
	if c.ReservedBy != "" {
		return domain.Rejected(domain.CodeReserved, "Этот ресурс собирает экипаж.")
	}

	if w.Player.Motion.IsIdle() && w.Player.Pos == c.Pos {
		s.startCollection(c)
		return domain.Accepted("")
	}
	out := s.moveTo(c.Pos)
	if out.OK {
		out.Message = fmt.Sprintf("Курс на %s (%d, %d).", c.Type, c.Pos.X, c.Pos.Y)
	}
	return out
}

// startCollection - Idle -> Collecting. Отсчет идет от тика прибытия.
func (s *GameService) startCollection(c *domain.Collectible) {
	w := s.world
	w.Activity = domain.ActivityCollecting
	w.Collection = &domain.CollectionSession{
		CollectibleID: c.ID,
		StartTime:     s.now,
		Duration:      c.CollectionTime,
	}
	w.Touch()
	s.AddLog(fmt.Sprintf("Сбор: %s (богатство %d), %d мс.", c.Type, c.Richness, c.CollectionTime), domain.LogInfo)
}

// checkCollection завершает сбор, если время вышло
func (s *GameService) checkCollection() {
	w := s.world
	if w.Collection == nil || s.now < w.Collection.DoneAt() {
		return
	}
	id := w.Collection.CollectibleID
	w.Collection = nil
	w.PendingMove = nil
	w.Activity = domain.ActivityIdle
	w.Touch()

	c, ok := w.Collectibles[id]
	if !ok {
		return
	}
	delete(w.Collectibles, id)
	s.creditCollectible(c)
}

// creditCollectible - общий путь награды за ресурс (игрок и экипаж)
func (s *GameService) creditCollectible(c *domain.Collectible) {
	s.world.Player.AddCargo(c.Type, 1)
	s.world.Touch()
	s.AddLog(fmt.Sprintf("В трюме +1 %s.", c.Type), domain.LogInfo)
	s.grantXP(domain.SkillSalvaging, int64(c.Richness*s.cfg.XP.SalvagePerRichness))
}

// CancelCollection - ответ на вопрос о прерывании сбора.
// confirm=true: сбор теряется, отложенный ход выполняется. confirm=false: сбор продолжается.
func (s *GameService) CancelCollection(confirm bool) domain.CommandResult {
	w := s.world
	if w.Collection == nil {
		if w.PendingMove != nil {
			w.PendingMove = nil
			w.Touch()
		}
		return domain.Rejected(domain.CodeNothingPending, "Сбора нет.")
	}

	if !confirm {
		w.PendingMove = nil
		w.Touch()
		return domain.Accepted("Сбор продолжается.")
	}

	w.Collection = nil
	w.Activity = domain.ActivityIdle
	w.Touch()

	pending := w.PendingMove
	w.PendingMove = nil
	if pending == nil {
		return domain.Accepted("Сбор прерван.")
	}
	out := s.moveTo(*pending)
	if out.OK {
		out.Message = "Сбор прерван. " + out.Message
	}
	return out
}

// --- БОЙ ---

// RequestCombat - вступить в бой с врагом
func (s *GameService) RequestCombat(enemyID string) domain.CommandResult {
	w := s.world
	if w.Combat != nil {
		return domain.Rejected(domain.CodeInCombat, "Бой уже идет.")
	}
	if w.Activity == domain.ActivityCollecting {
		return domain.Rejected(domain.CodeBusy, "Идет сбор.")
	}

	check := systems.ValidateEngage(w.Player.Pos, enemyID, s.cfg.Combat.EngageRange, w)
	if !check.Valid {
		code := domain.CodeOutOfRange
		if w.GetEnemy(enemyID) == nil {
			code = domain.CodeNotFound
		}
		return domain.Rejected(code, check.Message)
	}

	s.startCombat(check.Target)
	return domain.Accepted(fmt.Sprintf("Бой с %s (ур. %d)!", check.Target.Name, check.Target.Level))
}

// startCombat - Idle/Traveling -> InCombat. Маршрут обрезается до текущего сегмента.
func (s *GameService) startCombat(enemy *domain.Enemy) {
	w := s.world
	if w.Activity == domain.ActivityTraveling {
		systems.TruncateMotion(&w.Player.Motion)
		w.Grid.ClearHighlights()
	}
	w.Activity = domain.ActivityInCombat
	w.Combat = &domain.CombatSession{
		EnemyID:   enemy.ID,
		StartTime: s.now,
		Duration:  s.cfg.Combat.DurationMs,
	}
	w.Touch()
	s.sched.Schedule(playerEntityID, DeadlineCombatPoll, s.now+s.cfg.Combat.PollMs, domain.CrewIdle)

	logger.Log.WithFields(logrus.Fields{
		"component": "activity",
		"enemy_id":  enemy.ID,
		"start":     s.now,
	}).Info("Combat started")
}

// checkAutoAttack - враг рядом с незанятым кораблем сам начинает бой
func (s *GameService) checkAutoAttack() {
	w := s.world
	if !s.cfg.Combat.AutoAttack || w.Combat != nil {
		return
	}
	if w.Activity != domain.ActivityIdle && w.Activity != domain.ActivityTraveling {
		return
	}
	enemy := systems.FirstInRange(w.Player.Pos, w.Enemies, s.cfg.Combat.AutoAttackRange)
	if enemy == nil {
		return
	}
	s.startCombat(enemy)
	s.AddLog(fmt.Sprintf("%s атакует!", enemy.Name), domain.LogCombat)
}

// pollCombat - опрос прогресса боя с фиксированным шагом
func (s *GameService) pollCombat(d Deadline) {
	w := s.world
	if w.Combat == nil {
		return
	}
	if w.GetEnemy(w.Combat.EnemyID) == nil {
		w.Combat = nil
		w.Activity = s.activityAfterCombat()
		w.Touch()
		return
	}

	if w.Combat.UpdateProgress(d.At) < 100 {
		w.Touch()
		s.sched.Schedule(playerEntityID, DeadlineCombatPoll, d.At+s.cfg.Combat.PollMs, domain.CrewIdle)
		return
	}
	s.finishCombat()
}

// finishCombat - победа: враг исчезает, лут ложится на его последнюю клетку
func (s *GameService) finishCombat() {
	w := s.world
	enemy := w.GetEnemy(w.Combat.EnemyID)
	outcome := systems.ResolveCombat(enemy, s.cfg.Combat, w.nextLootID)

	w.removeEnemy(enemy.ID)
	for _, drop := range outcome.Drops {
		w.Collectibles[drop.ID] = drop
	}
	w.Player.Currency += outcome.Bounty
	w.Combat = nil
	w.Activity = s.activityAfterCombat()
	w.Touch()

	s.AddLog(outcome.Message, domain.LogCombat)
	s.grantXP(domain.SkillCombat, outcome.XP)
}

func (s *GameService) activityAfterCombat() domain.Activity {
	if s.world.Player.Motion.IsIdle() {
		return domain.ActivityIdle
	}
	return domain.ActivityTraveling
}

// --- ОПЫТ ---

// grantXP начисляет опыт и сообщает о новых уровнях и разблокировках
func (s *GameService) grantXP(skill domain.SkillType, amount int64) {
	if amount <= 0 {
		return
	}
	levelUp, unlocked := s.world.Skills.AddXP(skill, amount)
	s.world.Touch()
	if levelUp {
		s.AddLog(fmt.Sprintf("Навык %s: уровень %d.", skill, s.world.Skills.Level(skill)), domain.LogSkill)
	}
	for _, id := range unlocked {
		s.AddLog(fmt.Sprintf("Открыто: %s.", id), domain.LogSkill)
	}
}
