package engine

import (
	"fmt"

	"salvage-server/internal/domain"
	"salvage-server/internal/systems"
	"salvage-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Purchase - покупки в магазине. Отказ ничего не меняет (в том числе не списывает деньги).
func (s *GameService) Purchase(kind, itemID string, at domain.Position) domain.CommandResult {
	var out domain.CommandResult
	switch kind {
	case domain.PurchasePowerUp:
		out = s.buyPowerUp(itemID)
	case domain.PurchaseMapUnlock:
		out = s.buyMapUnlock(itemID, at)
	case domain.PurchaseShipUpgrade:
		out = s.buyShipUpgrade(itemID)
	case domain.PurchaseArtifactClue:
		out = s.buyArtifactClue(itemID)
	default:
		out = domain.Rejected(domain.CodeBadPayload, fmt.Sprintf("неизвестный вид покупки %q", kind))
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "shop",
		"kind":      kind,
		"item":      itemID,
		"ok":        out.OK,
		"code":      out.Code,
		"currency":  s.world.Player.Currency,
	}).Debug("Purchase")
	return out
}

// pay списывает деньги, если их хватает
func (s *GameService) pay(cost int) bool {
	p := s.world.Player
	if p.Currency < cost {
		return false
	}
	p.Currency -= cost
	s.world.Touch()
	return true
}

func noFunds(cost int) domain.CommandResult {
	return domain.Rejected(domain.CodeNoFunds, fmt.Sprintf("Не хватает монет (нужно %d).", cost))
}

func (s *GameService) buyPowerUp(id string) domain.CommandResult {
	pu, ok := s.cfg.PowerUp(id)
	if !ok {
		return domain.Rejected(domain.CodeNotFound, "Нет такого усилителя.")
	}
	if !s.pay(pu.Cost) {
		return noFunds(pu.Cost)
	}

	p := s.world.Player
	// Повторная покупка продлевает действие
	p.SpeedBoostUntil = max(p.SpeedBoostUntil, s.now) + pu.DurationMs
	s.sched.Schedule(playerEntityID, DeadlineSpeedBoostExpiry, p.SpeedBoostUntil, domain.CrewIdle)
	s.applySpeedChange()
	return domain.Accepted(fmt.Sprintf("Ускоритель активен на %d с.", pu.DurationMs/1000))
}

// onSpeedBoostExpired возвращает обычную скорость
func (s *GameService) onSpeedBoostExpired(d Deadline) {
	p := s.world.Player
	if p.SpeedBoostUntil > d.At {
		return
	}
	p.SpeedBoostUntil = 0
	s.applySpeedChange()
	s.world.Touch()
	s.AddLog("Ускоритель закончился.", domain.LogInfo)
}

// buyMapUnlock открывает карту вокруг клетки. Опыта исследования не дает.
func (s *GameService) buyMapUnlock(id string, at domain.Position) domain.CommandResult {
	mu, ok := s.cfg.MapUnlock(id)
	if !ok {
		return domain.Rejected(domain.CodeNotFound, "Нет такой карты.")
	}
	if !s.world.Grid.InBounds(at) {
		return domain.Rejected(domain.CodeOutOfRange, "Клетка вне карты.")
	}
	if !s.pay(mu.Cost) {
		return noFunds(mu.Cost)
	}
	revealed := s.world.Grid.RevealAround(at, mu.Radius)
	s.world.Touch()
	return domain.Accepted(fmt.Sprintf("Карта открыта: %d новых клеток.", revealed))
}

func (s *GameService) buyShipUpgrade(id string) domain.CommandResult {
	up, ok := s.cfg.ShipUpgrade(id)
	if !ok {
		return domain.Rejected(domain.CodeNotFound, "Нет такого улучшения.")
	}
	if up.Requires != "" && !s.world.Skills.IsUnlocked(up.Requires) {
		return domain.Rejected(domain.CodeLocked, fmt.Sprintf("Требуется %s.", up.Requires))
	}

	p := s.world.Player
	var level int
	switch up.ID {
	case domain.UpgradeEngine:
		level = p.EngineLevel
	case domain.UpgradeCrewBerth:
		level = p.CrewBerths - s.cfg.Crew.Size
	default:
		return domain.Rejected(domain.CodeNotFound, "Улучшение не поддерживается.")
	}
	if level >= len(up.Costs) {
		return domain.Rejected(domain.CodeMaxLevel, "Максимальный уровень.")
	}
	cost := up.Costs[level]
	if !s.pay(cost) {
		return noFunds(cost)
	}

	switch up.ID {
	case domain.UpgradeEngine:
		p.EngineLevel++
		s.applySpeedChange()
		return domain.Accepted(fmt.Sprintf("Двигатель улучшен до уровня %d.", p.EngineLevel))
	default:
		p.CrewBerths++
		crew := s.world.hireCrew(p.Pos)
		return domain.Accepted(fmt.Sprintf("Новая койка: %s на борту.", crew.ID))
	}
}

func (s *GameService) buyArtifactClue(id string) domain.CommandResult {
	a, ok := s.world.Artifacts[id]
	if !ok {
		return domain.Rejected(domain.CodeNotFound, "Нет такого артефакта.")
	}
	if a.ClueRevealed {
		return domain.Rejected(domain.CodeWrongState, "Подсказка уже куплена.")
	}
	cost := s.cfg.Shop.ArtifactClueCost
	if !s.pay(cost) {
		return noFunds(cost)
	}
	a.ClueRevealed = true
	s.world.Touch()
	return domain.Accepted(fmt.Sprintf("%s: %s", a.Name, a.Clue))
}

// SellCargo продает груз из трюма
func (s *GameService) SellCargo(resource string, count int) domain.CommandResult {
	res, ok := s.cfg.Resources[resource]
	if !ok {
		return domain.Rejected(domain.CodeNotFound, "Такой груз не покупают.")
	}
	if count <= 0 {
		return domain.Rejected(domain.CodeBadPayload, "Количество должно быть положительным.")
	}
	p := s.world.Player
	if p.Cargo[resource] < count {
		return domain.Rejected(domain.CodeWrongState, fmt.Sprintf("В трюме только %d %s.", p.Cargo[resource], resource))
	}

	p.Cargo[resource] -= count
	if p.Cargo[resource] == 0 {
		delete(p.Cargo, resource)
	}
	earned := count * res.SellPrice
	p.Currency += earned
	s.world.Touch()
	return domain.Accepted(fmt.Sprintf("Продано %d %s за %d монет.", count, resource, earned))
}

// --- ОТЛАДКА ---

// GrantCurrency - начислить монеты (только /debug)
func (s *GameService) GrantCurrency(amount int) domain.CommandResult {
	if amount <= 0 {
		return domain.Rejected(domain.CodeBadPayload, "Сумма должна быть положительной.")
	}
	s.world.Player.Currency += amount
	s.world.Touch()
	return domain.Accepted(fmt.Sprintf("Начислено %d монет.", amount))
}

// Teleport мгновенно переносит корабль. Сбор прерывается, в бою нельзя.
func (s *GameService) Teleport(to domain.Position) domain.CommandResult {
	w := s.world
	if w.Activity == domain.ActivityInCombat {
		return domain.Rejected(domain.CodeInCombat, "В бою телепорт недоступен.")
	}
	if !w.Grid.IsWalkable(to) {
		return domain.Rejected(domain.CodeNoPath, "Клетка непроходима.")
	}

	p := w.Player
	systems.StopMotion(&p.Motion, to)
	p.Pos = to
	w.Collection = nil
	w.PendingMove = nil
	w.Activity = domain.ActivityIdle
	w.Grid.ClearHighlights()
	w.Grid.RevealAround(to, s.cfg.World.RevealRadius)
	w.Touch()
	return domain.Accepted(fmt.Sprintf("Корабль перенесен в (%d, %d).", to.X, to.Y))
}
