package systems

import (
	"sort"

	"salvage-server/internal/domain"
)

// EnemyProvider - поиск врагов (чтобы не зависеть от GameService напрямую)
type EnemyProvider interface {
	GetEnemy(id string) *domain.Enemy
}

// ValidationResult - результат проверки цели
type ValidationResult struct {
	Target  *domain.Enemy
	Valid   bool
	Message string // Сообщение об ошибке, если Valid == false
}

// ValidateEngage проверяет, можно ли вступить в бой с targetID.
// rangeLimit - чебышёвская дистанция (3 = три клетки, включая диагонали).
func ValidateEngage(actor domain.Position, targetID string, rangeLimit int, finder EnemyProvider) ValidationResult {
	target := finder.GetEnemy(targetID)
	if target == nil {
		return ValidationResult{Valid: false, Message: "Цель не найдена."}
	}
	if actor.ChebyshevTo(target.Pos) > rangeLimit {
		return ValidationResult{Valid: false, Message: "Цель слишком далеко."}
	}
	return ValidationResult{Target: target, Valid: true}
}

// FirstInRange - первый по id враг в чебышёвском радиусе (для автоатаки)
func FirstInRange(actor domain.Position, enemies map[string]*domain.Enemy, rangeLimit int) *domain.Enemy {
	ids := make([]string, 0, len(enemies))
	for id, e := range enemies {
		if actor.ChebyshevTo(e.Pos) <= rangeLimit {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	sort.Strings(ids)
	return enemies[ids[0]]
}

// ClosestWithin - ближайший враг в евклидовом радиусе (для браконьерства).
// При равенстве расстояний побеждает меньший id.
func ClosestWithin(pos domain.Position, enemies map[string]*domain.Enemy, radius float64) *domain.Enemy {
	var best *domain.Enemy
	bestDist := 0.0
	for _, e := range enemies {
		d := pos.DistanceTo(e.Pos)
		if d > radius {
			continue
		}
		if best == nil || d < bestDist || (d == bestDist && e.ID < best.ID) {
			best, bestDist = e, d
		}
	}
	return best
}
