package systems

import (
	"math/rand"

	"salvage-server/internal/config"
	"salvage-server/internal/domain"
	"salvage-server/pkg/logger"
	"salvage-server/pkg/utils"

	"github.com/sirupsen/logrus"
)

// ComputeWanderPath решает, куда поплывет враг.
// Случайное из 8 направлений, 2-4 шага по прямой, пока клетка в пределах карты и проходима.
// Возвращает маршрут (может быть пустым, если враг зажат) и задержку до следующего решения.
func ComputeWanderPath(enemy *domain.Enemy, walkable WalkableFunc, rng *rand.Rand, tuning config.EnemyAI) ([]domain.Position, int64) {
	dir := Directions8[rng.Intn(len(Directions8))]
	steps := utils.RandRange(rng, tuning.MinSteps, tuning.MaxSteps)

	path := make([]domain.Position, 0, steps)
	cur := enemy.Pos
	for i := 0; i < steps; i++ {
		next := cur.Shift(dir.X, dir.Y)
		if !walkable(next) {
			break
		}
		path = append(path, next)
		cur = next
	}

	delay := int64(utils.RandRange(rng, int(tuning.WanderMinMs), int(tuning.WanderMaxMs)))

	logger.Component("enemy_ai").WithFields(logrus.Fields{
		"enemy_id": enemy.ID,
		"dir":      dir,
		"steps":    len(path),
		"delay_ms": delay,
	}).Debug("Wander decision")

	return path, delay
}
