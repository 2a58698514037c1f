package systems

import (
	"fmt"
	"sort"

	"salvage-server/internal/config"
	"salvage-server/internal/domain"
	"salvage-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// CombatOutcome - итог победы над врагом
type CombatOutcome struct {
	Drops   []*domain.Collectible
	XP      int64
	Bounty  int
	Message string
}

// ResolveCombat превращает заранее разыгранный лут врага в ресурсы на клетке его гибели.
// Каждая единица лута - отдельный Collectible. Мир не меняет: это делает вызывающий.
func ResolveCombat(enemy *domain.Enemy, tuning config.Combat, nextID func() string) CombatOutcome {
	combatLogger := logger.Component("combat_system").WithFields(logrus.Fields{
		"enemy_id":   enemy.ID,
		"enemy_name": enemy.Name,
		"level":      enemy.Level,
	})

	// Порядок ресурсов фиксируем, чтобы id выпадений не зависели от обхода map
	resources := make([]string, 0, len(enemy.Loot))
	for r := range enemy.Loot {
		resources = append(resources, r)
	}
	sort.Strings(resources)

	out := CombatOutcome{
		XP:     int64(enemy.XPReward),
		Bounty: enemy.Bounty,
	}
	for _, r := range resources {
		for i := 0; i < enemy.Loot[r]; i++ {
			out.Drops = append(out.Drops, &domain.Collectible{
				ID:             nextID(),
				Pos:            enemy.Pos,
				Type:           r,
				Richness:       tuning.LootRichness,
				CollectionTime: tuning.LootCollectionMs,
				IsLoot:         true,
			})
		}
	}

	combatLogger.WithFields(logrus.Fields{
		"drops":  len(out.Drops),
		"xp":     out.XP,
		"bounty": out.Bounty,
	}).Info("Combat resolved.")

	out.Message = fmt.Sprintf("%s потоплен. Добыча: %d, награда: %d монет.", enemy.Name, len(out.Drops), out.Bounty)
	return out
}
