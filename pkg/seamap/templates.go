package seamap

import (
	"math/rand"
	"sort"

	"salvage-server/internal/config"
	"salvage-server/internal/domain"
	"salvage-server/pkg/utils"
)

// SpawnEnemy создает врага из архетипа. Лут разыгрывается здесь, один раз.
func SpawnEnemy(id string, arch config.Archetype, pos domain.Position, cfg *config.Config, rng *rand.Rand) *domain.Enemy {
	level := arch.ClampLevel(utils.RandRange(rng, arch.MinLevel, arch.MaxLevel))
	hp := arch.HealthAt(level)

	e := &domain.Enemy{
		ID:         id,
		Archetype:  arch.ID,
		Name:       arch.Name,
		Level:      level,
		Health:     hp,
		MaxHealth:  hp,
		Damage:     arch.DamageAt(level),
		Pos:        pos,
		SegmentMs:  arch.SegmentMs,
		AggroRange: arch.AggroRange,
		XPReward:   arch.XPReward,
		Bounty:     arch.Bounty,
		Loot:       RollLoot(arch, rng),
	}
	e.Motion.Place(pos)
	// Первое решение о блуждании - со сдвигом, чтобы враги не стартовали одновременно
	e.NextMoveTime = int64(utils.RandRange(rng, 0, int(cfg.EnemyAI.WanderMaxMs)))
	return e
}

// RollLoot - независимый бросок по каждой строке таблицы лута
func RollLoot(arch config.Archetype, rng *rand.Rand) map[string]int {
	loot := make(map[string]int)
	for _, entry := range arch.Loot {
		if rng.Float64() >= entry.Chance {
			continue
		}
		qty := utils.RandRange(rng, entry.Min, entry.Max)
		if qty > 0 {
			loot[entry.Resource] += qty
		}
	}
	return loot
}

// PickArchetype - взвешенный выбор архетипа
func PickArchetype(cfg *config.Config, rng *rand.Rand) (config.Archetype, bool) {
	total := 0
	for _, a := range cfg.Archetypes {
		total += max(a.Weight, 0)
	}
	if total == 0 {
		return config.Archetype{}, false
	}
	roll := rng.Intn(total)
	for _, a := range cfg.Archetypes {
		w := max(a.Weight, 0)
		if roll < w {
			return a, true
		}
		roll -= w
	}
	return config.Archetype{}, false
}

// PickResource - взвешенный выбор типа ресурса.
// Ключи сортируются: порядок обхода map не должен влиять на детерминизм сида.
func PickResource(cfg *config.Config, rng *rand.Rand) string {
	names := make([]string, 0, len(cfg.Resources))
	total := 0
	for name, r := range cfg.Resources {
		names = append(names, name)
		total += max(r.Weight, 1)
	}
	sort.Strings(names)

	roll := rng.Intn(total)
	for _, name := range names {
		w := max(cfg.Resources[name].Weight, 1)
		if roll < w {
			return name
		}
		roll -= w
	}
	return names[len(names)-1]
}
