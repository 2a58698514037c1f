package engine

import (
	"os"
	"testing"

	"salvage-server/internal/config"
	"salvage-server/internal/domain"
	"salvage-server/pkg/logger"
	"salvage-server/pkg/seamap"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// testSea - пустое море size x size, причал в (0,0)
func testSea(size int) *seamap.Sea {
	return &seamap.Sea{Grid: domain.NewGrid(size)}
}

// testConfig - таблицы по умолчанию без автоатаки
func testConfig() *config.Config {
	cfg := config.MustDefault()
	cfg.Combat.AutoAttack = false
	return cfg
}

// newTestService собирает сервис со временем симуляции 0
func newTestService(t *testing.T, cfg *config.Config, sea *seamap.Sea) *GameService {
	t.Helper()
	return NewServiceWithSea(cfg, sea, 42, 0)
}

func addCollectible(cfg *config.Config, sea *seamap.Sea, id string, pos domain.Position, resource string, richness int) *domain.Collectible {
	c := &domain.Collectible{
		ID:             id,
		Pos:            pos,
		Type:           resource,
		Richness:       richness,
		CollectionTime: cfg.CollectionTime(resource, richness),
	}
	sea.Collectibles = append(sea.Collectibles, c)
	return c
}

// addEnemy - враг, который не начнет блуждать сам по себе
func addEnemy(sea *seamap.Sea, id string, pos domain.Position, loot map[string]int) *domain.Enemy {
	e := &domain.Enemy{
		ID:           id,
		Archetype:    "skiff_raider",
		Name:         "Рейдер",
		Level:        1,
		Health:       30,
		MaxHealth:    30,
		Pos:          pos,
		SegmentMs:    900,
		XPReward:     40,
		Bounty:       15,
		Loot:         loot,
		NextMoveTime: 1 << 40,
	}
	e.Motion.Place(pos)
	sea.Enemies = append(sea.Enemies, e)
	return e
}

// tickEvery прогоняет тики с шагом step до момента to включительно
func tickEvery(s *GameService, from, to, step int64) {
	for now := from; now < to; now += step {
		s.Tick(now)
	}
	s.Tick(to)
}
