package seamap

import (
	"math/rand"

	"salvage-server/internal/config"
)

// Generate строит море по конфигу. Одинаковый seed дает одинаковую карту.
func Generate(cfg *config.Config, seed int64) *Sea {
	rng := rand.New(rand.NewSource(seed))
	w := cfg.World

	return NewSea(cfg, rng).
		WithIslands(w.Islands).
		SpawnResources(w.ResourceNodes).
		PlaceArtifacts().
		SpawnEnemies(w.Enemies).
		PlaceCoves(w.Coves).
		Build()
}
