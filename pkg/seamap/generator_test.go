package seamap

import (
	"math/rand"
	"testing"

	"salvage-server/internal/config"
	"salvage-server/internal/domain"
)

func TestGenerate(t *testing.T) {
	cfg := config.MustDefault()
	sea := Generate(cfg, 42)

	// 1. Размер сетки
	if sea.Grid.Size != cfg.World.GridSize {
		t.Fatalf("grid size = %d, want %d", sea.Grid.Size, cfg.World.GridSize)
	}

	// 2. Причал всегда проходим
	if !sea.Grid.IsWalkable(sea.Dock) {
		t.Errorf("dock %v is on an island", sea.Dock)
	}

	// 3. Все объекты на разных проходимых клетках
	seen := map[domain.Position]string{sea.Dock: "dock"}
	check := func(id string, p domain.Position) {
		t.Helper()
		if !sea.Grid.IsWalkable(p) {
			t.Errorf("%s placed on unwalkable cell %v", id, p)
		}
		if other, ok := seen[p]; ok {
			t.Errorf("%s shares cell %v with %s", id, p, other)
		}
		seen[p] = id
	}
	for _, c := range sea.Collectibles {
		check(c.ID, c.Pos)
		if c.CollectionTime != cfg.CollectionTime(c.Type, c.Richness) {
			t.Errorf("%s collectionTime = %d", c.ID, c.CollectionTime)
		}
		if c.Richness < 1 || c.Richness > 3 {
			t.Errorf("%s richness = %d", c.ID, c.Richness)
		}
	}
	for _, a := range sea.Artifacts {
		check(a.ID, a.Pos)
	}
	for _, e := range sea.Enemies {
		check(e.ID, e.Pos)
		arch, ok := cfg.Archetype(e.Archetype)
		if !ok {
			t.Fatalf("%s has unknown archetype %s", e.ID, e.Archetype)
		}
		if e.Level < arch.MinLevel || e.Level > arch.MaxLevel {
			t.Errorf("%s level %d outside [%d,%d]", e.ID, e.Level, arch.MinLevel, arch.MaxLevel)
		}
		if e.Health != e.MaxHealth || e.MaxHealth != arch.HealthAt(e.Level) {
			t.Errorf("%s health %d/%d", e.ID, e.Health, e.MaxHealth)
		}
	}
	for _, c := range sea.Coves {
		check(c.ID, c.Pos)
	}

	if len(sea.Collectibles) == 0 || len(sea.Enemies) == 0 {
		t.Error("expected resources and enemies")
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := config.MustDefault()
	a := Generate(cfg, 7)
	b := Generate(cfg, 7)

	if len(a.Collectibles) != len(b.Collectibles) || len(a.Enemies) != len(b.Enemies) {
		t.Fatal("same seed produced different object counts")
	}
	for i := range a.Collectibles {
		if *a.Collectibles[i] != *b.Collectibles[i] {
			t.Errorf("collectible %d differs: %+v vs %+v", i, a.Collectibles[i], b.Collectibles[i])
		}
	}
	for i := range a.Enemies {
		if a.Enemies[i].Pos != b.Enemies[i].Pos || a.Enemies[i].Level != b.Enemies[i].Level {
			t.Errorf("enemy %d differs", i)
		}
	}
}

func TestIslandsDoNotOverlap(t *testing.T) {
	cfg := config.MustDefault()
	sea := Generate(cfg, 3)
	for i, r1 := range sea.Islands {
		for j, r2 := range sea.Islands {
			if i != j && r1.Intersects(r2) {
				t.Errorf("islands %d and %d overlap: %+v %+v", i, j, r1, r2)
			}
		}
	}
}

func TestRect_Intersects(t *testing.T) {
	r1 := Rect{0, 0, 10, 10}
	r2 := Rect{5, 5, 10, 10} // Пересекается
	r3 := Rect{20, 20, 5, 5} // Не пересекается
	r4 := Rect{10, 0, 3, 3}  // Касается краем

	if !r1.Intersects(r2) {
		t.Error("Rects should intersect")
	}
	if r1.Intersects(r3) {
		t.Error("Rects should NOT intersect")
	}
	if r1.Intersects(r4) {
		t.Error("Touching rects should NOT intersect")
	}
	if !r1.Expand(1).Intersects(r4) {
		t.Error("Expanded rect should reach its neighbour")
	}
}

func TestRollLoot(t *testing.T) {
	arch := config.Archetype{
		ID: "test",
		Loot: []config.LootEntry{
			{Resource: "alloy", Chance: 1.0, Min: 2, Max: 2},
			{Resource: "cloth", Chance: 0.0, Min: 1, Max: 5},
		},
	}
	loot := RollLoot(arch, rand.New(rand.NewSource(1)))
	if loot["alloy"] != 2 {
		t.Errorf("alloy = %d, want 2", loot["alloy"])
	}
	if _, ok := loot["cloth"]; ok {
		t.Error("zero-chance entry dropped")
	}
}
