package systems

import (
	"fmt"
	"testing"

	"salvage-server/internal/config"
	"salvage-server/internal/domain"
)

func TestResolveCombat(t *testing.T) {
	enemy := &domain.Enemy{
		ID:       "enemy_7",
		Name:     "Корсарский бриг",
		Pos:      domain.Position{X: 12, Y: 9},
		XPReward: 90,
		Bounty:   40,
		Loot:     map[string]int{"alloy": 2, "fuel": 1},
	}
	tuning := config.Combat{LootRichness: 3, LootCollectionMs: 2000}

	n := 0
	nextID := func() string {
		n++
		return fmt.Sprintf("loot_%d", n)
	}
	out := ResolveCombat(enemy, tuning, nextID)

	if len(out.Drops) != 3 {
		t.Fatalf("drops = %d, want 3", len(out.Drops))
	}
	alloy := 0
	for _, d := range out.Drops {
		if d.Pos != enemy.Pos {
			t.Errorf("drop %s at %v, want enemy position %v", d.ID, d.Pos, enemy.Pos)
		}
		if d.Richness != 3 || d.CollectionTime != 2000 {
			t.Errorf("drop %s richness=%d time=%d", d.ID, d.Richness, d.CollectionTime)
		}
		if d.Type == "alloy" {
			alloy++
		}
	}
	if alloy != 2 {
		t.Errorf("alloy drops = %d, want 2", alloy)
	}
	// Ресурсы идут в алфавитном порядке
	if out.Drops[0].ID != "loot_1" || out.Drops[0].Type != "alloy" || out.Drops[2].Type != "fuel" {
		t.Errorf("unexpected drop order: %+v %+v", out.Drops[0], out.Drops[2])
	}
	if out.XP != 90 || out.Bounty != 40 {
		t.Errorf("xp=%d bounty=%d", out.XP, out.Bounty)
	}
	if out.Message == "" {
		t.Error("Expected combat log message")
	}
}

func TestResolveCombat_NoLoot(t *testing.T) {
	enemy := &domain.Enemy{ID: "enemy_1", Name: "Ялик"}
	out := ResolveCombat(enemy, config.Combat{}, func() string { return "x" })
	if len(out.Drops) != 0 {
		t.Errorf("expected no drops, got %d", len(out.Drops))
	}
}
