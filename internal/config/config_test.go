package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatalf("default config must be valid: %v", err)
	}
	if cfg.Combat.DurationMs != 5000 {
		t.Errorf("combat duration = %d, want 5000", cfg.Combat.DurationMs)
	}
	if cfg.Crew.CollectMs != 12000 || cfg.Crew.DriftGraceMs != 45000 || cfg.Crew.DriftLossMs != 10000 {
		t.Errorf("crew timings = %+v", cfg.Crew)
	}
	if cfg.Movement.SegmentMs != 600 {
		t.Errorf("segment_ms = %v", cfg.Movement.SegmentMs)
	}
}

func TestCollectionTime(t *testing.T) {
	cfg := MustDefault()
	tests := []struct {
		resource string
		richness int
		want     int64
	}{
		{"timber", 1, 4000},
		{"timber", 2, 6000},
		{"timber", 3, 8000},
		{"unknown", 2, 0},
	}
	for _, tt := range tests {
		if got := cfg.CollectionTime(tt.resource, tt.richness); got != tt.want {
			t.Errorf("CollectionTime(%s, %d) = %d, want %d", tt.resource, tt.richness, got, tt.want)
		}
	}
}

func TestArchetypeLevelClamp(t *testing.T) {
	cfg := MustDefault()
	a, ok := cfg.Archetype("skiff_raider")
	if !ok {
		t.Fatal("skiff_raider missing")
	}
	if got := a.ClampLevel(99); got != a.MaxLevel {
		t.Errorf("ClampLevel(99) = %d", got)
	}
	if got := a.HealthAt(0); got != a.BaseHealth {
		t.Errorf("HealthAt(0) = %d, want base %d", got, a.BaseHealth)
	}
	if _, ok := cfg.Archetype("kraken"); ok {
		t.Error("unknown archetype found")
	}
}

func TestLoadOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.yaml")
	doc := "combat:\n  duration_ms: 3000\n  poll_ms: 50\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Combat.DurationMs != 3000 || cfg.Combat.PollMs != 50 {
		t.Errorf("override not applied: %+v", cfg.Combat)
	}
	// Остальные таблицы берутся из встроенного документа
	if cfg.Crew.CollectMs != 12000 {
		t.Errorf("crew defaults lost: %+v", cfg.Crew)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"tiny grid", "world:\n  grid_size: 4\n"},
		{"bad poach chance", "crew:\n  poach_chance: 1.5\n"},
		{"bad steps", "enemy_ai:\n  min_steps: 5\n  max_steps: 2\n"},
		{"unknown requirement", "shop:\n  ship_upgrades:\n    - { id: engine, costs: [1], requires: nope }\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
