package systems

import (
	"testing"

	"salvage-server/internal/domain"
)

type enemyMap map[string]*domain.Enemy

func (m enemyMap) GetEnemy(id string) *domain.Enemy { return m[id] }

func TestValidateEngage(t *testing.T) {
	enemies := enemyMap{
		"near": {ID: "near", Pos: domain.Position{X: 3, Y: 3}},
		"far":  {ID: "far", Pos: domain.Position{X: 9, Y: 0}},
	}
	player := domain.Position{X: 0, Y: 0}

	tests := []struct {
		name  string
		id    string
		valid bool
	}{
		{"diagonal at range 3", "near", true},
		{"too far", "far", false},
		{"unknown", "ghost", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateEngage(player, tt.id, 3, enemies)
			if res.Valid != tt.valid {
				t.Errorf("valid = %v, want %v (%s)", res.Valid, tt.valid, res.Message)
			}
			if !res.Valid && res.Message == "" {
				t.Error("rejection must carry a message")
			}
		})
	}
}

func TestFirstInRange(t *testing.T) {
	enemies := map[string]*domain.Enemy{
		"enemy_b": {ID: "enemy_b", Pos: domain.Position{X: 2, Y: 2}},
		"enemy_a": {ID: "enemy_a", Pos: domain.Position{X: 3, Y: 1}},
		"enemy_c": {ID: "enemy_c", Pos: domain.Position{X: 8, Y: 8}},
	}
	got := FirstInRange(domain.Position{}, enemies, 3)
	if got == nil || got.ID != "enemy_a" {
		t.Errorf("got %+v, want enemy_a", got)
	}
	if FirstInRange(domain.Position{X: 20, Y: 20}, enemies, 3) != nil {
		t.Error("nothing should be in range")
	}
}

func TestClosestWithin(t *testing.T) {
	enemies := map[string]*domain.Enemy{
		"e1": {ID: "e1", Pos: domain.Position{X: 2, Y: 2}}, // 2.83
		"e2": {ID: "e2", Pos: domain.Position{X: 0, Y: 2}}, // 2.0
		"e3": {ID: "e3", Pos: domain.Position{X: 3, Y: 3}}, // 4.24
	}
	got := ClosestWithin(domain.Position{}, enemies, 3)
	if got == nil || got.ID != "e2" {
		t.Errorf("got %+v, want e2", got)
	}
	// Евклидова метрика: (3,3) не попадает в радиус 3, хотя по Чебышёву попал бы
	if got := ClosestWithin(domain.Position{}, map[string]*domain.Enemy{"e3": enemies["e3"]}, 3); got != nil {
		t.Errorf("e3 must be outside the radius, got %+v", got)
	}
}
