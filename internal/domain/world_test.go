package domain

import "testing"

func TestGrid_IsWalkable(t *testing.T) {
	g := NewGrid(10)
	g.SetBlocked(Position{X: 5, Y: 5})

	tests := []struct {
		pos  Position
		want bool
	}{
		{Position{X: 0, Y: 0}, true},
		{Position{X: 5, Y: 5}, false},
		{Position{X: -1, Y: 0}, false},
		{Position{X: 10, Y: 3}, false},
		{Position{X: 9, Y: 9}, true},
	}
	for _, tt := range tests {
		if got := g.IsWalkable(tt.pos); got != tt.want {
			t.Errorf("IsWalkable(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestGrid_RevealAround(t *testing.T) {
	g := NewGrid(20)
	center := Position{X: 10, Y: 10}

	first := g.RevealAround(center, 2)
	// Круг радиуса 2: 13 клеток (ромб 5 + квадрат 3x3 + 4 оси на расстоянии 2)
	if first != 13 {
		t.Errorf("Expected 13 newly explored tiles, got %d", first)
	}

	// Угол квадрата (2,2) на расстоянии ~2.83 открыт быть не должен
	if g.IsExplored(Position{X: 12, Y: 12}) {
		t.Error("Corner outside Euclidean radius should stay hidden")
	}
	if !g.IsExplored(Position{X: 11, Y: 11}) {
		t.Error("Diagonal neighbour should be explored")
	}

	// Идемпотентность
	if again := g.RevealAround(center, 2); again != 0 {
		t.Errorf("Second reveal should find nothing new, got %d", again)
	}
	if g.ExploredCount() != 13 {
		t.Errorf("ExploredCount = %d, want 13", g.ExploredCount())
	}
}

func TestGrid_RevealAround_Edge(t *testing.T) {
	g := NewGrid(5)
	n := g.RevealAround(Position{X: 0, Y: 0}, 1)
	// (0,0), (1,0), (0,1). Диагональ (1,1) ~1.41 > 1
	if n != 3 {
		t.Errorf("Expected 3 tiles at corner, got %d", n)
	}
}

func TestGrid_Highlight(t *testing.T) {
	g := NewGrid(5)
	g.Highlight([]Position{{X: 1, Y: 1}, {X: 2, Y: 2}})
	g.Highlight([]Position{{X: 3, Y: 3}})

	if g.Map[1][1].IsHighlighted {
		t.Error("Old highlight must be cleared on recompute")
	}
	if !g.Map[3][3].IsHighlighted {
		t.Error("New path must be highlighted")
	}
}

func TestPosition_Distances(t *testing.T) {
	a := Position{X: 0, Y: 0}
	b := Position{X: 3, Y: 1}

	if a.ChebyshevTo(b) != 3 {
		t.Errorf("Chebyshev = %d, want 3", a.ChebyshevTo(b))
	}
	if a.ManhattanTo(b) != 4 {
		t.Errorf("Manhattan = %d, want 4", a.ManhattanTo(b))
	}
	if !a.IsAdjacent(Position{X: 1, Y: 1}) {
		t.Error("Diagonal should be adjacent")
	}
	if a.IsAdjacent(a) {
		t.Error("Cell is not adjacent to itself")
	}
}
