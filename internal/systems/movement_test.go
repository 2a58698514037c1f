package systems

import (
	"math"
	"testing"

	"salvage-server/internal/domain"
)

func vecNear(a, b domain.Vec) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestAdvanceMotion_Interpolation(t *testing.T) {
	var m domain.MotionComponent
	AssignPath(&m, domain.Position{X: 0, Y: 0}, []domain.Position{{X: 1, Y: 0}, {X: 2, Y: 0}}, 600)

	if reached := AdvanceMotion(&m, 300); len(reached) != 0 {
		t.Fatalf("no cell should be reached at half segment, got %v", reached)
	}
	if !vecNear(m.Visual, domain.Vec{X: 0.5, Y: 0}) {
		t.Errorf("visual = %+v, want (0.5, 0)", m.Visual)
	}

	// Лишние 100 мс переносятся во второй сегмент
	reached := AdvanceMotion(&m, 400)
	if len(reached) != 1 || reached[0] != (domain.Position{X: 1, Y: 0}) {
		t.Fatalf("reached = %v", reached)
	}
	if m.From != (domain.Position{X: 1, Y: 0}) {
		t.Errorf("logical cell = %v", m.From)
	}
	if math.Abs(m.Elapsed-100) > 1e-9 {
		t.Errorf("elapsed carry = %v, want 100", m.Elapsed)
	}

	reached = AdvanceMotion(&m, 10000)
	if len(reached) != 1 || !m.IsIdle() {
		t.Fatalf("expected arrival, reached=%v idle=%v", reached, m.IsIdle())
	}
	if !vecNear(m.Visual, domain.Vec{X: 2, Y: 0}) {
		t.Errorf("visual must converge to logical cell, got %+v", m.Visual)
	}
}

func TestAdvanceMotion_SeveralCellsInOneFrame(t *testing.T) {
	var m domain.MotionComponent
	path := []domain.Position{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}
	AssignPath(&m, domain.Position{}, path, 100)

	reached := AdvanceMotion(&m, 250)
	if len(reached) != 2 {
		t.Fatalf("reached %d cells, want 2", len(reached))
	}
	if !vecNear(m.Visual, domain.Vec{X: 2.5, Y: 2.5}) {
		t.Errorf("visual = %+v", m.Visual)
	}
}

// Перестроение маршрута посреди сегмента не должно сдвигать визуальную позицию
func TestReroute_VisualContinuity(t *testing.T) {
	tests := []struct {
		name    string
		elapsed float64
		tail    []domain.Position
	}{
		{"quarter", 150, []domain.Position{{X: 1, Y: 1}, {X: 1, Y: 2}}},
		{"half", 300, []domain.Position{{X: 0, Y: 1}}},
		{"almost done", 599, []domain.Position{{X: 2, Y: 1}}},
		{"stop at target", 420, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m domain.MotionComponent
			AssignPath(&m, domain.Position{}, []domain.Position{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}, 600)
			AdvanceMotion(&m, tt.elapsed)
			before := m.Visual
			p := SegmentProgress(&m)

			Reroute(&m, tt.tail, 600)
			if !vecNear(m.Visual, before) {
				t.Fatalf("visual jumped on reroute: %+v -> %+v", before, m.Visual)
			}

			// Кадр с нулевым dt тоже не должен дать скачка
			AdvanceMotion(&m, 0)
			if !vecNear(m.Visual, before) {
				t.Fatalf("visual jumped on first frame: %+v -> %+v", before, m.Visual)
			}

			if m.Path[0] != (domain.Position{X: 1, Y: 0}) {
				t.Errorf("current target must be kept, got %v", m.Path[0])
			}
			if len(m.Path) != len(tt.tail)+1 {
				t.Errorf("path length = %d", len(m.Path))
			}
			if want := 600 * (1 - p); math.Abs(m.SegmentDuration-want) > 1e-9 {
				t.Errorf("first segment duration = %v, want %v", m.SegmentDuration, want)
			}
		})
	}
}

func TestReroute_FinishesSegmentOnTime(t *testing.T) {
	var m domain.MotionComponent
	AssignPath(&m, domain.Position{}, []domain.Position{{X: 1, Y: 0}}, 600)
	AdvanceMotion(&m, 300)
	Reroute(&m, []domain.Position{{X: 1, Y: 1}}, 600)

	AdvanceMotion(&m, 150)
	if !vecNear(m.Visual, domain.Vec{X: 0.75, Y: 0}) {
		t.Errorf("visual = %+v, want (0.75, 0)", m.Visual)
	}
	reached := AdvanceMotion(&m, 150)
	if len(reached) != 1 || reached[0] != (domain.Position{X: 1, Y: 0}) {
		t.Fatalf("segment should end after the remaining 300 ms, reached=%v", reached)
	}
	if m.SegmentDuration != 600 {
		t.Errorf("next segment should use base duration, got %v", m.SegmentDuration)
	}
}

func TestReroute_WhenIdle(t *testing.T) {
	var m domain.MotionComponent
	m.Place(domain.Position{X: 4, Y: 4})
	Reroute(&m, []domain.Position{{X: 5, Y: 4}}, 600)
	if m.IsIdle() || m.SegmentDuration != 600 {
		t.Errorf("idle reroute must behave like assign: %+v", m)
	}
}

func TestRotation(t *testing.T) {
	tests := []struct {
		name string
		to   domain.Position
		want float64
	}{
		{"north", domain.Position{X: 5, Y: 4}, 0},
		{"east", domain.Position{X: 6, Y: 5}, math.Pi / 2},
		{"south", domain.Position{X: 5, Y: 6}, math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m domain.MotionComponent
			AssignPath(&m, domain.Position{X: 5, Y: 5}, []domain.Position{tt.to}, 600)
			if math.Abs(m.Rotation-tt.want) > 1e-9 {
				t.Errorf("rotation = %v, want %v", m.Rotation, tt.want)
			}
			AdvanceMotion(&m, 600)
			if math.Abs(m.Rotation-tt.want) > 1e-9 {
				t.Errorf("rotation must hold when idle, got %v", m.Rotation)
			}
		})
	}
}

func TestTruncateMotion(t *testing.T) {
	var m domain.MotionComponent
	AssignPath(&m, domain.Position{}, []domain.Position{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}, 600)
	AdvanceMotion(&m, 100)
	TruncateMotion(&m)
	if len(m.Path) != 1 || m.Path[0] != (domain.Position{X: 1, Y: 0}) {
		t.Errorf("path = %v", m.Path)
	}
}
