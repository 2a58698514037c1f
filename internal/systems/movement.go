package systems

import (
	"math"

	"salvage-server/internal/domain"
)

// RotationOffset - спрайт смотрит на север, atan2 отсчитывает от востока
const RotationOffset = math.Pi / 2

// Heading - угол поворота для движения из a в b
func Heading(a, b domain.Vec) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X) + RotationOffset
}

// AssignPath запускает движение из клетки from. Вызывать, когда сущность стоит.
func AssignPath(m *domain.MotionComponent, from domain.Position, path []domain.Position, base float64) {
	m.Place(from)
	if len(path) == 0 {
		return
	}
	m.Path = append([]domain.Position(nil), path...)
	m.BaseDuration = base
	m.SegmentDuration = base
	m.Rotation = Heading(m.FromVisual, m.Path[0].Vec())
}

// SegmentProgress - доля пройденного текущего сегмента, [0, 1]
func SegmentProgress(m *domain.MotionComponent) float64 {
	if m.IsIdle() {
		return 0
	}
	if m.SegmentDuration <= 0 {
		return 1
	}
	return math.Min(m.Elapsed/m.SegmentDuration, 1)
}

// AdvanceMotion продвигает движение на dt миллисекунд.
// Возвращает клетки, достигнутые за этот шаг (по порядку). Лишнее время переносится в следующий сегмент.
func AdvanceMotion(m *domain.MotionComponent, dt float64) []domain.Position {
	if m.IsIdle() {
		return nil
	}
	if dt > 0 {
		m.Elapsed += dt
	}

	var reached []domain.Position
	for len(m.Path) > 0 && m.Elapsed >= m.SegmentDuration {
		m.Elapsed -= m.SegmentDuration
		cell := m.Path[0]
		reached = append(reached, cell)

		m.From = cell
		m.FromVisual = cell.Vec()
		m.Path = m.Path[1:]
		m.SegmentDuration = m.BaseDuration
		if len(m.Path) > 0 {
			m.Rotation = Heading(m.FromVisual, m.Path[0].Vec())
		}
	}

	if m.IsIdle() {
		m.Path = nil
		m.Elapsed = 0
		m.SegmentDuration = 0
		m.Visual = m.From.Vec()
		return reached
	}

	m.Visual = m.FromVisual.Lerp(m.Path[0].Vec(), SegmentProgress(m))
	return reached
}

// Reroute заменяет хвост маршрута, не прерывая текущий сегмент.
// Новый маршрут: [текущая цель] + tail. Первый сегмент стартует с текущей визуальной точки
// и длится столько, сколько оставалось до цели (с поправкой на новую базовую длительность).
// Визуальная позиция в момент вызова не меняется.
func Reroute(m *domain.MotionComponent, tail []domain.Position, base float64) {
	target, moving := m.Target()
	if !moving {
		AssignPath(m, m.From, tail, base)
		return
	}

	remaining := math.Max(m.SegmentDuration-m.Elapsed, 0)
	if m.BaseDuration > 0 {
		remaining *= base / m.BaseDuration
	}

	visual := m.Visual
	path := make([]domain.Position, 0, len(tail)+1)
	path = append(path, target)
	path = append(path, tail...)

	m.Path = path
	m.FromVisual = visual
	m.Elapsed = 0
	m.SegmentDuration = remaining
	m.BaseDuration = base
	m.Visual = visual
}

// TruncateMotion оставляет только текущий сегмент: сущность доплывает до ближайшей клетки и встает
func TruncateMotion(m *domain.MotionComponent) {
	if len(m.Path) > 1 {
		m.Path = m.Path[:1]
	}
}

// StopMotion мгновенно ставит сущность в клетку
func StopMotion(m *domain.MotionComponent, at domain.Position) {
	rotation := m.Rotation
	m.Place(at)
	m.Rotation = rotation
}
