package domain

import (
	"math"
	"strconv"
)

// Position - логическая клетка сетки. Авторитетна для коллизий, соседства и поиска пути.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Vec - визуальная (дробная) позиция для интерполяции.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo возвращает точное расстояние до другой точки (float)
func (p Position) DistanceTo(other Position) float64 {
	return math.Hypot(float64(p.X-other.X), float64(p.Y-other.Y))
}

// DistanceSquaredTo возвращает квадрат расстояния (int) для сравнения без корней
func (p Position) DistanceSquaredTo(other Position) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// ChebyshevTo - "королевское" расстояние: диагональный шаг стоит столько же, сколько прямой.
func (p Position) ChebyshevTo(other Position) int {
	return max(abs(p.X-other.X), abs(p.Y-other.Y))
}

// ManhattanTo - сумма модулей разностей (эвристика A*)
func (p Position) ManhattanTo(other Position) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// IsAdjacent возвращает true, если цель в соседней клетке (включая диагональ)
func (p Position) IsAdjacent(other Position) bool {
	return p != other && p.ChebyshevTo(other) <= 1
}

// Shift возвращает новую позицию со смещением
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Vec переводит клетку в визуальные координаты
func (p Position) Vec() Vec {
	return Vec{X: float64(p.X), Y: float64(p.Y)}
}

// Key - ключ клетки для множеств (closed set, occupancy)
func (p Position) Key() string {
	return strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y)
}

// Lerp - линейная интерполяция между v и to, t в [0,1]
func (v Vec) Lerp(to Vec, t float64) Vec {
	return Vec{
		X: v.X + (to.X-v.X)*t,
		Y: v.Y + (to.Y-v.Y)*t,
	}
}

// DistanceTo - евклидово расстояние в визуальных координатах
func (v Vec) DistanceTo(to Vec) float64 {
	return math.Hypot(to.X-v.X, to.Y-v.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
