package domain

import "math"

// Tile - одна клетка морской карты
type Tile struct {
	X             int  `json:"x"`
	Y             int  `json:"y"`
	IsWalkable    bool `json:"isWalkable"`    // false только под островами, не меняется после генерации
	IsExplored    bool `json:"isExplored"`    // монотонно: однажды true - навсегда
	IsHighlighted bool `json:"isHighlighted"` // подсветка маршрута, сбрасывается при каждом пересчете
}

// Grid - квадратная сетка мира Size x Size.
// Map[y][x], как в генераторе подземелий.
type Grid struct {
	Size int      `json:"size"`
	Map  [][]Tile `json:"-"`
}

// NewGrid создает полностью проходимую неисследованную сетку
func NewGrid(size int) *Grid {
	g := &Grid{Size: size, Map: make([][]Tile, size)}
	for y := 0; y < size; y++ {
		row := make([]Tile, size)
		for x := 0; x < size; x++ {
			row[x] = Tile{X: x, Y: y, IsWalkable: true}
		}
		g.Map[y] = row
	}
	return g
}

// InBounds - клетка внутри [0, Size)
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.Size && p.Y < g.Size
}

// IsWalkable - вне карты и под островом нельзя
func (g *Grid) IsWalkable(p Position) bool {
	if !g.InBounds(p) {
		return false
	}
	return g.Map[p.Y][p.X].IsWalkable
}

// IsExplored - открыта ли клетка в тумане войны
func (g *Grid) IsExplored(p Position) bool {
	if !g.InBounds(p) {
		return false
	}
	return g.Map[p.Y][p.X].IsExplored
}

// SetBlocked помечает клетку как сушу. Используется только генератором мира.
func (g *Grid) SetBlocked(p Position) {
	if g.InBounds(p) {
		g.Map[p.Y][p.X].IsWalkable = false
	}
}

// RevealAround открывает все клетки в евклидовом радиусе (круглая граница тумана).
// Возвращает количество впервые открытых клеток - за них начисляется опыт.
func (g *Grid) RevealAround(center Position, radius float64) int {
	if radius < 0 {
		return 0
	}
	r := int(math.Ceil(radius))
	revealed := 0
	for y := center.Y - r; y <= center.Y+r; y++ {
		for x := center.X - r; x <= center.X+r; x++ {
			p := Position{X: x, Y: y}
			if !g.InBounds(p) || center.DistanceTo(p) > radius {
				continue
			}
			tile := &g.Map[y][x]
			if !tile.IsExplored {
				tile.IsExplored = true
				revealed++
			}
		}
	}
	return revealed
}

// ClearHighlights снимает подсветку маршрута со всей карты
func (g *Grid) ClearHighlights() {
	for y := range g.Map {
		for x := range g.Map[y] {
			g.Map[y][x].IsHighlighted = false
		}
	}
}

// Highlight подсвечивает маршрут (предыдущая подсветка сбрасывается)
func (g *Grid) Highlight(path []Position) {
	g.ClearHighlights()
	for _, p := range path {
		if g.InBounds(p) {
			g.Map[p.Y][p.X].IsHighlighted = true
		}
	}
}

// ExploredCount - сколько клеток уже открыто
func (g *Grid) ExploredCount() int {
	n := 0
	for y := range g.Map {
		for x := range g.Map[y] {
			if g.Map[y][x].IsExplored {
				n++
			}
		}
	}
	return n
}
