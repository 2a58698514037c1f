package systems

import (
	"container/heap"
	"math"

	"salvage-server/internal/domain"
)

// Directions8 - 4 ортогональных + 4 диагональных соседа
var Directions8 = [8]domain.Position{
	{X: 0, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 0}, {X: 1, Y: 1},
	{X: 0, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: 0}, {X: -1, Y: -1},
}

const (
	costOrthogonal = 1.0
	costDiagonal   = math.Sqrt2
)

// WalkableFunc - проверка проходимости клетки
type WalkableFunc func(domain.Position) bool

type pathNode struct {
	pos    domain.Position
	g, f   float64
	seq    int // порядок вставки, разрешает равенство f
	parent *pathNode
	index  int // индекс в куче, -1 если узел уже извлечен
}

// openSet - min-heap по (f, seq)
type openSet []*pathNode

func (o openSet) Len() int { return len(o) }

func (o openSet) Less(i, j int) bool {
	if o[i].f == o[j].f {
		return o[i].seq < o[j].seq
	}
	return o[i].f < o[j].f
}

func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}

func (o *openSet) Push(x any) {
	n := x.(*pathNode)
	n.index = len(*o)
	*o = append(*o, n)
}

func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*o = old[:n-1]
	return node
}

// octile - допустимая эвристика для 8 направлений с диагональю √2
func octile(a, b domain.Position) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	return costOrthogonal*(dx+dy) + (costDiagonal-2*costOrthogonal)*math.Min(dx, dy)
}

// FindPath - A* по 8 направлениям. Результат не включает start и включает end.
// Пустой результат: end вне карты или непроходим, путь не найден, start == end.
// Срезание углов по диагонали разрешено.
func FindPath(start, end domain.Position, size int, walkable WalkableFunc) []domain.Position {
	inBounds := func(p domain.Position) bool {
		return p.X >= 0 && p.Y >= 0 && p.X < size && p.Y < size
	}
	if start == end || !inBounds(end) || !walkable(end) {
		return nil
	}

	open := &openSet{}
	nodes := make(map[domain.Position]*pathNode)
	closed := make(map[domain.Position]bool)
	seq := 0

	first := &pathNode{pos: start, f: octile(start, end), seq: seq}
	nodes[start] = first
	heap.Push(open, first)

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		if current.pos == end {
			return reconstruct(current)
		}
		closed[current.pos] = true

		for _, d := range Directions8 {
			next := domain.Position{X: current.pos.X + d.X, Y: current.pos.Y + d.Y}
			if !inBounds(next) || closed[next] || !walkable(next) {
				continue
			}
			step := costOrthogonal
			if d.X != 0 && d.Y != 0 {
				step = costDiagonal
			}
			g := current.g + step

			if n, ok := nodes[next]; ok {
				if g >= n.g {
					continue
				}
				// Нашли путь короче - обновляем узел прямо в куче
				n.g = g
				n.f = g + octile(next, end)
				n.parent = current
				heap.Fix(open, n.index)
				continue
			}

			seq++
			n := &pathNode{pos: next, g: g, f: g + octile(next, end), seq: seq, parent: current}
			nodes[next] = n
			heap.Push(open, n)
		}
	}
	return nil
}

func reconstruct(node *pathNode) []domain.Position {
	var path []domain.Position
	for n := node; n.parent != nil; n = n.parent {
		path = append(path, n.pos)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// PathCost - стоимость маршрута от start по правилам поиска
func PathCost(start domain.Position, path []domain.Position) float64 {
	cost := 0.0
	prev := start
	for _, p := range path {
		if p.X != prev.X && p.Y != prev.Y {
			cost += costDiagonal
		} else {
			cost += costOrthogonal
		}
		prev = p
	}
	return cost
}
