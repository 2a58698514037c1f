package seamap

import (
	"fmt"
	"math/rand"

	"salvage-server/internal/config"
	"salvage-server/internal/domain"
	"salvage-server/pkg/utils"
)

// Rect - прямоугольный контур острова
type Rect struct {
	X, Y, W, H int
}

// Intersects - полуоткрытые прямоугольники пересекаются
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W && r.X+r.W > other.X &&
		r.Y < other.Y+other.H && r.Y+r.H > other.Y
}

// Expand раздвигает прямоугольник на margin клеток во все стороны
func (r Rect) Expand(margin int) Rect {
	return Rect{X: r.X - margin, Y: r.Y - margin, W: r.W + 2*margin, H: r.H + 2*margin}
}

// Cove - бухта, декоративный ориентир на карте
type Cove struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Pos  domain.Position `json:"pos"`
}

// Sea - результат генерации
type Sea struct {
	Grid         *domain.Grid
	Dock         domain.Position
	Islands      []Rect
	Collectibles []*domain.Collectible
	Artifacts    []*domain.Artifact
	Enemies      []*domain.Enemy
	Coves        []Cove
}

// SeaBuilder предоставляет fluent API для генерации моря.
// Все объекты ставятся отбором с отклонением в занятые клетки (occupied).
type SeaBuilder struct {
	cfg      *config.Config
	rng      *rand.Rand
	grid     *domain.Grid
	dock     domain.Position
	islands  []Rect
	occupied map[domain.Position]bool
	sea      Sea
}

// NewSea создает builder
func NewSea(cfg *config.Config, rng *rand.Rand) *SeaBuilder {
	dock := domain.Position{X: cfg.World.Dock.X, Y: cfg.World.Dock.Y}
	return &SeaBuilder{
		cfg:      cfg,
		rng:      rng,
		grid:     domain.NewGrid(cfg.World.GridSize),
		dock:     dock,
		occupied: map[domain.Position]bool{dock: true},
	}
}

// WithIslands раскладывает острова. Острова не пересекаются друг с другом и не закрывают причал.
func (b *SeaBuilder) WithIslands(count int) *SeaBuilder {
	w := b.cfg.World
	dockZone := Rect{X: b.dock.X - 2, Y: b.dock.Y - 2, W: 5, H: 5}

	for i := 0; i < count; i++ {
		for attempt := 0; attempt < w.PlacementAttempts; attempt++ {
			iw := utils.RandRange(b.rng, w.IslandMinSize, w.IslandMaxSize)
			ih := utils.RandRange(b.rng, w.IslandMinSize, w.IslandMaxSize)
			if iw >= b.grid.Size || ih >= b.grid.Size {
				break
			}
			island := Rect{
				X: b.rng.Intn(b.grid.Size - iw),
				Y: b.rng.Intn(b.grid.Size - ih),
				W: iw,
				H: ih,
			}
			if island.Intersects(dockZone) || b.collides(island) {
				continue
			}
			b.carveIsland(island)
			break
		}
	}
	return b
}

func (b *SeaBuilder) collides(island Rect) bool {
	padded := island.Expand(b.cfg.World.IslandMargin)
	for _, other := range b.islands {
		if padded.Intersects(other) {
			return true
		}
	}
	return false
}

func (b *SeaBuilder) carveIsland(island Rect) {
	for y := island.Y; y < island.Y+island.H; y++ {
		for x := island.X; x < island.X+island.W; x++ {
			b.grid.SetBlocked(domain.Position{X: x, Y: y})
		}
	}
	b.islands = append(b.islands, island)
}

// freeCell ищет свободную проходимую клетку
func (b *SeaBuilder) freeCell() (domain.Position, bool) {
	for attempt := 0; attempt < b.cfg.World.PlacementAttempts; attempt++ {
		p := domain.Position{X: b.rng.Intn(b.grid.Size), Y: b.rng.Intn(b.grid.Size)}
		if b.grid.IsWalkable(p) && !b.occupied[p] {
			b.occupied[p] = true
			return p, true
		}
	}
	return domain.Position{}, false
}

// SpawnResources раскладывает ресурсные узлы с учетом весов типов
func (b *SeaBuilder) SpawnResources(count int) *SeaBuilder {
	for i := 0; i < count; i++ {
		pos, ok := b.freeCell()
		if !ok {
			continue
		}
		resource := PickResource(b.cfg, b.rng)
		richness := utils.RandRange(b.rng, 1, 3)
		b.sea.Collectibles = append(b.sea.Collectibles, &domain.Collectible{
			ID:             fmt.Sprintf("res_%d", len(b.sea.Collectibles)+1),
			Pos:            pos,
			Type:           resource,
			Richness:       richness,
			CollectionTime: b.cfg.CollectionTime(resource, richness),
		})
	}
	return b
}

// PlaceArtifacts ставит по одному экземпляру каждого артефакта
func (b *SeaBuilder) PlaceArtifacts() *SeaBuilder {
	for _, def := range b.cfg.Artifacts {
		pos, ok := b.freeCell()
		if !ok {
			continue
		}
		b.sea.Artifacts = append(b.sea.Artifacts, &domain.Artifact{
			ID:   def.ID,
			Name: def.Name,
			Clue: def.Clue,
			Pos:  pos,
		})
	}
	return b
}

// SpawnEnemies спавнит врагов по весам архетипов
func (b *SeaBuilder) SpawnEnemies(count int) *SeaBuilder {
	for i := 0; i < count; i++ {
		arch, ok := PickArchetype(b.cfg, b.rng)
		if !ok {
			return b
		}
		pos, ok := b.freeCell()
		if !ok {
			continue
		}
		id := fmt.Sprintf("enemy_%d", len(b.sea.Enemies)+1)
		b.sea.Enemies = append(b.sea.Enemies, SpawnEnemy(id, arch, pos, b.cfg, b.rng))
	}
	return b
}

// PlaceCoves ставит бухты-ориентиры
func (b *SeaBuilder) PlaceCoves(count int) *SeaBuilder {
	for i := 0; i < count; i++ {
		pos, ok := b.freeCell()
		if !ok {
			continue
		}
		b.sea.Coves = append(b.sea.Coves, Cove{
			ID:   fmt.Sprintf("cove_%d", i+1),
			Name: coveNames[i%len(coveNames)],
			Pos:  pos,
		})
	}
	return b
}

// Build возвращает результат
func (b *SeaBuilder) Build() *Sea {
	b.sea.Grid = b.grid
	b.sea.Dock = b.dock
	b.sea.Islands = b.islands
	return &b.sea
}

var coveNames = []string{"Тихая бухта", "Бухта Контрабандистов", "Костяная лагуна", "Туманный залив"}
