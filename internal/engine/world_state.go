package engine

import (
	"fmt"
	"sort"

	"salvage-server/internal/config"
	"salvage-server/internal/domain"
	"salvage-server/internal/systems"
	"salvage-server/pkg/api"
	"salvage-server/pkg/seamap"
)

// playerEntityID - ключ игрока в планировщике
const playerEntityID = "player"

// WorldState - единственное изменяемое состояние симуляции.
// Принадлежит горутине симуляции, наружу уходит только копия (снапшот).
type WorldState struct {
	Grid   *domain.Grid
	Player *domain.Player

	Activity    domain.Activity
	Combat      *domain.CombatSession
	Collection  *domain.CollectionSession
	PendingMove *domain.Position // Ход, ожидающий подтверждения отмены сбора

	Enemies    map[string]*domain.Enemy
	enemyOrder []string

	Crew      map[string]*domain.CrewMember
	crewOrder []string

	Collectibles map[string]*domain.Collectible
	Artifacts    map[string]*domain.Artifact
	Coves        []seamap.Cove

	Skills *systems.Progression
	Logs   []api.LogEntry

	// Version растет при каждом изменении. Снапшот публикуется, только если версия сменилась.
	Version uint64

	lootSeq int
	crewSeq int
	logSeq  int
}

// buildWorldState раскладывает сгенерированное море по индексам
func buildWorldState(cfg *config.Config, sea *seamap.Sea, now int64) *WorldState {
	w := &WorldState{
		Grid: sea.Grid,
		Player: &domain.Player{
			Pos:        sea.Dock,
			Dock:       sea.Dock,
			Cargo:      make(map[string]int),
			CrewBerths: cfg.Crew.Size,
		},
		Activity:     domain.ActivityIdle,
		Enemies:      make(map[string]*domain.Enemy, len(sea.Enemies)),
		Crew:         make(map[string]*domain.CrewMember, cfg.Crew.Size),
		Collectibles: make(map[string]*domain.Collectible, len(sea.Collectibles)),
		Artifacts:    make(map[string]*domain.Artifact, len(sea.Artifacts)),
		Coves:        sea.Coves,
		Skills:       systems.NewProgression(cfg.Unlocks),
	}
	w.Player.Motion.Place(sea.Dock)

	for _, e := range sea.Enemies {
		// Генератор считает время от нуля, симуляция - от старта
		e.NextMoveTime += now
		w.Enemies[e.ID] = e
		w.enemyOrder = append(w.enemyOrder, e.ID)
	}
	sort.Strings(w.enemyOrder)

	for _, c := range sea.Collectibles {
		w.Collectibles[c.ID] = c
	}
	for _, a := range sea.Artifacts {
		w.Artifacts[a.ID] = a
	}
	for i := 0; i < cfg.Crew.Size; i++ {
		w.hireCrew(sea.Dock)
	}

	w.Grid.RevealAround(sea.Dock, cfg.World.RevealRadius)
	return w
}

// Touch отмечает изменение состояния
func (w *WorldState) Touch() {
	w.Version++
}

// GetEnemy реализует systems.EnemyProvider
func (w *WorldState) GetEnemy(id string) *domain.Enemy {
	return w.Enemies[id]
}

// EnemyIDs - id врагов в стабильном порядке
func (w *WorldState) EnemyIDs() []string {
	return w.enemyOrder
}

// removeEnemy удаляет врага вместе с его движением
func (w *WorldState) removeEnemy(id string) {
	if _, ok := w.Enemies[id]; !ok {
		return
	}
	delete(w.Enemies, id)
	for i, eid := range w.enemyOrder {
		if eid == id {
			w.enemyOrder = append(w.enemyOrder[:i], w.enemyOrder[i+1:]...)
			break
		}
	}
	w.Touch()
}

// CrewIDs - id экипажа в порядке найма
func (w *WorldState) CrewIDs() []string {
	return w.crewOrder
}

// hireCrew добавляет свободного матроса
func (w *WorldState) hireCrew(at domain.Position) *domain.CrewMember {
	w.crewSeq++
	c := &domain.CrewMember{
		ID:    fmt.Sprintf("crew_%d", w.crewSeq),
		Pos:   at,
		State: domain.CrewIdle,
	}
	c.Motion.Place(at)
	w.Crew[c.ID] = c
	w.crewOrder = append(w.crewOrder, c.ID)
	w.Touch()
	return c
}

// removeCrew - терминальное состояние: матрос исчезает из пула
func (w *WorldState) removeCrew(id string) {
	c, ok := w.Crew[id]
	if !ok {
		return
	}
	c.State = domain.CrewRemoved
	delete(w.Crew, id)
	for i, cid := range w.crewOrder {
		if cid == id {
			w.crewOrder = append(w.crewOrder[:i], w.crewOrder[i+1:]...)
			break
		}
	}
	w.Touch()
}

// IdleCrew - первый свободный матрос или nil
func (w *WorldState) IdleCrew() *domain.CrewMember {
	for _, id := range w.crewOrder {
		if c := w.Crew[id]; c.State == domain.CrewIdle {
			return c
		}
	}
	return nil
}

// CollectibleAt - свободный (не зарезервированный) ресурс в клетке.
// При нескольких ресурсах в клетке побеждает меньший id.
func (w *WorldState) CollectibleAt(p domain.Position) *domain.Collectible {
	var best *domain.Collectible
	for _, c := range w.Collectibles {
		if c.Pos != p || c.ReservedBy != "" {
			continue
		}
		if best == nil || c.ID < best.ID {
			best = c
		}
	}
	return best
}

// ArtifactAt - несобранный артефакт в клетке
func (w *WorldState) ArtifactAt(p domain.Position) *domain.Artifact {
	for _, a := range w.Artifacts {
		if a.Pos == p && !a.IsCollected {
			return a
		}
	}
	return nil
}

func (w *WorldState) nextLootID() string {
	w.lootSeq++
	return fmt.Sprintf("loot_%d", w.lootSeq)
}
