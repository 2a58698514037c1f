package engine

import (
	"sort"

	"salvage-server/internal/domain"
	"salvage-server/internal/systems"
	"salvage-server/pkg/api"
)

// BuildSnapshot создает неизменяемый слепок мира.
// Все слайсы и мапы копируются: симуляция продолжит менять свои, снимок останется прежним.
func (s *GameService) BuildSnapshot() api.ServerResponse {
	w := s.world

	resp := api.ServerResponse{
		Type:     "UPDATE",
		Version:  w.Version,
		Now:      s.now,
		Grid:     &api.GridMeta{Size: w.Grid.Size},
		Map:      buildMap(w.Grid),
		Player:   s.playerView(),
		Activity: w.Activity.String(),
		Skills:   skillViews(w.Skills),
	}

	if w.Combat != nil {
		resp.Combat = &api.CombatView{
			EnemyID:   w.Combat.EnemyID,
			StartTime: w.Combat.StartTime,
			Duration:  w.Combat.Duration,
			Progress:  w.Combat.Progress,
		}
	}
	if w.Collection != nil {
		resp.Collection = &api.CollectionView{
			CollectibleID: w.Collection.CollectibleID,
			StartTime:     w.Collection.StartTime,
			Duration:      w.Collection.Duration,
			Progress:      w.Collection.Progress(s.now),
		}
	}
	if w.PendingMove != nil {
		resp.PendingMove = &api.PosView{X: w.PendingMove.X, Y: w.PendingMove.Y}
	}

	for _, id := range w.EnemyIDs() {
		resp.Enemies = append(resp.Enemies, enemyView(w.Enemies[id]))
	}
	for _, id := range w.CrewIDs() {
		resp.Crew = append(resp.Crew, crewView(w.Crew[id]))
	}

	collectibleIDs := make([]string, 0, len(w.Collectibles))
	for id := range w.Collectibles {
		collectibleIDs = append(collectibleIDs, id)
	}
	sort.Strings(collectibleIDs)
	for _, id := range collectibleIDs {
		resp.Collectibles = append(resp.Collectibles, collectibleView(w.Collectibles[id]))
	}

	artifactIDs := make([]string, 0, len(w.Artifacts))
	for id := range w.Artifacts {
		artifactIDs = append(artifactIDs, id)
	}
	sort.Strings(artifactIDs)
	for _, id := range artifactIDs {
		a := w.Artifacts[id]
		view := api.ArtifactView{
			ID:           a.ID,
			Name:         a.Name,
			Pos:          posView(a.Pos),
			IsCollected:  a.IsCollected,
			ClueRevealed: a.ClueRevealed,
		}
		// Подсказка только после покупки
		if a.ClueRevealed {
			view.Clue = a.Clue
		}
		resp.Artifacts = append(resp.Artifacts, view)
	}

	for _, c := range w.Coves {
		resp.Coves = append(resp.Coves, api.CoveView{ID: c.ID, Name: c.Name, Pos: posView(c.Pos)})
	}

	unlocked := w.Skills.Unlocked()
	for id := range unlocked {
		resp.Unlocks = append(resp.Unlocks, id)
	}
	sort.Strings(resp.Unlocks)

	// Копия логов, чтобы не было гонки данных
	resp.Logs = make([]api.LogEntry, len(w.Logs))
	copy(resp.Logs, w.Logs)

	return resp
}

// buildMap - только исследованные клетки (туман войны)
func buildMap(g *domain.Grid) []api.TileView {
	tiles := make([]api.TileView, 0, g.ExploredCount())
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			t := g.Map[y][x]
			if !t.IsExplored {
				continue
			}
			tiles = append(tiles, api.TileView{
				X:             x,
				Y:             y,
				IsWalkable:    t.IsWalkable,
				IsHighlighted: t.IsHighlighted,
			})
		}
	}
	return tiles
}

func (s *GameService) playerView() *api.PlayerView {
	p := s.world.Player
	cargo := make(map[string]int, len(p.Cargo))
	for k, v := range p.Cargo {
		cargo[k] = v
	}
	view := &api.PlayerView{
		Pos:         posView(p.Pos),
		Visual:      vecView(p.Motion.Visual),
		Rotation:    p.Motion.Rotation,
		Path:        pathView(p.Motion.Path),
		Cargo:       cargo,
		Currency:    p.Currency,
		EngineLevel: p.EngineLevel,
		CrewBerths:  p.CrewBerths,
	}
	if p.HasSpeedBoost(s.now) {
		view.SpeedBoostUntil = p.SpeedBoostUntil
	}
	return view
}

func enemyView(e *domain.Enemy) api.EnemyView {
	return api.EnemyView{
		ID:        e.ID,
		Archetype: e.Archetype,
		Name:      e.Name,
		Level:     e.Level,
		Health:    e.Health,
		MaxHealth: e.MaxHealth,
		Pos:       posView(e.Pos),
		Visual:    vecView(e.Motion.Visual),
		Rotation:  e.Motion.Rotation,
		Moving:    !e.Motion.IsIdle(),
	}
}

func crewView(c *domain.CrewMember) api.CrewView {
	view := api.CrewView{
		ID:              c.ID,
		State:           c.State.String(),
		Pos:             posView(c.Pos),
		Visual:          vecView(c.Motion.Visual),
		Rotation:        c.Motion.Rotation,
		TargetID:        c.TargetID,
		DeployedAt:      c.DeployedAt,
		DriftStartTime:  c.DriftStartTime,
		PoachingEnemyID: c.PoachingEnemyID,
	}
	if c.Hold != nil {
		hold := collectibleView(c.Hold)
		view.Hold = &hold
	}
	return view
}

func collectibleView(c *domain.Collectible) api.CollectibleView {
	return api.CollectibleView{
		ID:             c.ID,
		Type:           c.Type,
		Richness:       c.Richness,
		CollectionTime: c.CollectionTime,
		Pos:            posView(c.Pos),
		IsLoot:         c.IsLoot,
		ReservedBy:     c.ReservedBy,
	}
}

func skillViews(p *systems.Progression) []api.SkillView {
	skills := p.Skills()
	views := make([]api.SkillView, 0, len(skills))
	for _, sk := range skills {
		view := api.SkillView{Type: string(sk.Type), Level: sk.Level, XP: sk.XP}
		if sk.Level < systems.MaxSkillLevel {
			view.NextLevelXP = systems.XPForLevel(sk.Level + 1)
		}
		views = append(views, view)
	}
	return views
}

func posView(p domain.Position) api.PosView {
	return api.PosView{X: p.X, Y: p.Y}
}

func vecView(v domain.Vec) api.VecView {
	return api.VecView{X: v.X, Y: v.Y}
}

func pathView(path []domain.Position) []api.PosView {
	if len(path) == 0 {
		return nil
	}
	out := make([]api.PosView, len(path))
	for i, p := range path {
		out[i] = posView(p)
	}
	return out
}
