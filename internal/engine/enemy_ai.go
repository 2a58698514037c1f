package engine

import (
	"salvage-server/internal/systems"
)

// updateEnemies - независимый цикл блуждания каждого врага.
// Враги обходятся в порядке id, чтобы броски rng не зависели от обхода map.
func (s *GameService) updateEnemies(dt float64) {
	w := s.world
	locked := ""
	if w.Combat != nil {
		locked = w.Combat.EnemyID
	}

	for _, id := range w.EnemyIDs() {
		e := w.Enemies[id]
		// Враг в бою стоит на месте
		if id == locked {
			continue
		}

		if e.IsReadyToWander(s.now) {
			path, delay := systems.ComputeWanderPath(e, w.Grid.IsWalkable, s.rng, s.cfg.EnemyAI)
			e.DelayWander(s.now, delay)
			if len(path) > 0 {
				systems.AssignPath(&e.Motion, e.Pos, path, e.SegmentMs)
				w.Touch()
			}
			continue
		}

		if e.Motion.IsIdle() {
			continue
		}
		for _, cell := range systems.AdvanceMotion(&e.Motion, dt) {
			e.Pos = cell
		}
		w.Touch()
	}
}
