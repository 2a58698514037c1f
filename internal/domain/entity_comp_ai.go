package domain

// Enemy - вражеский корабль NPC.
// Здоровье и урон выводятся из архетипа и уровня, лут разыгрывается один раз при спавне.
type Enemy struct {
	ID        string          `json:"id"`
	Archetype string          `json:"archetype"`
	Name      string          `json:"name"`
	Level     int             `json:"level"`
	Health    int             `json:"health"`
	MaxHealth int             `json:"maxHealth"`
	Damage    int             `json:"damage"`
	Pos       Position        `json:"pos"`
	Motion    MotionComponent `json:"motion"`

	// Планировщик блуждания
	NextMoveTime int64   `json:"nextMoveTime"`
	SegmentMs    float64 `json:"segmentMs"`
	AggroRange   int     `json:"aggroRange"`
	XPReward     int     `json:"xpReward"`
	Bounty       int     `json:"bounty"`

	Loot map[string]int `json:"loot,omitempty"`
}

// IsReadyToWander - пора выбирать новый маршрут
func (e *Enemy) IsReadyToWander(now int64) bool {
	return e.Motion.IsIdle() && now >= e.NextMoveTime
}

// DelayWander откладывает следующее решение
func (e *Enemy) DelayWander(now, delayMs int64) {
	e.NextMoveTime = now + delayMs
}
