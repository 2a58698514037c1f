package domain

// --- КОМПОНЕНТЫ ---

// MotionComponent - состояние движения по маршруту (логика в systems/movement.go).
// Path[0] - цель текущего сегмента. Пустой Path - сущность стоит.
type MotionComponent struct {
	From            Position   `json:"from"`            // Клетка начала текущего сегмента
	FromVisual      Vec        `json:"fromVisual"`      // Визуальная точка начала сегмента (после реролла != From)
	Path            []Position `json:"path,omitempty"`  // Оставшиеся клетки
	Elapsed         float64    `json:"elapsed"`         // Накопленное время внутри сегмента, мс
	SegmentDuration float64    `json:"segmentDuration"` // Длительность текущего сегмента, мс
	BaseDuration    float64    `json:"baseDuration"`    // Номинальная длительность сегмента маршрута
	Visual          Vec        `json:"visual"`
	Rotation        float64    `json:"rotation"` // Радианы, сохраняется при остановке
}

// IsIdle - нет активного маршрута
func (m *MotionComponent) IsIdle() bool {
	return len(m.Path) == 0
}

// Target возвращает клетку, в которую сейчас идет сегмент
func (m *MotionComponent) Target() (Position, bool) {
	if len(m.Path) == 0 {
		return Position{}, false
	}
	return m.Path[0], true
}

// Destination - последняя клетка маршрута
func (m *MotionComponent) Destination() (Position, bool) {
	if len(m.Path) == 0 {
		return Position{}, false
	}
	return m.Path[len(m.Path)-1], true
}

// Place ставит сущность в клетку без анимации
func (m *MotionComponent) Place(p Position) {
	m.From = p
	m.FromVisual = p.Vec()
	m.Path = nil
	m.Elapsed = 0
	m.SegmentDuration = 0
	m.Visual = p.Vec()
}

// --- СУЩНОСТИ ---

// Player - корабль игрока
type Player struct {
	Pos    Position        `json:"pos"`
	Dock   Position        `json:"dock"`
	Motion MotionComponent `json:"motion"`

	Cargo    map[string]int `json:"cargo"`
	Currency int            `json:"currency"`

	EngineLevel     int   `json:"engineLevel"`
	CrewBerths      int   `json:"crewBerths"`
	SpeedBoostUntil int64 `json:"speedBoostUntil,omitempty"`
}

// AddCargo кладет ресурс в трюм
func (p *Player) AddCargo(resource string, count int) {
	if p.Cargo == nil {
		p.Cargo = make(map[string]int)
	}
	p.Cargo[resource] += count
}

// HasSpeedBoost - активен ли ускоритель
func (p *Player) HasSpeedBoost(now int64) bool {
	return p.SpeedBoostUntil > now
}

// Collectible - ресурсный узел (или выпавший лут)
type Collectible struct {
	ID             string   `json:"id"`
	Pos            Position `json:"pos"`
	Type           string   `json:"type"`
	Richness       int      `json:"richness"`       // 1..3
	CollectionTime int64    `json:"collectionTime"` // мс
	IsLoot         bool     `json:"isLoot,omitempty"`
	ReservedBy     string   `json:"reservedBy,omitempty"` // ID члена экипажа, который его собирает
}

// Artifact - уникальная находка. Не восстанавливается.
type Artifact struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Pos          Position `json:"pos"`
	Clue         string   `json:"clue,omitempty"`
	IsCollected  bool     `json:"isCollected"`  // монотонно
	ClueRevealed bool     `json:"clueRevealed"` // монотонно, покупается
}

// Collect помечает артефакт найденным. Возвращает false, если он уже был собран.
func (a *Artifact) Collect() bool {
	if a.IsCollected {
		return false
	}
	a.IsCollected = true
	return true
}
