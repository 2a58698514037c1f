package domain

// CrewState - состояние члена экипажа
type CrewState uint8

const (
	CrewIdle CrewState = iota
	CrewCollecting
	CrewAwaitingPickup
	CrewDrifting
	CrewRemoved
)

var crewStateNames = map[CrewState]string{
	CrewIdle:           "IDLE",
	CrewCollecting:     "COLLECTING",
	CrewAwaitingPickup: "AWAITING_PICKUP",
	CrewDrifting:       "DRIFTING",
	CrewRemoved:        "REMOVED",
}

func (s CrewState) String() string {
	if name, ok := crewStateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// CrewMember - матрос на шлюпке. Каждый - независимая машина состояний по таймерам.
type CrewMember struct {
	ID     string          `json:"id"`
	Pos    Position        `json:"pos"`
	Motion MotionComponent `json:"motion"`
	State  CrewState       `json:"state"`

	TargetID       string `json:"targetId,omitempty"` // Собираемый ресурс
	DeployedAt     int64  `json:"deployedAt,omitempty"`
	CollectDoneAt  int64  `json:"collectDoneAt,omitempty"`
	DriftStartTime int64  `json:"driftStartTime,omitempty"`

	PoachingEnemyID string `json:"poachingEnemyId,omitempty"`
	PoachStartTime  int64  `json:"poachStartTime,omitempty"`

	// Hold - собранный ресурс, ждущий подбора
	Hold *Collectible `json:"hold,omitempty"`
}

// IsExposed - можно ли браконьерить этого матроса
func (c *CrewMember) IsExposed() bool {
	return c.State == CrewCollecting || c.State == CrewAwaitingPickup
}

// CanBeRetrieved - подобрать можно, пока он ждет или дрейфует (до потери)
func (c *CrewMember) CanBeRetrieved() bool {
	return c.State == CrewAwaitingPickup || c.State == CrewDrifting
}

// ResetPoaching сбрасывает состязание с браконьером
func (c *CrewMember) ResetPoaching() {
	c.PoachingEnemyID = ""
	c.PoachStartTime = 0
}

// ReturnToDock возвращает матроса на борт
func (c *CrewMember) ReturnToDock(p Position) {
	c.State = CrewIdle
	c.Pos = p
	c.Motion.Place(p)
	c.TargetID = ""
	c.DeployedAt = 0
	c.CollectDoneAt = 0
	c.DriftStartTime = 0
	c.Hold = nil
	c.ResetPoaching()
}
