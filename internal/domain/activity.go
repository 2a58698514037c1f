package domain

// Activity - чем сейчас занят игрок. Ровно одно значение в каждый момент.
type Activity uint8

const (
	ActivityIdle Activity = iota
	ActivityTraveling
	ActivityCollecting
	ActivityInCombat
)

func (a Activity) String() string {
	switch a {
	case ActivityIdle:
		return "IDLE"
	case ActivityTraveling:
		return "TRAVELING"
	case ActivityCollecting:
		return "COLLECTING"
	case ActivityInCombat:
		return "IN_COMBAT"
	default:
		return "UNKNOWN"
	}
}

// CombatSession - единственная активная битва
type CombatSession struct {
	EnemyID   string  `json:"enemyId"`
	StartTime int64   `json:"startTime"`
	Duration  int64   `json:"duration"`
	Progress  float64 `json:"progress"` // 0..100, монотонно
}

// UpdateProgress пересчитывает прогресс. Назад не откатывается.
func (c *CombatSession) UpdateProgress(now int64) float64 {
	if c.Duration <= 0 {
		c.Progress = 100
		return c.Progress
	}
	p := float64(now-c.StartTime) / float64(c.Duration) * 100
	if p > 100 {
		p = 100
	}
	if p > c.Progress {
		c.Progress = p
	}
	return c.Progress
}

// CollectionSession - активный сбор ресурса игроком
type CollectionSession struct {
	CollectibleID string `json:"collectibleId"`
	StartTime     int64  `json:"startTime"`
	Duration      int64  `json:"duration"`
}

// DoneAt - момент завершения
func (c *CollectionSession) DoneAt() int64 {
	return c.StartTime + c.Duration
}

// Progress в процентах для UI
func (c *CollectionSession) Progress(now int64) float64 {
	if c.Duration <= 0 {
		return 100
	}
	p := float64(now-c.StartTime) / float64(c.Duration) * 100
	return min(max(p, 0), 100)
}
