package engine

import (
	"container/heap"

	"salvage-server/internal/domain"
)

// DeadlineKind - тип отложенного перехода
type DeadlineKind uint8

const (
	DeadlineCrewCollect DeadlineKind = iota + 1
	DeadlineDriftGrace
	DeadlineDriftLoss
	DeadlinePoachCheck
	DeadlineCombatPoll
	DeadlineSpeedBoostExpiry
)

var deadlineKindNames = map[DeadlineKind]string{
	DeadlineCrewCollect:      "CREW_COLLECT",
	DeadlineDriftGrace:       "DRIFT_GRACE",
	DeadlineDriftLoss:        "DRIFT_LOSS",
	DeadlinePoachCheck:       "POACH_CHECK",
	DeadlineCombatPoll:       "COMBAT_POLL",
	DeadlineSpeedBoostExpiry: "SPEED_BOOST_EXPIRY",
}

func (k DeadlineKind) String() string {
	if name, ok := deadlineKindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Deadline - момент, когда сущность должна сменить состояние.
// Expect - состояние экипажа, для которого дедлайн ставился (только для дедлайнов экипажа).
type Deadline struct {
	EntityID string
	Kind     DeadlineKind
	Expect   domain.CrewState
	At       int64 // мс

	seq   uint64 // порядок постановки, разрешает равные At
	index int    // индекс в куче
}

type deadlineKey struct {
	entityID string
	kind     DeadlineKind
}

func (d *Deadline) key() deadlineKey {
	return deadlineKey{entityID: d.EntityID, kind: d.Kind}
}

// DeadlineQueue - min-heap по (At, seq)
type DeadlineQueue []*Deadline

func (dq DeadlineQueue) Len() int { return len(dq) }

func (dq DeadlineQueue) Less(i, j int) bool {
	if dq[i].At == dq[j].At {
		return dq[i].seq < dq[j].seq
	}
	return dq[i].At < dq[j].At
}

func (dq DeadlineQueue) Swap(i, j int) {
	dq[i], dq[j] = dq[j], dq[i]
	dq[i].index = i
	dq[j].index = j
}

func (dq *DeadlineQueue) Push(x any) {
	n := len(*dq)
	item := x.(*Deadline)
	item.index = n
	*dq = append(*dq, item)
}

func (dq *DeadlineQueue) Pop() any {
	old := *dq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.index = -1 // для безопасности
	*dq = old[0 : n-1]
	return item
}

// Update переносит дедлайн. seq обновляется: перенесенный считается поставленным последним.
func (dq *DeadlineQueue) Update(item *Deadline, at int64, seq uint64) {
	item.At = at
	item.seq = seq
	heap.Fix(dq, item.index)
}
