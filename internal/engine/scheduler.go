package engine

import (
	"container/heap"

	"salvage-server/internal/domain"
	"salvage-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Scheduler - очередь дедлайнов вместо таймеров.
// На пару (сущность, тип) приходится не больше одного дедлайна: повторная постановка заменяет старый.
// Отмена - это удаление из очереди, а не очистка хэндла таймера.
type Scheduler struct {
	queue   DeadlineQueue
	itemMap map[deadlineKey]*Deadline
	seq     uint64
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		queue:   make(DeadlineQueue, 0),
		itemMap: make(map[deadlineKey]*Deadline),
	}
}

// Schedule ставит (или переносит) дедлайн
func (s *Scheduler) Schedule(entityID string, kind DeadlineKind, at int64, expect domain.CrewState) {
	s.seq++
	key := deadlineKey{entityID: entityID, kind: kind}
	if item, ok := s.itemMap[key]; ok {
		item.Expect = expect
		s.queue.Update(item, at, s.seq)
		return
	}

	item := &Deadline{EntityID: entityID, Kind: kind, Expect: expect, At: at, seq: s.seq}
	heap.Push(&s.queue, item)
	s.itemMap[key] = item

	logger.Log.WithFields(logrus.Fields{
		"component": "scheduler",
		"entity_id": entityID,
		"kind":      kind.String(),
		"at":        at,
	}).Debug("Deadline scheduled")
}

// Cancel снимает дедлайн. Возвращает false, если его не было.
func (s *Scheduler) Cancel(entityID string, kind DeadlineKind) bool {
	key := deadlineKey{entityID: entityID, kind: kind}
	item, ok := s.itemMap[key]
	if !ok {
		return false
	}
	heap.Remove(&s.queue, item.index)
	delete(s.itemMap, key)
	return true
}

// CancelEntity снимает все дедлайны сущности (удаление, возврат на борт)
func (s *Scheduler) CancelEntity(entityID string) int {
	removed := 0
	for key, item := range s.itemMap {
		if key.entityID != entityID {
			continue
		}
		heap.Remove(&s.queue, item.index)
		delete(s.itemMap, key)
		removed++
	}
	return removed
}

// Has - стоит ли дедлайн
func (s *Scheduler) Has(entityID string, kind DeadlineKind) bool {
	_, ok := s.itemMap[deadlineKey{entityID: entityID, kind: kind}]
	return ok
}

// When - на какой момент стоит дедлайн
func (s *Scheduler) When(entityID string, kind DeadlineKind) (int64, bool) {
	item, ok := s.itemMap[deadlineKey{entityID: entityID, kind: kind}]
	if !ok {
		return 0, false
	}
	return item.At, true
}

// PeekNext возвращает ближайший дедлайн, не снимая его
func (s *Scheduler) PeekNext() *Deadline {
	if s.queue.Len() == 0 {
		return nil
	}
	return s.queue[0]
}

// PopNextDue снимает ближайший дедлайн, если он наступил к моменту now
func (s *Scheduler) PopNextDue(now int64) (Deadline, bool) {
	next := s.PeekNext()
	if next == nil || next.At > now {
		return Deadline{}, false
	}
	item := heap.Pop(&s.queue).(*Deadline)
	delete(s.itemMap, item.key())
	return *item, true
}

// PopDue снимает все наступившие дедлайны в порядке (At, seq)
func (s *Scheduler) PopDue(now int64) []Deadline {
	var due []Deadline
	for {
		d, ok := s.PopNextDue(now)
		if !ok {
			return due
		}
		due = append(due, d)
	}
}

func (s *Scheduler) Len() int {
	return s.queue.Len()
}

// DebugDump возвращает снимок очереди для отладки
func (s *Scheduler) DebugDump() []map[string]interface{} {
	// Инициализируем как пустой слайс, а не nil. Тогда в JSON это будет "[]", а не "null"
	result := make([]map[string]interface{}, 0)

	for _, item := range s.queue {
		result = append(result, map[string]interface{}{
			"entityId": item.EntityID,
			"kind":     item.Kind.String(),
			"expect":   item.Expect.String(),
			"at":       item.At,
			"index":    item.index,
		})
	}
	return result
}
