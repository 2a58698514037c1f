package engine

import (
	"container/heap"
	"testing"

	"salvage-server/internal/domain"
)

func TestDeadlineQueue(t *testing.T) {
	dq := make(DeadlineQueue, 0)
	heap.Init(&dq)

	d1 := &Deadline{EntityID: "crew_1", At: 10, seq: 1}
	d2 := &Deadline{EntityID: "crew_2", At: 5, seq: 2}
	d3 := &Deadline{EntityID: "crew_3", At: 20, seq: 3}

	heap.Push(&dq, d1)
	heap.Push(&dq, d2)
	heap.Push(&dq, d3)

	if dq.Len() != 3 {
		t.Errorf("Expected length 3, got %d", dq.Len())
	}

	first := heap.Pop(&dq).(*Deadline)
	if first.EntityID != "crew_2" {
		t.Errorf("Expected crew_2, got %s", first.EntityID)
	}

	// crew_1 переносится с 10 на 30, вперед выходит crew_3
	dq.Update(d1, 30, 4)

	second := heap.Pop(&dq).(*Deadline)
	if second.EntityID != "crew_3" {
		t.Errorf("Expected crew_3 (At 20), got %s", second.EntityID)
	}
	third := heap.Pop(&dq).(*Deadline)
	if third.EntityID != "crew_1" {
		t.Errorf("Expected crew_1 (At 30), got %s", third.EntityID)
	}
}

func TestScheduler_OrderAndTieBreak(t *testing.T) {
	s := NewScheduler()
	s.Schedule("crew_2", DeadlineDriftGrace, 100, domain.CrewAwaitingPickup)
	s.Schedule("crew_1", DeadlineCrewCollect, 100, domain.CrewCollecting)
	s.Schedule("enemy_1", DeadlineCombatPoll, 50, 0)
	s.Schedule("crew_3", DeadlineDriftLoss, 500, domain.CrewDrifting)

	due := s.PopDue(100)
	if len(due) != 3 {
		t.Fatalf("due = %d, want 3", len(due))
	}
	want := []string{"enemy_1", "crew_2", "crew_1"}
	for i, d := range due {
		if d.EntityID != want[i] {
			t.Errorf("due[%d] = %s, want %s", i, d.EntityID, want[i])
		}
	}
	if s.Len() != 1 {
		t.Errorf("one deadline must remain, got %d", s.Len())
	}
	if _, ok := s.PopNextDue(499); ok {
		t.Error("crew_3 is not due yet")
	}
}

func TestScheduler_ReplaceOnReschedule(t *testing.T) {
	s := NewScheduler()
	s.Schedule("crew_1", DeadlinePoachCheck, 1000, domain.CrewCollecting)
	s.Schedule("crew_1", DeadlinePoachCheck, 2000, domain.CrewAwaitingPickup)

	if s.Len() != 1 {
		t.Fatalf("reschedule must replace, len=%d", s.Len())
	}
	at, ok := s.When("crew_1", DeadlinePoachCheck)
	if !ok || at != 2000 {
		t.Errorf("When = %d,%v", at, ok)
	}
	d, ok := s.PopNextDue(2000)
	if !ok || d.Expect != domain.CrewAwaitingPickup {
		t.Errorf("popped %+v", d)
	}
}

func TestScheduler_Cancel(t *testing.T) {
	s := NewScheduler()
	s.Schedule("crew_1", DeadlineDriftGrace, 45000, domain.CrewAwaitingPickup)
	s.Schedule("crew_1", DeadlinePoachCheck, 1000, domain.CrewAwaitingPickup)
	s.Schedule("crew_2", DeadlineDriftGrace, 46000, domain.CrewAwaitingPickup)

	if !s.Cancel("crew_2", DeadlineDriftGrace) {
		t.Error("Cancel should report removal")
	}
	if s.Cancel("crew_2", DeadlineDriftGrace) {
		t.Error("second Cancel must be a no-op")
	}
	if n := s.CancelEntity("crew_1"); n != 2 {
		t.Errorf("CancelEntity removed %d, want 2", n)
	}
	if s.Len() != 0 || len(s.PopDue(1_000_000)) != 0 {
		t.Error("queue must be empty")
	}
	if s.Has("crew_1", DeadlineDriftGrace) {
		t.Error("index must be cleaned")
	}
}

func TestScheduler_DebugDump(t *testing.T) {
	s := NewScheduler()
	if dump := s.DebugDump(); dump == nil || len(dump) != 0 {
		t.Errorf("empty dump must be non-nil empty slice, got %v", dump)
	}
	s.Schedule("player", DeadlineSpeedBoostExpiry, 30000, 0)
	dump := s.DebugDump()
	if len(dump) != 1 || dump[0]["kind"] != "SPEED_BOOST_EXPIRY" {
		t.Errorf("dump = %v", dump)
	}
}
