package network

import (
	"testing"

	"salvage-server/pkg/api"
)

func TestBroadcaster(t *testing.T) {
	b := NewBroadcaster()
	a := b.Register("a")
	c := b.Register("c")

	if b.SubscriberCount() != 2 || !b.HasSubscriber("a") {
		t.Fatalf("count = %d", b.SubscriberCount())
	}

	b.Broadcast(api.ServerResponse{Version: 1})
	if got := <-a; got.Version != 1 {
		t.Errorf("a got version %d", got.Version)
	}
	if got := <-c; got.Version != 1 {
		t.Errorf("c got version %d", got.Version)
	}

	if !b.SendTo("c", api.ServerResponse{Type: "RESULT"}) {
		t.Fatal("unicast failed")
	}
	if got := <-c; got.Type != "RESULT" {
		t.Errorf("c got %q", got.Type)
	}
	if len(a) != 0 {
		t.Error("unicast leaked to another session")
	}
	if b.SendTo("nobody", api.ServerResponse{}) {
		t.Error("send to unknown session must fail")
	}
}

func TestBroadcaster_ReRegisterClosesOld(t *testing.T) {
	b := NewBroadcaster()
	old := b.Register("s")
	cur := b.Register("s")

	if _, ok := <-old; ok {
		t.Fatal("old channel must be closed")
	}

	// Отписка старого соединения не трогает новое
	b.Unregister("s", old)
	if !b.HasSubscriber("s") {
		t.Fatal("stale unregister removed the live session")
	}

	b.Unregister("s", cur)
	if _, ok := <-cur; ok || b.HasSubscriber("s") {
		t.Error("session must be gone")
	}
}

func TestBroadcaster_SlowSubscriberDoesNotBlock(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("slow")

	for i := 0; i < SubscriberBuffer+10; i++ {
		b.Broadcast(api.ServerResponse{Version: uint64(i)})
	}
	if len(ch) != SubscriberBuffer {
		t.Errorf("buffered = %d", len(ch))
	}
	if b.SendTo("slow", api.ServerResponse{}) {
		t.Error("send to a full channel must report a drop")
	}
}
