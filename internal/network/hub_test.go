package network

import (
	"testing"

	"photocrop-server/pkg/api"
)

func TestBroadcaster(t *testing.T) {
	b := NewBroadcaster()

	a := b.Register("a")
	c := b.Register("c")
	if b.SubscriberCount() != 2 {
		t.Fatalf("expected 2 subscribers, got %d", b.SubscriberCount())
	}

	b.Broadcast(api.ServerResponse{Type: api.MsgUpdate})
	for name, ch := range map[string]chan api.ServerResponse{"a": a, "c": c} {
		select {
		case msg := <-ch:
			if msg.Type != api.MsgUpdate {
				t.Errorf("%s: unexpected type %s", name, msg.Type)
			}
		default:
			t.Errorf("%s: broadcast not delivered", name)
		}
	}

	b.SendTo("a", api.ServerResponse{Type: api.MsgError})
	if len(a) != 1 || len(c) != 0 {
		t.Errorf("unicast leaked: a=%d c=%d", len(a), len(c))
	}

	b.SendTo("missing", api.ServerResponse{Type: api.MsgError})
}

func TestBroadcasterReRegister(t *testing.T) {
	b := NewBroadcaster()

	first := b.Register("a")
	second := b.Register("a")

	if _, ok := <-first; ok {
		t.Error("old channel must be closed")
	}

	// Отключение старого соединения не трогает новое
	b.Unregister("a", first)
	if !b.HasSubscriber("a") {
		t.Fatal("new subscriber dropped by stale unregister")
	}

	b.Unregister("a", second)
	if b.HasSubscriber("a") || b.SubscriberCount() != 0 {
		t.Error("subscriber not removed")
	}
}

func TestBroadcasterDropsWhenFull(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("slow")

	for i := 0; i < clientBuffer+10; i++ {
		b.Broadcast(api.ServerResponse{Tick: i})
	}
	if len(ch) != clientBuffer {
		t.Errorf("expected buffer of %d, got %d", clientBuffer, len(ch))
	}
}
