package realtime

import (
	"testing"

	"eventhub/internal/domain"
)

func TestHub_CountBroadcastOnConnectAndDisconnect(t *testing.T) {
	h := NewHub(testLogger())
	s1 := newTestSession("s1")
	s2 := newTestSession("s2")

	h.Add(s1)
	frame := drainOne(t, s1)
	if frame.Event != EventUsers {
		t.Fatalf("expected users event, got %q", frame.Event)
	}
	if got := frame.Data.(map[string]int)["count"]; got != 1 {
		t.Fatalf("expected count 1, got %d", got)
	}

	h.Add(s2)
	// Both sessions see the new count.
	for _, s := range []*Session{s1, s2} {
		frame := drainOne(t, s)
		if got := frame.Data.(map[string]int)["count"]; got != 2 {
			t.Fatalf("expected count 2, got %d", got)
		}
	}

	h.Remove(s1)
	frame = drainOne(t, s2)
	if got := frame.Data.(map[string]int)["count"]; got != 1 {
		t.Fatalf("expected count 1 after disconnect, got %d", got)
	}
	if h.Count() != 1 {
		t.Fatalf("expected 1 session, got %d", h.Count())
	}

	// Removing an unknown session changes nothing and broadcasts nothing.
	h.Remove(newTestSession("ghost"))
	select {
	case <-s2.send:
		t.Fatal("no broadcast expected for an unknown session")
	default:
	}
}

func TestHub_BroadcastToRoomReachesAllSessions(t *testing.T) {
	h := NewHub(testLogger())
	s1 := newTestSession("s1")
	s2 := newTestSession("s2")
	h.Add(s1)
	h.Add(s2)
	for _, s := range []*Session{s1, s2} {
		for len(s.send) > 0 {
			<-s.send
		}
	}

	msg := &domain.Message{ID: "m1", ChatRoomID: "room-1", UserID: "u1", Content: "halo"}
	h.BroadcastToRoom("room-1", msg)

	// Membership is implicit: every session gets the frame and filters by the
	// room ID carried in the message.
	for _, s := range []*Session{s1, s2} {
		frame := drainOne(t, s)
		if frame.Event != EventMessage {
			t.Fatalf("expected message event, got %q", frame.Event)
		}
		if got := frame.Data.(*domain.Message); got.ChatRoomID != "room-1" {
			t.Fatalf("unexpected message: %+v", got)
		}
	}
}

func TestHub_SlowConsumerDoesNotBlockBroadcast(t *testing.T) {
	h := NewHub(testLogger())
	slow := &Session{ID: "slow", send: make(chan Frame), logger: testLogger(), done: make(chan struct{})}
	ok := newTestSession("ok")
	h.Add(slow)
	h.Add(ok)
	for len(ok.send) > 0 {
		<-ok.send
	}

	h.BroadcastToRoom("room-1", &domain.Message{ID: "m1", ChatRoomID: "room-1"})

	frame := drainOne(t, ok)
	if frame.Event != EventMessage {
		t.Fatalf("expected message event, got %q", frame.Event)
	}
}
