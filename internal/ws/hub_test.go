package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestHub_BroadcastReachesOnlyTargetUser(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	target := NewClient(hub, nil, "user-a")
	other := NewClient(hub, nil, "user-b")
	hub.Register(target)
	hub.Register(other)
	waitFor(t, func() bool { return hub.ClientCount() == 2 })

	hub.Broadcast("user-a", []byte("hello"))

	select {
	case msg := <-target.send:
		if string(msg) != "hello" {
			t.Fatalf("unexpected payload: %s", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("target never received the broadcast")
	}

	select {
	case msg := <-other.send:
		t.Fatalf("other user should not receive the event, got %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_MultipleConnectionsPerUser(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	first := NewClient(hub, nil, "user-a")
	second := NewClient(hub, nil, "user-a")
	hub.Register(first)
	hub.Register(second)
	waitFor(t, func() bool { return hub.ClientCount() == 2 })

	hub.Broadcast("user-a", []byte("x"))

	for _, c := range []*Client{first, second} {
		select {
		case <-c.send:
		case <-time.After(2 * time.Second):
			t.Fatalf("connection missed the broadcast")
		}
	}
}

func TestHub_UnregisterRemovesClient(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	client := NewClient(hub, nil, "user-a")
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.Unregister(client)
	waitFor(t, func() bool { return hub.ClientCount() == 0 })

	// Channel is closed on unregister.
	if _, open := <-client.send; open {
		t.Fatalf("expected send channel closed")
	}
}

func TestMatchNotifier_DeduplicatesAndSkipsNil(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	userID := uuid.New()
	client := NewClient(hub, nil, userID.String())
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	notifier := NewMatchNotifier(hub)
	notifier.NotifyMatchesUpdated(userID, userID, uuid.Nil)

	select {
	case raw := <-client.send:
		var evt MatchesUpdatedEvent
		if err := json.Unmarshal(raw, &evt); err != nil {
			t.Fatalf("malformed event: %v", err)
		}
		if evt.Type != "matches_updated" || evt.UserID != userID.String() {
			t.Fatalf("unexpected event: %+v", evt)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event delivered")
	}

	// The duplicate id must not produce a second event.
	select {
	case <-client.send:
		t.Fatalf("duplicate event delivered")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMatchNotifier_NilHubIsNoop(t *testing.T) {
	var notifier *MatchNotifier
	notifier.NotifyMatchesUpdated(uuid.New())
	NewMatchNotifier(nil).NotifyMatchesUpdated(uuid.New())
}
