package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type MatchesUpdatedEvent struct {
	Type      string `json:"type"`
	UserID    string `json:"user_id"`
	Timestamp string `json:"timestamp"`
}

// MatchNotifier adapts the hub to the usecase-facing notifier interface. It
// is constructed and injected at wiring time rather than held as a package
// global, so tests can pass their own.
type MatchNotifier struct {
	hub *Hub
}

func NewMatchNotifier(hub *Hub) *MatchNotifier {
	return &MatchNotifier{hub: hub}
}

func (n *MatchNotifier) NotifyMatchesUpdated(userIDs ...uuid.UUID) {
	if n == nil || n.hub == nil {
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	seen := make(map[uuid.UUID]struct{}, len(userIDs))
	for _, id := range userIDs {
		if id == uuid.Nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		evt := MatchesUpdatedEvent{
			Type:      "matches_updated",
			UserID:    id.String(),
			Timestamp: now,
		}
		b, err := json.Marshal(evt)
		if err != nil {
			continue
		}
		n.hub.Broadcast(id.String(), b)
	}
}
