package match

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusActive   Status = "active"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// transitions is the full state machine. Pending can be accepted or rejected;
// an accepted match can become active; rejected and active are terminal.
var transitions = map[Status][]Status{
	StatusPending:  {StatusAccepted, StatusRejected},
	StatusAccepted: {StatusActive},
	StatusRejected: {},
	StatusActive:   {},
}

type Match struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	PartnerID           uuid.UUID
	CompatibilityScore  float64
	CommonTopics        []string
	SuggestedActivities []string
	Status              Status
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusActive:
		return s, true
	}
	return "", false
}

// ValidateTransition reports whether from may move to to, returning a typed
// error naming both states otherwise.
func ValidateTransition(from, to Status) error {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// Involves reports whether the given user is either side of the match.
func (m Match) Involves(userID uuid.UUID) bool {
	return m.UserID == userID || m.PartnerID == userID
}
