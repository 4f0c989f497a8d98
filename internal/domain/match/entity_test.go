package match

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestValidateTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusActive, false},
		{StatusPending, StatusPending, false},
		{StatusAccepted, StatusActive, true},
		{StatusAccepted, StatusRejected, false},
		{StatusAccepted, StatusPending, false},
		{StatusRejected, StatusAccepted, false},
		{StatusRejected, StatusActive, false},
		{StatusActive, StatusPending, false},
		{StatusActive, StatusRejected, false},
	}
	for _, tc := range cases {
		err := ValidateTransition(tc.from, tc.to)
		if tc.ok && err != nil {
			t.Fatalf("%s -> %s: unexpected err %v", tc.from, tc.to, err)
		}
		if !tc.ok {
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("%s -> %s: expected ErrInvalidTransition, got %v", tc.from, tc.to, err)
			}
		}
	}
}

func TestParseStatus(t *testing.T) {
	if s, ok := ParseStatus(" Accepted "); !ok || s != StatusAccepted {
		t.Fatalf("expected accepted, got %q ok=%v", s, ok)
	}
	if _, ok := ParseStatus("archived"); ok {
		t.Fatalf("expected parse failure for unknown status")
	}
	if _, ok := ParseStatus(""); ok {
		t.Fatalf("expected parse failure for empty status")
	}
}

func TestMatchInvolves(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	m := Match{UserID: a, PartnerID: b}

	if !m.Involves(a) || !m.Involves(b) {
		t.Fatalf("expected both sides to be involved")
	}
	if m.Involves(c) {
		t.Fatalf("unrelated user should not be involved")
	}
}
