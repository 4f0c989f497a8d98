package suggest

import (
	"context"
	"testing"

	"study-buddy/internal/config"
	"study-buddy/internal/usecase"
)

func TestNewGeminiClient_NoKeyReturnsNil(t *testing.T) {
	c, err := NewGeminiClient(context.Background(), config.GeminiConfig{}, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c != nil {
		t.Fatalf("expected nil client without an API key")
	}
}

func TestNilClientReturnsErrors(t *testing.T) {
	var c *GeminiClient
	if _, err := c.GenerateActivities(context.Background(), usecase.LearningPatterns{}, usecase.CandidateSummary{}, nil); err == nil {
		t.Fatalf("expected error from nil client")
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`["a"]`, `["a"]`},
		{"```json\n[\"a\"]\n```", `["a"]`},
		{"```\n[\"a\"]\n```", `["a"]`},
	}
	for _, tc := range cases {
		if got := stripCodeFence(tc.in); got != tc.want {
			t.Fatalf("input %q: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
