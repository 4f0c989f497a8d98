package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestReplaceBlindSpots_ValidatesConfidenceRange(t *testing.T) {
	uc := NewBlindSpotUsecase(mockBlindSpotRepo{}, nil)

	cases := []GapInput{
		{Topic: "calculus", Confidence: -0.1},
		{Topic: "calculus", Confidence: 1.1},
		{Topic: "   ", Confidence: 0.5},
	}
	for _, bad := range cases {
		_, err := uc.ReplaceBlindSpots(context.Background(), uuid.New(), []GapInput{bad})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", bad, err)
		}
	}
}

func TestReplaceBlindSpots_DeduplicatesCaseInsensitively(t *testing.T) {
	uc := NewBlindSpotUsecase(mockBlindSpotRepo{}, nil)

	out, err := uc.ReplaceBlindSpots(context.Background(), uuid.New(), []GapInput{
		{Topic: "Calculus", Confidence: 0.2},
		{Topic: "calculus", Confidence: 0.8},
		{Topic: "graphs", Confidence: 0.5},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 rows after dedup, got %d", len(out))
	}
	// First occurrence wins.
	if out[0].Topic != "Calculus" || out[0].Confidence != 0.2 {
		t.Fatalf("unexpected first row: %+v", out[0])
	}
}

func TestReplaceBlindSpots_EmptyListClears(t *testing.T) {
	uc := NewBlindSpotUsecase(mockBlindSpotRepo{}, nil)
	out, err := uc.ReplaceBlindSpots(context.Background(), uuid.New(), nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %v", out)
	}
}
