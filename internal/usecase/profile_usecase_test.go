package usecase

import (
	"context"
	"errors"
	"testing"

	"study-buddy/internal/domain/user"

	"github.com/google/uuid"
)

func TestUpdateProfile_RejectsUnknownStyle(t *testing.T) {
	uc := NewProfileUsecase(mockProfileRepo{}, nil)
	_, err := uc.UpdateProfile(context.Background(), uuid.New(), UpdateProfileInput{StudyStyle: "telepathic"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateProfile_RejectsUnknownLevel(t *testing.T) {
	uc := NewProfileUsecase(mockProfileRepo{}, nil)
	_, err := uc.UpdateProfile(context.Background(), uuid.New(), UpdateProfileInput{ExperienceLevel: "wizard"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateProfile_EmptyFieldsBecomeNil(t *testing.T) {
	uc := NewProfileUsecase(mockProfileRepo{}, nil)
	saved, err := uc.UpdateProfile(context.Background(), uuid.New(), UpdateProfileInput{
		InterestTags: []string{" math ", "", "physics"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if saved.StudyStyle != nil || saved.Availability != nil || saved.ExperienceLevel != nil {
		t.Fatalf("expected nil optional fields, got %+v", saved)
	}
	if len(saved.InterestTags) != 2 {
		t.Fatalf("expected blank tags dropped, got %v", saved.InterestTags)
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	uc := NewProfileUsecase(mockProfileRepo{profileErr: user.ErrProfileNotFound}, nil)
	_, err := uc.GetProfile(context.Background(), uuid.New())
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
