package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"study-buddy/internal/domain/matching"
	"study-buddy/internal/domain/user"
	"study-buddy/internal/repository"

	"github.com/google/uuid"
)

type UpdateProfileInput struct {
	StudyStyle      string
	Availability    string
	ExperienceLevel string
	InterestTags    []string
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.Profile, error)
}

type Profiles struct {
	profiles repository.ProfileRepository
	logger   *log.Logger
}

func NewProfileUsecase(profiles repository.ProfileRepository, logger *log.Logger) *Profiles {
	if logger == nil {
		logger = log.Default()
	}
	return &Profiles{profiles: profiles, logger: logger}
}

func (u *Profiles) GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	if userID == uuid.Nil {
		return user.Profile{}, ErrUnauthorized
	}

	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrProfileNotFound) {
			return user.Profile{}, ErrProfileNotFound
		}
		u.logger.Printf("[Profiles] get failed | user_id=%s err=%v", userID, err)
		return user.Profile{}, ErrInternal
	}
	return p, nil
}

// UpdateProfile validates enum-ish fields at the boundary: style and level
// must parse into known variants or be empty (empty means unknown).
func (u *Profiles) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.Profile, error) {
	if userID == uuid.Nil {
		return user.Profile{}, ErrUnauthorized
	}

	style := strings.TrimSpace(in.StudyStyle)
	if style != "" && matching.ParseStudyStyle(style) == nil {
		return user.Profile{}, ErrInvalidInput
	}
	level := strings.TrimSpace(in.ExperienceLevel)
	if level != "" && matching.ParseExperienceLevel(level) == nil {
		return user.Profile{}, ErrInvalidInput
	}
	availability := strings.TrimSpace(in.Availability)

	p := user.Profile{
		UserID:          userID,
		StudyStyle:      optional(style),
		Availability:    optional(availability),
		ExperienceLevel: optional(level),
		InterestTags:    cleanStrings(in.InterestTags),
	}

	saved, err := u.profiles.Upsert(ctx, p)
	if err != nil {
		u.logger.Printf("[Profiles] upsert failed | user_id=%s err=%v", userID, err)
		return user.Profile{}, ErrInternal
	}
	return saved, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
