package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile holds the learning-pattern attributes of a user. StudyStyle,
// Availability and ExperienceLevel are nullable: an empty field means the user
// never filled it in and the scorer treats it as unknown.
type Profile struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	StudyStyle      *string
	Availability    *string
	ExperienceLevel *string
	InterestTags    []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BlindSpot is one self- or AI-assessed weak area: a topic with a [0,1]
// confidence.
type BlindSpot struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Topic      string
	Confidence float64
	CreatedAt  time.Time
}
