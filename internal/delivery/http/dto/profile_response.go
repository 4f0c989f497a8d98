package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	StudyStyle      *string   `json:"study_style"`
	Availability    *string   `json:"availability"`
	ExperienceLevel *string   `json:"experience_level"`
	InterestTags    []string  `json:"interest_tags"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type BlindSpotResponse struct {
	ID         uuid.UUID `json:"id"`
	Topic      string    `json:"topic"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}
