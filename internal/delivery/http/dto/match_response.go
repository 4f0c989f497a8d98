package dto

import (
	"time"

	"github.com/google/uuid"
)

type MatchResponse struct {
	ID                  uuid.UUID `json:"id"`
	UserID              uuid.UUID `json:"user_id"`
	PartnerID           uuid.UUID `json:"partner_id"`
	CompatibilityScore  float64   `json:"compatibility_score"`
	CommonTopics        []string  `json:"common_topics"`
	SuggestedActivities []string  `json:"suggested_activities"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type TopicSuggestionResponse struct {
	Topic  string `json:"topic"`
	Reason string `json:"reason"`
}

type FindMatchesResponse struct {
	Matches         []MatchResponse           `json:"matches"`
	SuggestedTopics []TopicSuggestionResponse `json:"suggested_topics"`
}

type MatchListResponse struct {
	Matches []MatchResponse `json:"matches"`
}
