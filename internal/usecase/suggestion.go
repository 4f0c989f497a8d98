package usecase

import (
	"context"
	"fmt"
)

const maxSuggestedActivities = 5

// TopicSuggestion is one AI-suggested discussion topic with a one-sentence
// reason.
type TopicSuggestion struct {
	Topic  string `json:"topic"`
	Reason string `json:"reason"`
}

// CandidateSummary is the slimmed-down view of a candidate handed to the
// text-generation collaborator.
type CandidateSummary struct {
	InterestTags    []string
	StudyStyle      string
	ExperienceLevel string
}

// LearningPatterns describes the requester for suggestion prompts.
type LearningPatterns struct {
	Subjects        []string
	StudyStyle      string
	Availability    string
	ExperienceLevel string
}

// SuggestionClient is the external text-generation collaborator. Both calls
// are best-effort: any error makes the caller fall back to templates.
type SuggestionClient interface {
	GenerateActivities(ctx context.Context, requester LearningPatterns, candidate CandidateSummary, commonTopics []string) ([]string, error)
	GenerateDiscussionTopics(ctx context.Context, patterns LearningPatterns, gaps []GapInput) ([]TopicSuggestion, error)
}

// GapInput is one (topic, confidence) pair from the request body.
type GapInput struct {
	Topic      string  `json:"topic"`
	Confidence float64 `json:"confidence"`
}

// fallbackActivities builds the templated activity list used whenever the
// collaborator is unavailable: two topic-specific lines when there is at
// least one common topic, then two generic ones, capped at five.
func fallbackActivities(commonTopics []string) []string {
	out := make([]string, 0, 4)
	if len(commonTopics) > 0 {
		first := commonTopics[0]
		out = append(out,
			fmt.Sprintf("Study %s together in a shared session", first),
			fmt.Sprintf("Work through %s practice problems as a pair", first),
		)
	}
	out = append(out,
		"Schedule regular study sessions",
		"Share study resources and notes",
	)
	if len(out) > maxSuggestedActivities {
		out = out[:maxSuggestedActivities]
	}
	return out
}

// fallbackTopics derives one discussion topic per preferred subject.
func fallbackTopics(subjects []string) []TopicSuggestion {
	out := make([]TopicSuggestion, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, TopicSuggestion{
			Topic:  s,
			Reason: fmt.Sprintf("You both have %s in your study interests", s),
		})
	}
	return out
}

func truncateActivities(activities []string) []string {
	out := make([]string, 0, maxSuggestedActivities)
	for _, a := range activities {
		if a == "" {
			continue
		}
		out = append(out, a)
		if len(out) == maxSuggestedActivities {
			break
		}
	}
	return out
}
