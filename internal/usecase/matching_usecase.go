package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	"study-buddy/internal/domain/match"
	"study-buddy/internal/domain/matching"
	"study-buddy/internal/domain/user"
	"study-buddy/internal/repository"

	"github.com/google/uuid"
)

const maxReturnedMatches = 10

// MatchRequest is the UserProfile-shaped request body. Fields left empty fall
// back to the requester's stored profile.
type MatchRequest struct {
	Subjects        []string
	StudyStyle      string
	Availability    string
	ExperienceLevel string
	KnowledgeGaps   []GapInput
}

type FindMatchesResult struct {
	Matches         []match.Match
	SuggestedTopics []TopicSuggestion
}

// MatchNotifier pushes a matches-updated event to connected clients. Delivery
// is fire-and-forget.
type MatchNotifier interface {
	NotifyMatchesUpdated(userIDs ...uuid.UUID)
}

type MatchingUsecase interface {
	FindMatches(ctx context.Context, userID uuid.UUID, req MatchRequest) (FindMatchesResult, error)
}

type Matching struct {
	profiles   repository.ProfileRepository
	blindSpots repository.BlindSpotRepository
	matches    repository.MatchRepository
	suggest    SuggestionClient
	cache      MatchCache
	notifier   MatchNotifier
	logger     *log.Logger
}

func NewMatchingUsecase(
	profiles repository.ProfileRepository,
	blindSpots repository.BlindSpotRepository,
	matches repository.MatchRepository,
	suggest SuggestionClient,
	cache MatchCache,
	notifier MatchNotifier,
	logger *log.Logger,
) *Matching {
	if logger == nil {
		logger = log.Default()
	}
	return &Matching{
		profiles:   profiles,
		blindSpots: blindSpots,
		matches:    matches,
		suggest:    suggest,
		cache:      cache,
		notifier:   notifier,
		logger:     logger,
	}
}

func (u *Matching) FindMatches(ctx context.Context, userID uuid.UUID, req MatchRequest) (FindMatchesResult, error) {
	if userID == uuid.Nil {
		return FindMatchesResult{}, ErrUnauthorized
	}

	reqProfile, patterns, err := u.requesterProfile(ctx, userID, req)
	if err != nil {
		return FindMatchesResult{}, err
	}
	if len(reqProfile.Subjects) == 0 {
		return FindMatchesResult{}, ErrInvalidInput
	}

	// A candidate-enumeration failure is fatal: no partial results.
	candidates, err := u.profiles.ListCandidates(ctx, userID)
	if err != nil {
		u.logger.Printf("[Matching] candidate enumeration failed | user_id=%s err=%v", userID, err)
		return FindMatchesResult{}, ErrInternal
	}

	retained := make([]match.Match, 0, len(candidates))
	for _, c := range candidates {
		gapScore := u.gapComplementarity(ctx, reqProfile.Gaps, c.UserID)
		score := matching.Compatibility(reqProfile, candidateForScoring(c), gapScore)
		if score <= matching.MinScore {
			continue
		}

		common := matching.CommonTopics(reqProfile.Subjects, c.InterestTags)
		activities := u.suggestActivities(ctx, patterns, c, common)

		retained = append(retained, match.Match{
			ID:                  uuid.New(),
			UserID:              userID,
			PartnerID:           c.UserID,
			CompatibilityScore:  score,
			CommonTopics:        common,
			SuggestedActivities: activities,
			Status:              match.StatusPending,
		})
	}

	sort.SliceStable(retained, func(i, j int) bool {
		return retained[i].CompatibilityScore > retained[j].CompatibilityScore
	})

	// The full retained set is persisted, not just the returned slice. A
	// write failure must not fail the ranking call.
	if err := u.matches.UpsertBatch(ctx, retained); err != nil {
		u.logger.Printf("[Matching] match persistence failed | user_id=%s count=%d err=%v", userID, len(retained), err)
	} else {
		u.invalidateAndNotify(ctx, userID, retained)
	}

	top := retained
	if len(top) > maxReturnedMatches {
		top = top[:maxReturnedMatches]
	}

	return FindMatchesResult{
		Matches:         top,
		SuggestedTopics: u.suggestTopics(ctx, patterns, req.KnowledgeGaps),
	}, nil
}

// requesterProfile merges the request body with the stored profile: explicit
// body fields win, stored fields fill the holes. A missing stored profile is
// fine as long as the body carries subjects.
func (u *Matching) requesterProfile(ctx context.Context, userID uuid.UUID, req MatchRequest) (matching.Profile, LearningPatterns, error) {
	stored, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, user.ErrProfileNotFound) {
		u.logger.Printf("[Matching] profile lookup failed | user_id=%s err=%v", userID, err)
		return matching.Profile{}, LearningPatterns{}, ErrInternal
	}

	subjects := cleanStrings(req.Subjects)
	if len(subjects) == 0 {
		subjects = cleanStrings(stored.InterestTags)
	}

	style := req.StudyStyle
	if style == "" && stored.StudyStyle != nil {
		style = *stored.StudyStyle
	}
	level := req.ExperienceLevel
	if level == "" && stored.ExperienceLevel != nil {
		level = *stored.ExperienceLevel
	}
	availability := req.Availability
	if availability == "" && stored.Availability != nil {
		availability = *stored.Availability
	}

	gaps := make([]matching.TopicConfidence, 0, len(req.KnowledgeGaps))
	for _, g := range req.KnowledgeGaps {
		gaps = append(gaps, matching.TopicConfidence{Topic: g.Topic, Confidence: g.Confidence})
	}

	profile := matching.Profile{
		Subjects:   subjects,
		StudyStyle: matching.ParseStudyStyle(style),
		Level:      matching.ParseExperienceLevel(level),
		Gaps:       gaps,
	}
	patterns := LearningPatterns{
		Subjects:        subjects,
		StudyStyle:      style,
		Availability:    availability,
		ExperienceLevel: level,
	}
	return profile, patterns, nil
}

// gapComplementarity fetches the candidate's blind spots and computes the
// complementarity sub-score. It never fails: a storage error is logged and
// scored as the neutral 0.5 so one bad lookup cannot abort the whole ranking.
func (u *Matching) gapComplementarity(ctx context.Context, reqGaps []matching.TopicConfidence, candidateID uuid.UUID) float64 {
	spots, err := u.blindSpots.FindByUserID(ctx, candidateID)
	if err != nil {
		u.logger.Printf("[Matching] blind spot lookup failed | candidate_id=%s err=%v", candidateID, err)
		return 0.5
	}

	candGaps := make([]matching.TopicConfidence, 0, len(spots))
	for _, s := range spots {
		candGaps = append(candGaps, matching.TopicConfidence{Topic: s.Topic, Confidence: s.Confidence})
	}
	return matching.Complementarity(reqGaps, candGaps)
}

// suggestActivities asks the collaborator first and falls back to templates on
// any failure. The result is always non-empty and capped at five entries.
func (u *Matching) suggestActivities(ctx context.Context, patterns LearningPatterns, c repository.Candidate, commonTopics []string) []string {
	if u.suggest != nil {
		summary := CandidateSummary{
			InterestTags:    c.InterestTags,
			StudyStyle:      derefOrEmpty(c.StudyStyle),
			ExperienceLevel: derefOrEmpty(c.ExperienceLevel),
		}
		activities, err := u.suggest.GenerateActivities(ctx, patterns, summary, commonTopics)
		if err == nil {
			if cleaned := truncateActivities(activities); len(cleaned) > 0 {
				return cleaned
			}
		} else {
			u.logger.Printf("[Matching] activity suggestion failed, using fallback | err=%v", err)
		}
	}
	return fallbackActivities(commonTopics)
}

func (u *Matching) suggestTopics(ctx context.Context, patterns LearningPatterns, gaps []GapInput) []TopicSuggestion {
	if u.suggest != nil {
		topics, err := u.suggest.GenerateDiscussionTopics(ctx, patterns, gaps)
		if err == nil && len(topics) > 0 {
			return topics
		}
		if err != nil {
			u.logger.Printf("[Matching] topic suggestion failed, using fallback | err=%v", err)
		}
	}
	return fallbackTopics(patterns.Subjects)
}

func (u *Matching) invalidateAndNotify(ctx context.Context, userID uuid.UUID, persisted []match.Match) {
	if len(persisted) == 0 {
		return
	}

	if u.cache != nil {
		if err := u.cache.Delete(ctx, matchListCacheKey(userID)); err != nil {
			u.logger.Printf("[Matching] cache invalidation failed | user_id=%s err=%v", userID, err)
		}
		for _, m := range persisted {
			_ = u.cache.Delete(ctx, matchListCacheKey(m.PartnerID))
		}
	}

	if u.notifier != nil {
		ids := make([]uuid.UUID, 0, len(persisted)+1)
		ids = append(ids, userID)
		for _, m := range persisted {
			ids = append(ids, m.PartnerID)
		}
		u.notifier.NotifyMatchesUpdated(ids...)
	}
}

func candidateForScoring(c repository.Candidate) matching.Candidate {
	out := matching.Candidate{InterestTags: c.InterestTags}
	if c.StudyStyle != nil {
		out.StudyStyle = matching.ParseStudyStyle(*c.StudyStyle)
	}
	if c.ExperienceLevel != nil {
		out.Level = matching.ParseExperienceLevel(*c.ExperienceLevel)
	}
	return out
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it != "" {
			out = append(out, it)
		}
	}
	return out
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
