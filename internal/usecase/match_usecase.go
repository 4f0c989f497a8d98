package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"study-buddy/internal/domain/match"
	"study-buddy/internal/repository"

	"github.com/google/uuid"
)

type MatchUsecase interface {
	ListMatches(ctx context.Context, userID uuid.UUID) ([]match.Match, error)
	UpdateStatus(ctx context.Context, userID, matchID uuid.UUID, status match.Status) (match.Match, error)
}

type Matches struct {
	matches  repository.MatchRepository
	cache    MatchCache
	cacheTTL time.Duration
	logger   *log.Logger
}

func NewMatchUsecase(matches repository.MatchRepository, cache MatchCache, cacheTTL time.Duration, logger *log.Logger) *Matches {
	if logger == nil {
		logger = log.Default()
	}
	if cacheTTL <= 0 {
		cacheTTL = 600 * time.Second
	}
	return &Matches{matches: matches, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func (u *Matches) ListMatches(ctx context.Context, userID uuid.UUID) ([]match.Match, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	key := matchListCacheKey(userID)
	if u.cache != nil {
		var cached []match.Match
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	out, err := u.matches.FindByUserID(ctx, userID)
	if err != nil {
		u.logger.Printf("[Matches] list failed | user_id=%s err=%v", userID, err)
		return nil, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, out, u.cacheTTL); err != nil {
			u.logger.Printf("[Matches] cache write failed | user_id=%s err=%v", userID, err)
		}
	}
	return out, nil
}

// UpdateStatus applies one FSM-validated transition. Unlike the batch insert
// in the ranking path, failures here are surfaced: this is a direct user
// action with no safe fallback.
func (u *Matches) UpdateStatus(ctx context.Context, userID, matchID uuid.UUID, status match.Status) (match.Match, error) {
	if userID == uuid.Nil {
		return match.Match{}, ErrUnauthorized
	}
	if matchID == uuid.Nil {
		return match.Match{}, ErrInvalidInput
	}

	m, err := u.matches.FindByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return match.Match{}, ErrMatchNotFound
		}
		u.logger.Printf("[Matches] lookup failed | match_id=%s err=%v", matchID, err)
		return match.Match{}, ErrInternal
	}

	if !m.Involves(userID) {
		return match.Match{}, ErrForbidden
	}

	if err := match.ValidateTransition(m.Status, status); err != nil {
		return match.Match{}, err
	}

	if err := u.matches.UpdateStatus(ctx, matchID, status); err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return match.Match{}, ErrMatchNotFound
		}
		u.logger.Printf("[Matches] status update failed | match_id=%s status=%s err=%v", matchID, status, err)
		return match.Match{}, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.Delete(ctx, matchListCacheKey(m.UserID))
		_ = u.cache.Delete(ctx, matchListCacheKey(m.PartnerID))
	}

	m.Status = status
	return m, nil
}
