package usecase

import (
	"context"
	"log"
	"strings"

	"study-buddy/internal/domain/user"
	"study-buddy/internal/repository"

	"github.com/google/uuid"
)

type BlindSpotUsecase interface {
	ListBlindSpots(ctx context.Context, userID uuid.UUID) ([]user.BlindSpot, error)
	ReplaceBlindSpots(ctx context.Context, userID uuid.UUID, spots []GapInput) ([]user.BlindSpot, error)
}

type BlindSpots struct {
	blindSpots repository.BlindSpotRepository
	logger     *log.Logger
}

func NewBlindSpotUsecase(blindSpots repository.BlindSpotRepository, logger *log.Logger) *BlindSpots {
	if logger == nil {
		logger = log.Default()
	}
	return &BlindSpots{blindSpots: blindSpots, logger: logger}
}

func (u *BlindSpots) ListBlindSpots(ctx context.Context, userID uuid.UUID) ([]user.BlindSpot, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	out, err := u.blindSpots.FindByUserID(ctx, userID)
	if err != nil {
		u.logger.Printf("[BlindSpots] list failed | user_id=%s err=%v", userID, err)
		return nil, ErrInternal
	}
	return out, nil
}

func (u *BlindSpots) ReplaceBlindSpots(ctx context.Context, userID uuid.UUID, spots []GapInput) ([]user.BlindSpot, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	rows := make([]user.BlindSpot, 0, len(spots))
	seen := make(map[string]struct{}, len(spots))
	for _, s := range spots {
		topic := strings.TrimSpace(s.Topic)
		if topic == "" {
			return nil, ErrInvalidInput
		}
		if s.Confidence < 0 || s.Confidence > 1 {
			return nil, ErrInvalidInput
		}
		key := strings.ToLower(topic)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, user.BlindSpot{
			UserID:     userID,
			Topic:      topic,
			Confidence: s.Confidence,
		})
	}

	out, err := u.blindSpots.ReplaceForUser(ctx, userID, rows)
	if err != nil {
		u.logger.Printf("[BlindSpots] replace failed | user_id=%s err=%v", userID, err)
		return nil, ErrInternal
	}
	return out, nil
}
