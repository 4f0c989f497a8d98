package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MatchCache is the slice of the redis cache the match usecases need. A nil
// or unavailable cache degrades to plain repository reads.
type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

func matchListCacheKey(userID uuid.UUID) string {
	return "matches:user:" + userID.String()
}
