package repository

import (
	"context"

	"study-buddy/internal/database"
	"study-buddy/internal/domain/user"

	"github.com/google/uuid"
)

type BlindSpotRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]user.BlindSpot, error)
	ReplaceForUser(ctx context.Context, userID uuid.UUID, spots []user.BlindSpot) ([]user.BlindSpot, error)
}

type PostgresBlindSpotRepository struct {
	db database.DB
}

func NewPostgresBlindSpotRepository(db database.DB) *PostgresBlindSpotRepository {
	return &PostgresBlindSpotRepository{db: db}
}

var _ BlindSpotRepository = (*PostgresBlindSpotRepository)(nil)

func (r *PostgresBlindSpotRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]user.BlindSpot, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, topic, confidence, created_at
		 FROM blind_spots
		 WHERE user_id = $1
		 ORDER BY topic ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.BlindSpot, 0)
	for rows.Next() {
		var bs user.BlindSpot
		if err := rows.Scan(&bs.ID, &bs.UserID, &bs.Topic, &bs.Confidence, &bs.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, bs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReplaceForUser swaps the user's full blind-spot set in one transaction so a
// concurrent matching request never observes a half-written set.
func (r *PostgresBlindSpotRepository) ReplaceForUser(ctx context.Context, userID uuid.UUID, spots []user.BlindSpot) ([]user.BlindSpot, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM blind_spots WHERE user_id = $1`, userID); err != nil {
		return nil, err
	}

	for _, bs := range spots {
		id := bs.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO blind_spots (id, user_id, topic, confidence) VALUES ($1, $2, $3, $4)`,
			id, userID, bs.Topic, bs.Confidence,
		)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return r.FindByUserID(ctx, userID)
}
