package repository

import (
	"context"
	"errors"

	"study-buddy/internal/database"
	"study-buddy/internal/domain/match"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	// UpsertBatch writes the computed match set as pending rows, keyed on the
	// (user_id, partner_id) pair so rematching refreshes instead of duplicating.
	UpsertBatch(ctx context.Context, matches []match.Match) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]match.Match, error)
	FindByID(ctx context.Context, id uuid.UUID) (match.Match, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status match.Status) error
}

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

var _ MatchRepository = (*PostgresMatchRepository)(nil)

func (r *PostgresMatchRepository) UpsertBatch(ctx context.Context, matches []match.Match) error {
	if len(matches) == 0 {
		return nil
	}

	for _, m := range matches {
		if m.UserID == uuid.Nil || m.PartnerID == uuid.Nil {
			continue
		}
		id := m.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		status := m.Status
		if status == "" {
			status = match.StatusPending
		}
		commonTopics := m.CommonTopics
		if commonTopics == nil {
			commonTopics = []string{}
		}
		activities := m.SuggestedActivities
		if activities == nil {
			activities = []string{}
		}

		_, err := r.db.Exec(ctx,
			`INSERT INTO matches (id, user_id, partner_id, compatibility_score, common_topics, suggested_activities, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (user_id, partner_id) DO UPDATE SET
				compatibility_score = EXCLUDED.compatibility_score,
				common_topics = EXCLUDED.common_topics,
				suggested_activities = EXCLUDED.suggested_activities,
				updated_at = now()`,
			id, m.UserID, m.PartnerID, m.CompatibilityScore, commonTopics, activities, status,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresMatchRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]match.Match, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, partner_id, compatibility_score, common_topics, suggested_activities, status, created_at, updated_at
		 FROM matches
		 WHERE user_id = $1 OR partner_id = $1
		 ORDER BY compatibility_score DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]match.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMatchRepository) FindByID(ctx context.Context, id uuid.UUID) (match.Match, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, partner_id, compatibility_score, common_topics, suggested_activities, status, created_at, updated_at
		 FROM matches
		 WHERE id = $1`,
		id,
	)
	m, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return match.Match{}, ErrMatchNotFound
		}
		return match.Match{}, err
	}
	return m, nil
}

func (r *PostgresMatchRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status match.Status) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE matches SET status = $1, updated_at = now() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func scanMatch(row database.Row) (match.Match, error) {
	var m match.Match
	var status string
	err := row.Scan(&m.ID, &m.UserID, &m.PartnerID, &m.CompatibilityScore,
		&m.CommonTopics, &m.SuggestedActivities, &status, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return match.Match{}, err
	}
	m.Status = match.Status(status)
	return m, nil
}
