package repository

import (
	"context"
	"errors"

	"study-buddy/internal/database"
	"study-buddy/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Candidate is one member of the matchable population: a user profile with the
// fields the compatibility scorer reads. Nullable columns surface as nil
// pointers and score as unknown.
type Candidate struct {
	UserID          uuid.UUID
	StudyStyle      *string
	Availability    *string
	ExperienceLevel *string
	InterestTags    []string
}

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (user.Profile, error)
	Upsert(ctx context.Context, p user.Profile) (user.Profile, error)
	ListCandidates(ctx context.Context, excludeUserID uuid.UUID) ([]Candidate, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

var _ ProfileRepository = (*PostgresProfileRepository)(nil)

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, study_style, availability, experience_level, interest_tags, created_at, updated_at
		 FROM user_profiles
		 WHERE user_id = $1`,
		userID,
	)

	var p user.Profile
	err := row.Scan(&p.ID, &p.UserID, &p.StudyStyle, &p.Availability, &p.ExperienceLevel, &p.InterestTags, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.Profile{}, user.ErrProfileNotFound
		}
		return user.Profile{}, err
	}
	return p, nil
}

func (r *PostgresProfileRepository) Upsert(ctx context.Context, p user.Profile) (user.Profile, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.InterestTags == nil {
		p.InterestTags = []string{}
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO user_profiles (id, user_id, study_style, availability, experience_level, interest_tags)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id) DO UPDATE SET
			study_style = EXCLUDED.study_style,
			availability = EXCLUDED.availability,
			experience_level = EXCLUDED.experience_level,
			interest_tags = EXCLUDED.interest_tags,
			updated_at = now()`,
		p.ID, p.UserID, p.StudyStyle, p.Availability, p.ExperienceLevel, p.InterestTags,
	)
	if err != nil {
		return user.Profile{}, err
	}

	return r.GetByUserID(ctx, p.UserID)
}

func (r *PostgresProfileRepository) ListCandidates(ctx context.Context, excludeUserID uuid.UUID) ([]Candidate, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, study_style, availability, experience_level, interest_tags
		 FROM user_profiles
		 WHERE user_id <> $1
		 ORDER BY created_at ASC`,
		excludeUserID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Candidate, 0)
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(&c.UserID, &c.StudyStyle, &c.Availability, &c.ExperienceLevel, &c.InterestTags); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
