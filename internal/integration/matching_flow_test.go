package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"study-buddy/internal/config"
	"study-buddy/internal/database"
	"study-buddy/internal/database/migration"
	dbpostgres "study-buddy/internal/database/postgres"
	"study-buddy/internal/domain/match"
	"study-buddy/internal/repository"
	"study-buddy/internal/usecase"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// End-to-end pass over a real database: seed two users with overlapping
// interests and complementary blind spots, run the matcher, then walk the
// resulting match through the status machine.
func TestIntegration_FindMatches_StatusFlow(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)

	seed := seedUsers(t, ctx, db)
	defer cleanupSeed(t, ctx, db, seed)

	profiles := repository.NewPostgresProfileRepository(db)
	blindSpots := repository.NewPostgresBlindSpotRepository(db)
	matches := repository.NewPostgresMatchRepository(db)

	matchingUC := usecase.NewMatchingUsecase(profiles, blindSpots, matches, nil, nil, nil, nil)

	res, err := matchingUC.FindMatches(ctx, seed.requesterID, usecase.MatchRequest{
		Subjects:      []string{"math", "physics"},
		KnowledgeGaps: []usecase.GapInput{{Topic: "calculus", Confidence: 0.2}},
	})
	if err != nil {
		t.Fatalf("find matches: %v", err)
	}
	if len(res.Matches) == 0 {
		t.Fatalf("expected at least one match")
	}

	var found *match.Match
	for i := range res.Matches {
		if res.Matches[i].PartnerID == seed.partnerID {
			found = &res.Matches[i]
			break
		}
	}
	if found == nil {
		t.Fatalf("seeded partner missing from matches")
	}
	if found.Status != match.StatusPending {
		t.Fatalf("expected pending, got %s", found.Status)
	}
	if found.CompatibilityScore <= 0.3 || found.CompatibilityScore > 1 {
		t.Fatalf("score out of range: %v", found.CompatibilityScore)
	}
	if len(found.SuggestedActivities) == 0 {
		t.Fatalf("expected non-empty activities")
	}
	if len(res.SuggestedTopics) == 0 {
		t.Fatalf("expected non-empty suggested topics")
	}

	// Rematching must refresh the pair row, not duplicate it.
	res2, err := matchingUC.FindMatches(ctx, seed.requesterID, usecase.MatchRequest{
		Subjects: []string{"math", "physics"},
	})
	if err != nil {
		t.Fatalf("rematch: %v", err)
	}
	count := 0
	for _, m := range res2.Matches {
		if m.PartnerID == seed.partnerID {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected 1 row for the pair after rematch, got %d", count)
	}

	matchUC := usecase.NewMatchUsecase(matches, nil, time.Minute, nil)

	stored, err := matchUC.ListMatches(ctx, seed.requesterID)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	var pairID uuid.UUID
	for _, m := range stored {
		if m.PartnerID == seed.partnerID {
			pairID = m.ID
		}
	}
	if pairID == uuid.Nil {
		t.Fatalf("pair row not persisted")
	}

	// The partner sees the match from their side too.
	partnerView, err := matchUC.ListMatches(ctx, seed.partnerID)
	if err != nil {
		t.Fatalf("partner list: %v", err)
	}
	if len(partnerView) == 0 {
		t.Fatalf("expected partner to see the match")
	}

	if _, err := matchUC.UpdateStatus(ctx, seed.requesterID, pairID, match.StatusAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := matchUC.UpdateStatus(ctx, seed.requesterID, pairID, match.StatusActive); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if _, err := matchUC.UpdateStatus(ctx, seed.requesterID, pairID, match.StatusRejected); !errors.Is(err, match.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition from active, got %v", err)
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("STUDYBUDDY_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("STUDYBUDDY_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("STUDYBUDDY_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("STUDYBUDDY_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("STUDYBUDDY_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("STUDYBUDDY_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set STUDYBUDDY_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	dbcfg := config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	}

	db, err := dbpostgres.Connect(ctx, dbcfg)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	r := migration.Runner{Dir: resolveMigrationsDir(t)}
	if err := r.Run(ctx, db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func resolveMigrationsDir(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve migrations dir: runtime.Caller failed")
	}

	// this file: internal/integration/matching_flow_test.go
	root := filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
	migDir := filepath.Join(root, "migrations")

	if st, err := os.Stat(migDir); err != nil || !st.IsDir() {
		t.Fatalf("resolve migrations dir: not found or not a dir: %s", migDir)
	}
	return migDir
}

type seededUsers struct {
	requesterID uuid.UUID
	partnerID   uuid.UUID
}

func seedUsers(t *testing.T, ctx context.Context, db database.DB) seededUsers {
	t.Helper()

	out := seededUsers{
		requesterID: ensureUser(t, ctx, db, "it-requester@example.com"),
		partnerID:   ensureUser(t, ctx, db, "it-partner@example.com"),
	}

	ensureProfile(t, ctx, db, out.requesterID, "visual", "beginner", []string{"math", "physics"})
	ensureProfile(t, ctx, db, out.partnerID, "hands-on", "advanced", []string{"Mathematics", "physics", "chemistry"})

	ensureBlindSpot(t, ctx, db, out.partnerID, "calculus", 0.9)

	return out
}

func ensureUser(t *testing.T, ctx context.Context, db database.DB, email string) uuid.UUID {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	id := uuid.New()
	_, err = db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (email) DO UPDATE SET updated_at = NOW()`,
		id, email, string(hash),
	)
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}

	row := db.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email)
	if err := row.Scan(&id); err != nil {
		t.Fatalf("read seeded user %s: %v", email, err)
	}
	return id
}

func ensureProfile(t *testing.T, ctx context.Context, db database.DB, userID uuid.UUID, style, level string, tags []string) {
	t.Helper()

	_, err := db.Exec(ctx,
		`INSERT INTO user_profiles (id, user_id, study_style, experience_level, interest_tags)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id) DO UPDATE SET
		   study_style = EXCLUDED.study_style,
		   experience_level = EXCLUDED.experience_level,
		   interest_tags = EXCLUDED.interest_tags,
		   updated_at = NOW()`,
		uuid.New(), userID, style, level, tags,
	)
	if err != nil {
		t.Fatalf("seed profile: %v", err)
	}
}

func ensureBlindSpot(t *testing.T, ctx context.Context, db database.DB, userID uuid.UUID, topic string, confidence float64) {
	t.Helper()

	_, err := db.Exec(ctx,
		`INSERT INTO blind_spots (id, user_id, topic, confidence)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, topic) DO UPDATE SET confidence = EXCLUDED.confidence`,
		uuid.New(), userID, topic, confidence,
	)
	if err != nil {
		t.Fatalf("seed blind spot: %v", err)
	}
}

func cleanupSeed(t *testing.T, ctx context.Context, db database.DB, seed seededUsers) {
	t.Helper()

	for _, id := range []uuid.UUID{seed.requesterID, seed.partnerID} {
		if _, err := db.Exec(ctx, `DELETE FROM matches WHERE user_id = $1 OR partner_id = $1`, id); err != nil {
			t.Logf("cleanup matches: %v", err)
		}
		if _, err := db.Exec(ctx, `DELETE FROM blind_spots WHERE user_id = $1`, id); err != nil {
			t.Logf("cleanup blind spots: %v", err)
		}
		if _, err := db.Exec(ctx, `DELETE FROM user_profiles WHERE user_id = $1`, id); err != nil {
			t.Logf("cleanup profiles: %v", err)
		}
		if _, err := db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
			t.Logf("cleanup users: %v", err)
		}
	}
}

func stringsOrDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
