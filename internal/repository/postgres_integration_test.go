package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
	"github.com/emanuelbartolo/BoardGameApp/migrations"
	"github.com/emanuelbartolo/BoardGameApp/pkg/database"
)

// Integration tests run against a real PostgreSQL instance:
//
//	INTEGRATION_TEST=true go test ./internal/repository/...
func skipIfNoIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("skipping integration test; set INTEGRATION_TEST=true to run")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupTestDB(t *testing.T) *database.PostgresDB {
	t.Helper()
	ctx := context.Background()

	cfg := &database.PostgresConfig{
		Host:       envOr("TEST_DATABASE_HOST", "localhost"),
		Port:       5432,
		User:       envOr("TEST_DATABASE_USER", "postgres"),
		Password:   envOr("TEST_DATABASE_PASSWORD", "postgres"),
		Database:   envOr("TEST_DATABASE_NAME", "gamenight_test"),
		SSLMode:    "disable",
		MaxRetries: 3,
	}

	url := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode)
	require.NoError(t, database.Migrate(url, migrations.FS))

	db, err := database.NewPostgres(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	_, err = db.Pool().Exec(ctx, `TRUNCATE groups, group_members, shortlist_entries, events, polls, wishlists`)
	require.NoError(t, err)
	return db
}

func seedGroup(t *testing.T, db *database.PostgresDB, id string) {
	t.Helper()
	repo := NewPostgresGroupRepository(db)
	require.NoError(t, repo.Create(context.Background(), &domain.Group{
		ID:        id,
		Name:      "Integration " + id,
		JoinCode:  "CODE" + id,
		CreatedBy: "admin",
		CreatedAt: time.Now().UTC(),
	}))
}

func TestPostgresShortlistMutateRoundTrip(t *testing.T) {
	skipIfNoIntegration(t)
	db := setupTestDB(t)
	seedGroup(t, db, "g1")
	repo := NewPostgresShortlistRepository(db)
	ctx := context.Background()

	entry := &domain.ShortlistEntry{
		GroupID:   "g1",
		ItemID:    "chess",
		Metadata:  map[string]any{"name": "Chess"},
		Voters:    []string{},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Insert(ctx, entry))
	assert.ErrorIs(t, repo.Insert(ctx, entry), domain.ErrAlreadyExists)

	err := repo.Mutate(ctx, "g1", "chess", func(e *domain.ShortlistEntry) (Mutation, error) {
		e.Voters = append(e.Voters, "alice")
		return MutationSave, nil
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, "g1", "chess")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"alice"}, got.Voters)
	assert.Equal(t, "Chess", got.Metadata["name"])

	err = repo.Mutate(ctx, "g1", "chess", func(e *domain.ShortlistEntry) (Mutation, error) {
		return MutationDelete, nil
	})
	require.NoError(t, err)

	got, err = repo.Get(ctx, "g1", "chess")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, repo.Mutate(ctx, "g1", "chess", func(e *domain.ShortlistEntry) (Mutation, error) {
		return MutationNone, nil
	}), domain.ErrNotFound)
}

func TestPostgresShortlistCuratorColumns(t *testing.T) {
	skipIfNoIntegration(t)
	db := setupTestDB(t)
	seedGroup(t, db, "g1")
	repo := NewPostgresShortlistRepository(db)
	ctx := context.Background()

	curatedAt := time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, repo.Insert(ctx, &domain.ShortlistEntry{
		GroupID:   "g1",
		ItemID:    "azul",
		Voters:    []string{},
		CuratedBy: "admin",
		CuratedAt: &curatedAt,
		CreatedAt: curatedAt,
	}))

	got, err := repo.Get(ctx, "g1", "azul")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsCurated())
	require.NotNil(t, got.CuratedAt)
	assert.True(t, got.CuratedAt.Equal(curatedAt))
}

func TestPostgresEventNextEvent(t *testing.T) {
	skipIfNoIntegration(t)
	db := setupTestDB(t)
	seedGroup(t, db, "g1")
	repo := NewPostgresEventRepository(db)
	ctx := context.Background()

	today := time.Now().UTC().Truncate(24 * time.Hour)
	mkEvent := func(id string, offsetDays int) *domain.Event {
		return &domain.Event{
			ID:        id,
			GroupID:   "g1",
			Title:     id,
			Date:      today.AddDate(0, 0, offsetDays),
			CreatedBy: "admin",
			Attendees: []string{"alice"},
			CreatedAt: time.Now().UTC(),
		}
	}
	require.NoError(t, repo.Create(ctx, mkEvent("past", -7)))
	require.NoError(t, repo.Create(ctx, mkEvent("near", 3)))
	require.NoError(t, repo.Create(ctx, mkEvent("far", 10)))

	next, err := repo.NextEvent(ctx, "g1", today)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "near", next.ID)
	assert.Equal(t, []string{"alice"}, next.Attendees)
}

func TestPostgresPollOptionsRoundTrip(t *testing.T) {
	skipIfNoIntegration(t)
	db := setupTestDB(t)
	seedGroup(t, db, "g1")
	repo := NewPostgresPollRepository(db)
	ctx := context.Background()

	poll := &domain.Poll{
		ID:        "p1",
		GroupID:   "g1",
		Title:     "next night",
		CreatedBy: "admin",
		CreatedAt: time.Now().UTC(),
		Options: []domain.PollOption{
			{Date: "2026-09-01", Voters: []string{}},
			{Date: "2026-09-08", Voters: []string{}},
		},
	}
	require.NoError(t, repo.Create(ctx, poll))

	err := repo.Mutate(ctx, "g1", "p1", func(p *domain.Poll) (Mutation, error) {
		p.Options[1].Voters = append(p.Options[1].Voters, "carol")
		return MutationSave, nil
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "g1", "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Options, 2)
	assert.Empty(t, got.Options[0].Voters)
	assert.Equal(t, []string{"carol"}, got.Options[1].Voters)
}

func TestPostgresGroupCascadeDelete(t *testing.T) {
	skipIfNoIntegration(t)
	db := setupTestDB(t)
	seedGroup(t, db, "g1")
	ctx := context.Background()

	groupRepo := NewPostgresGroupRepository(db)
	shortlistRepo := NewPostgresShortlistRepository(db)

	require.NoError(t, groupRepo.AddMember(ctx, &domain.Member{
		GroupID: "g1", Username: "alice", JoinedAt: time.Now().UTC(),
	}))
	require.NoError(t, shortlistRepo.Insert(ctx, &domain.ShortlistEntry{
		GroupID: "g1", ItemID: "chess", Voters: []string{"alice"}, CreatedAt: time.Now().UTC(),
	}))

	require.NoError(t, groupRepo.Delete(ctx, "g1"))

	entry, err := shortlistRepo.Get(ctx, "g1", "chess")
	require.NoError(t, err)
	assert.Nil(t, entry, "sub-records must be removed with the group")

	ok, err := groupRepo.IsMember(ctx, "g1", "alice")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPostgresWishlistMutateCreatesOnFirstUse(t *testing.T) {
	skipIfNoIntegration(t)
	db := setupTestDB(t)
	repo := NewPostgresWishlistRepository(db)
	ctx := context.Background()

	err := repo.Mutate(ctx, "alice", func(w *domain.Wishlist) error {
		w.Favorites = append(w.Favorites, "chess")
		return nil
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"chess"}, got.Favorites)
}
