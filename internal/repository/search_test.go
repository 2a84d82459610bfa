package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"league-tracker/internal/database"
	"league-tracker/internal/domain"
	"league-tracker/internal/repository"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *repository.SearchRepository {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// in-memory sqlite is per-connection
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db, zerolog.Nop()))
	return repository.NewSearchRepository(db, zerolog.Nop())
}

func search(region, puuid string, at time.Time) domain.RecentSearch {
	return domain.RecentSearch{
		Region:        region,
		GameName:      "Foo",
		TagLine:       "NA1",
		PUUID:         puuid,
		ProfileIconID: 42,
		SummonerLevel: 150,
		SearchedAt:    at,
	}
}

func TestSearchRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("records and lists searches", func(t *testing.T) {
		repo := newTestRepo(t)
		now := time.Now().UTC()

		require.NoError(t, repo.Record(ctx, search("na1", "p1", now.Add(-2*time.Minute))))
		require.NoError(t, repo.Record(ctx, search("euw1", "p2", now.Add(-time.Minute))))
		require.NoError(t, repo.Record(ctx, search("kr", "p3", now)))

		searches, err := repo.Recent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, searches, 3)
		assert.Equal(t, "p3", searches[0].PUUID)
		assert.Equal(t, "p2", searches[1].PUUID)
		assert.Equal(t, "p1", searches[2].PUUID)
		assert.NotEmpty(t, searches[0].ID)
		assert.Equal(t, 42, searches[0].ProfileIconID)
	})

	t.Run("repeat lookups keep one row per region and player", func(t *testing.T) {
		repo := newTestRepo(t)
		now := time.Now().UTC()

		require.NoError(t, repo.Record(ctx, search("na1", "p1", now.Add(-time.Hour))))

		refreshed := search("na1", "p1", now)
		refreshed.GameName = "Renamed"
		require.NoError(t, repo.Record(ctx, refreshed))

		searches, err := repo.Recent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, searches, 1)
		assert.Equal(t, "Renamed", searches[0].GameName)
		assert.WithinDuration(t, now, searches[0].SearchedAt, time.Second)
	})

	t.Run("same player in another region is a separate row", func(t *testing.T) {
		repo := newTestRepo(t)
		now := time.Now().UTC()

		require.NoError(t, repo.Record(ctx, search("na1", "p1", now)))
		require.NoError(t, repo.Record(ctx, search("euw1", "p1", now)))

		searches, err := repo.Recent(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, searches, 2)
	})

	t.Run("honors the limit", func(t *testing.T) {
		repo := newTestRepo(t)
		now := time.Now().UTC()

		for i, puuid := range []string{"p1", "p2", "p3", "p4"} {
			require.NoError(t, repo.Record(ctx, search("na1", puuid, now.Add(time.Duration(i)*time.Minute))))
		}

		searches, err := repo.Recent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, searches, 2)
		assert.Equal(t, "p4", searches[0].PUUID)
	})
}
