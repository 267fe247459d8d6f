package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valorant-mmr/internal/config"
	"valorant-mmr/internal/database"
	"valorant-mmr/internal/domain"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "test.db")}
	db, err := database.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleReport(puuid, name, tag string) *domain.RankHistoryReport {
	return &domain.RankHistoryReport{
		Account: domain.Account{PUUID: puuid, Name: name, Tag: tag},
		Current: domain.CurrentRank{
			Tier: domain.Tier{ID: 21, Name: "Ascendant 1"},
			RR:   42,
			Elo:  1842,
		},
		Peak: domain.PeakRank{
			Season: domain.Season{ID: "4539cac3-47ae-90e5-3d01-b3812ca3274e", Short: "e8a3"},
			Scheme: "ascendant",
			Tier:   domain.Tier{ID: 23, Name: "Ascendant 3"},
			RR:     67,
		},
		Seasonal: []domain.SeasonSummary{},
	}
}

func TestReportRepositoryRoundTrip(t *testing.T) {
	db := testDB(t)
	repo := NewReportRepository(db, zerolog.Nop())
	ctx := context.Background()

	fetchedAt := time.Now().UTC()
	require.NoError(t, repo.Upsert(ctx, sampleReport("p-1", "TenZ", "SEN"), fetchedAt))

	got, gotAt, err := repo.Get(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "TenZ", got.Account.Name)
	assert.Equal(t, 21, got.Current.Tier.ID)
	assert.Equal(t, "e8a3", got.Peak.Season.Short)
	assert.WithinDuration(t, fetchedAt, gotAt, time.Second)
}

func TestReportRepositoryGetByNameIsCaseInsensitive(t *testing.T) {
	db := testDB(t)
	repo := NewReportRepository(db, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, sampleReport("p-1", "TenZ", "SEN"), time.Now().UTC()))

	got, _, err := repo.GetByName(ctx, "tenz", "sen")
	require.NoError(t, err)
	assert.Equal(t, "p-1", got.Account.PUUID)
}

func TestReportRepositoryNotFound(t *testing.T) {
	db := testDB(t)
	repo := NewReportRepository(db, zerolog.Nop())

	_, _, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportRepositoryUpsertReplaces(t *testing.T) {
	db := testDB(t)
	repo := NewReportRepository(db, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, sampleReport("p-1", "Old", "OLD"), time.Now().UTC()))
	require.NoError(t, repo.Upsert(ctx, sampleReport("p-1", "New", "NEW"), time.Now().UTC()))

	got, _, err := repo.Get(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "New", got.Account.Name)

	_, _, err = repo.GetByName(ctx, "Old", "OLD")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRepositoryUpsertBatchIsIdempotent(t *testing.T) {
	db := testDB(t)
	repo := NewUpdateRepository(db, zerolog.Nop())
	ctx := context.Background()

	updates := []domain.MatchUpdate{
		{MatchID: "m-1", SeasonID: "s-1", TierAfter: 20, RRAfter: 50, RREarned: 18, MatchStartMS: 2000},
		{MatchID: "m-2", SeasonID: "s-1", TierAfter: 20, RRAfter: 32, RREarned: -9, MatchStartMS: 1000},
	}
	require.NoError(t, repo.UpsertBatch(ctx, "p-1", updates))

	// Refetching the same matches must not duplicate rows.
	updates[0].RRAfter = 55
	require.NoError(t, repo.UpsertBatch(ctx, "p-1", updates))

	got, err := repo.ListByPUUID(ctx, "p-1", 100)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Most recent first.
	assert.Equal(t, "m-1", got[0].MatchID)
	assert.Equal(t, 55, got[0].RRAfter)
	assert.Equal(t, "m-2", got[1].MatchID)
}

func TestUpdateRepositoryListHonorsLimit(t *testing.T) {
	db := testDB(t)
	repo := NewUpdateRepository(db, zerolog.Nop())
	ctx := context.Background()

	updates := []domain.MatchUpdate{
		{MatchID: "m-1", SeasonID: "s-1", MatchStartMS: 1000},
		{MatchID: "m-2", SeasonID: "s-1", MatchStartMS: 3000},
		{MatchID: "m-3", SeasonID: "s-1", MatchStartMS: 2000},
	}
	require.NoError(t, repo.UpsertBatch(ctx, "p-1", updates))

	got, err := repo.ListByPUUID(ctx, "p-1", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "m-2", got[0].MatchID)
	assert.Equal(t, "m-3", got[1].MatchID)

	empty, err := repo.ListByPUUID(ctx, "someone-else", 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
