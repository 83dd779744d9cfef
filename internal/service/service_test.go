package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/753753753/Card-game/internal/database"
	"github.com/753753753/Card-game/internal/database/repository"
	"github.com/753753753/Card-game/internal/game"
)

func openTestDB(t *testing.T) (context.Context, *sql.DB, string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return ctx, db, dbPath
}

func TestHistoryRecordAndRecent(t *testing.T) {
	t.Parallel()
	ctx, db, _ := openTestDB(t)

	clock := time.Date(2026, 10, 1, 21, 30, 0, 0, time.UTC)
	h := &History{Games: repository.NewGameRepo(db), Now: func() time.Time { return clock }}

	players := []string{"Asha", "Bikash", "Chandra", "Dipa"}
	require.NoError(t, h.Record(ctx, players, []game.RoundEntry{{3, 4, 2, 4}, {5, 1, 4, 3}}))
	clock = clock.Add(time.Hour)
	require.NoError(t, h.Record(ctx, players, []game.RoundEntry{{0, 0, 0, 0}}))

	recent, err := h.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	latest := recent[0]
	require.Equal(t, 1, latest.Rounds)
	require.Equal(t, []string{"Asha", "Bikash", "Chandra", "Dipa"}, latest.Winners())

	first := recent[1]
	require.Equal(t, 2, first.Rounds)
	require.Equal(t, []int{8, 5, 6, 7}, first.Totals)
	require.Equal(t, []string{"Asha"}, first.Winners())
	require.NotEqual(t, first.ID, latest.ID)
}

func TestTrackerPersistsThroughSQLite(t *testing.T) {
	t.Parallel()
	ctx, db, dbPath := openTestDB(t)
	players := []string{"A", "B", "C", "D"}
	history := &History{Games: repository.NewGameRepo(db)}

	tr, err := game.NewTracker(ctx, players, repository.NewSnapshotRepo(db), game.WithArchive(history))
	require.NoError(t, err)
	ed, err := tr.Editor()
	require.NoError(t, err)
	require.NoError(t, ed.SetHand(ctx, 0, "5"))
	require.NoError(t, ed.SetHand(ctx, 1, "3"))
	require.NoError(t, ed.SetHand(ctx, 3, "2"))
	require.NoError(t, ed.CommitRound(ctx))
	require.NoError(t, ed.SetHand(ctx, 2, "4"))
	require.NoError(t, ed.Finalize(ctx))
	require.NoError(t, db.Close())

	reopened, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	restored, err := game.NewTracker(ctx, players, repository.NewSnapshotRepo(reopened),
		game.WithArchive(&History{Games: repository.NewGameRepo(reopened)}))
	require.NoError(t, err)
	require.Equal(t, tr.State(), restored.State())

	res, err := restored.Result()
	require.NoError(t, err)
	require.NoError(t, res.NewGame(ctx))

	games, err := repository.NewGameRepo(reopened).List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, games, 1)
	require.Equal(t, [][]int{{5, 3, 0, 2}, {0, 0, 4, 0}}, games[0].Scores)
	require.Equal(t, 1, restored.Round())
}

func TestMaintenanceReset(t *testing.T) {
	t.Parallel()
	ctx, db, _ := openTestDB(t)

	require.NoError(t, repository.NewSnapshotRepo(db).Put(ctx, "callbreak_game", []byte("{}")))
	h := &History{Games: repository.NewGameRepo(db)}
	require.NoError(t, h.Record(ctx, []string{"A", "B"}, []game.RoundEntry{{1, 2}}))

	m := &MaintenanceService{DB: db}
	require.NoError(t, m.Reset(ctx))

	for _, table := range []string{"snapshots", "finished_games"} {
		var count int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count))
		require.Equal(t, 0, count, table)
	}

	require.Error(t, (&MaintenanceService{}).Reset(ctx))
}
