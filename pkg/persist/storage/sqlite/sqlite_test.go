package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidmovas/pokespire/pkg/persist"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, repo.Close())
	})
	return repo
}

func sampleRecord() *persist.ReplayRecord {
	record := persist.NewReplayRecord("")
	record.Seed = 42
	record.Setup = []byte("setup-blob")
	record.Journal = []byte("journal-blob")
	record.FinalState = []byte("state-blob")
	record.Log = []byte("log-blob")
	record.Phase = "victory"
	record.Rounds = 6
	record.GoldEarned = 21
	return record
}

func TestRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("save and get round-trip", func(t *testing.T) {
		repo := openTestRepo(t)
		record := sampleRecord()
		require.NoError(t, repo.Save(ctx, record))

		got, err := repo.Get(ctx, record.ID)
		require.NoError(t, err)
		require.Equal(t, record.ID, got.ID)
		require.Equal(t, record.BattleID, got.BattleID)
		require.Equal(t, record.Seed, got.Seed)
		require.Equal(t, record.Setup, got.Setup)
		require.Equal(t, record.Journal, got.Journal)
		require.Equal(t, record.FinalState, got.FinalState)
		require.Equal(t, record.Log, got.Log)
		require.Equal(t, record.Phase, got.Phase)
		require.Equal(t, record.Rounds, got.Rounds)
		require.Equal(t, record.GoldEarned, got.GoldEarned)
		require.Equal(t, record.CreatedAt.Unix(), got.CreatedAt.Unix())
	})

	t.Run("get unknown id", func(t *testing.T) {
		repo := openTestRepo(t)
		_, err := repo.Get(ctx, "nope")
		require.ErrorIs(t, err, persist.ErrNotFound)
	})

	t.Run("list newest first", func(t *testing.T) {
		repo := openTestRepo(t)
		first := sampleRecord()
		second := sampleRecord()
		second.CreatedAt = first.CreatedAt.Add(time.Second)
		require.NoError(t, repo.Save(ctx, first))
		require.NoError(t, repo.Save(ctx, second))

		records, err := repo.List(ctx, 10)
		require.NoError(t, err)
		require.Len(t, records, 2)
		require.Equal(t, second.ID, records[0].ID)
		require.Equal(t, first.ID, records[1].ID)

		limited, err := repo.List(ctx, 1)
		require.NoError(t, err)
		require.Len(t, limited, 1)
		require.Equal(t, second.ID, limited[0].ID)
	})

	t.Run("delete", func(t *testing.T) {
		repo := openTestRepo(t)
		record := sampleRecord()
		require.NoError(t, repo.Save(ctx, record))
		require.NoError(t, repo.Delete(ctx, record.ID))
		require.ErrorIs(t, repo.Delete(ctx, record.ID), persist.ErrNotFound)
	})
}
