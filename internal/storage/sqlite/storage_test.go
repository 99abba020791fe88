package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gamevault/internal/model"
	"github.com/mcoot/gamevault/internal/storage"
	"github.com/mcoot/gamevault/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
}

func TestStorageSuite(t *testing.T) {
	s := new(StorageSuite)
	s.NewStorage = func() storage.Storage {
		store, err := New(context.Background(), Config{Path: ":memory:"})
		require.NoError(s.T(), err)
		return store
	}
	suite.Run(t, s)
}

func TestDataSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "gamevault.db")

	store, err := New(ctx, Config{Path: path})
	require.NoError(t, err)

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.CreateUser(ctx, &model.User{ID: "user-1", Username: "alice", CreatedAt: created}))
	game := &model.CustomGame{ID: model.NewGameID(created), Name: "Portal", Rating: 5, OwnerID: "user-1", CreatedAt: created}
	require.NoError(t, store.SaveGame(ctx, game))
	require.NoError(t, store.Close())

	reopened, err := New(ctx, Config{Path: path})
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	retrieved, err := reopened.GetGame(ctx, game.ID)
	require.NoError(t, err)
	require.Equal(t, "Portal", retrieved.Name)

	_, err = reopened.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
}

func TestOlderDatabaseGainsFoldedNames(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "gamevault.db")

	db, err := sqlx.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `
CREATE TABLE custom_games (
	id               TEXT    PRIMARY KEY,
	name             TEXT    NOT NULL,
	released         INTEGER,
	rating           REAL    NOT NULL,
	description      TEXT    NOT NULL DEFAULT '',
	background_image TEXT    NOT NULL DEFAULT '',
	owner_id         TEXT    NOT NULL,
	created_at       INTEGER NOT NULL
);
INSERT INTO custom_games (id, name, rating, owner_id, created_at)
VALUES ('6932c0000000000000000001', 'A Lenda de Andirá', 4.8, 'user-1', 0);`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	store, err := New(ctx, Config{Path: path})
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	games, err := store.SearchGames(ctx, "ANDIRÁ")
	require.NoError(t, err)
	require.Len(t, games, 1)
	require.Equal(t, "A Lenda de Andirá", games[0].Name)
}
