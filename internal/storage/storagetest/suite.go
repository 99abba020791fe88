// Package storagetest holds the behaviour every storage backend must share.
// Backend tests embed Suite and set NewStorage.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gamevault/internal/model"
	"github.com/mcoot/gamevault/internal/storage"
)

// Suite runs the storage contract against the backend returned by NewStorage
type Suite struct {
	suite.Suite

	// NewStorage returns a fresh, empty backend for each test
	NewStorage func() storage.Storage

	Storage storage.Storage
	Ctx     context.Context
}

var baseTime = time.Date(2025, 12, 5, 10, 0, 0, 0, time.UTC)

func (s *Suite) SetupTest() {
	s.Require().NotNil(s.NewStorage, "NewStorage must be set")
	s.Storage = s.NewStorage()
	s.Ctx = context.Background()
}

func (s *Suite) TearDownTest() {
	if s.Storage != nil {
		_ = s.Storage.Close()
	}
}

func (s *Suite) newUser(id model.UserID, username string) *model.User {
	return &model.User{
		ID:           id,
		Username:     username,
		PasswordHash: "$2a$10$hash-" + username,
		CreatedAt:    baseTime,
	}
}

func (s *Suite) newGame(name string, offset time.Duration) *model.CustomGame {
	created := baseTime.Add(offset)
	released := time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC)
	return &model.CustomGame{
		ID:              model.NewGameID(created),
		Name:            name,
		Released:        &released,
		Rating:          4.8,
		Description:     "RPG classic",
		BackgroundImage: "https://example.com/" + name + ".png",
		OwnerID:         "user-1",
		CreatedAt:       created,
	}
}

// User tests

func (s *Suite) TestCreateAndGetUser() {
	user := s.newUser("user-1", "alice")
	s.Require().NoError(s.Storage.CreateUser(s.Ctx, user))

	retrieved, err := s.Storage.GetUser(s.Ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(user.ID, retrieved.ID)
	s.Equal(user.Username, retrieved.Username)
	s.Equal(user.PasswordHash, retrieved.PasswordHash)
	s.True(user.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *Suite) TestGetUserByUsername() {
	s.Require().NoError(s.Storage.CreateUser(s.Ctx, s.newUser("user-1", "alice")))

	retrieved, err := s.Storage.GetUserByUsername(s.Ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.UserID("user-1"), retrieved.ID)
}

func (s *Suite) TestGetUserByUsernameIsCaseSensitive() {
	s.Require().NoError(s.Storage.CreateUser(s.Ctx, s.newUser("user-1", "alice")))

	_, err := s.Storage.GetUserByUsername(s.Ctx, "Alice")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *Suite) TestGetUserNotFound() {
	_, err := s.Storage.GetUser(s.Ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)

	_, err = s.Storage.GetUserByUsername(s.Ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *Suite) TestCreateUserRejectsDuplicateUsername() {
	s.Require().NoError(s.Storage.CreateUser(s.Ctx, s.newUser("user-1", "alice")))

	err := s.Storage.CreateUser(s.Ctx, s.newUser("user-2", "alice"))
	s.ErrorIs(err, model.ErrUsernameExists)

	// The first account is untouched
	retrieved, err := s.Storage.GetUserByUsername(s.Ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.UserID("user-1"), retrieved.ID)
}

// Game tests

func (s *Suite) TestSaveAndGetGame() {
	game := s.newGame("A Lenda de Andirá", 0)
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))

	retrieved, err := s.Storage.GetGame(s.Ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(game.ID, retrieved.ID)
	s.Equal(game.Name, retrieved.Name)
	s.InDelta(game.Rating, retrieved.Rating, 0.0001)
	s.Equal(game.Description, retrieved.Description)
	s.Equal(game.BackgroundImage, retrieved.BackgroundImage)
	s.Equal(game.OwnerID, retrieved.OwnerID)
	s.Require().NotNil(retrieved.Released)
	s.Equal("2025-12-05", retrieved.ReleasedString())
}

func (s *Suite) TestSaveGameWithoutReleaseDate() {
	game := s.newGame("Undated", 0)
	game.Released = nil
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))

	retrieved, err := s.Storage.GetGame(s.Ctx, game.ID)
	s.Require().NoError(err)
	s.Nil(retrieved.Released)
}

func (s *Suite) TestGetGameNotFound() {
	_, err := s.Storage.GetGame(s.Ctx, model.NewGameID(baseTime))
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *Suite) TestSearchGamesIsCaseInsensitiveSubstring() {
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, s.newGame("A Lenda de Andirá", 0)))
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, s.newGame("ANDIRA Returns", time.Second)))
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, s.newGame("Something Else", 2*time.Second)))

	games, err := s.Storage.SearchGames(s.Ctx, "andir")
	s.Require().NoError(err)
	names := make([]string, 0, len(games))
	for _, g := range games {
		names = append(names, g.Name)
	}
	s.ElementsMatch([]string{"A Lenda de Andirá", "ANDIRA Returns"}, names)
}

func (s *Suite) TestSearchGamesFoldsNonASCIICase() {
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, s.newGame("A Lenda de Andirá", 0)))
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, s.newGame("ÉPOCA DE OURO", time.Second)))

	games, err := s.Storage.SearchGames(s.Ctx, "ANDIRÁ")
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Equal("A Lenda de Andirá", games[0].Name)

	games, err = s.Storage.SearchGames(s.Ctx, "época")
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Equal("ÉPOCA DE OURO", games[0].Name)
}

func (s *Suite) TestSearchGamesTreatsPatternCharactersLiterally() {
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, s.newGame("Half-Life 2", 0)))
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, s.newGame("Portal", time.Second)))

	for _, q := range []string{".*", "%", "_", "(", "["} {
		games, err := s.Storage.SearchGames(s.Ctx, q)
		s.Require().NoError(err, q)
		s.Empty(games, q)
	}
}

func (s *Suite) TestSearchGamesNoMatch() {
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, s.newGame("Portal", 0)))

	games, err := s.Storage.SearchGames(s.Ctx, "zelda")
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *Suite) TestListGamesNewestFirst() {
	oldest := s.newGame("Oldest", 0)
	middle := s.newGame("Middle", time.Minute)
	newest := s.newGame("Newest", time.Hour)

	// Insert out of order
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, middle))
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, newest))
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, oldest))

	games, err := s.Storage.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 3)
	s.Equal("Newest", games[0].Name)
	s.Equal("Middle", games[1].Name)
	s.Equal("Oldest", games[2].Name)
}

func (s *Suite) TestListGamesEmpty() {
	games, err := s.Storage.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Empty(games)
}
