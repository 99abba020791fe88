package games

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gamevault/internal/dependencies/mocks"
	"github.com/mcoot/gamevault/internal/model"
	"github.com/mcoot/gamevault/internal/storage/memory"
	"github.com/mcoot/gamevault/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	ids     *mocks.MockIDs
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 12, 5, 12, 0, 0, 0, time.UTC))
	s.ids = mocks.NewMockIDs()
	s.service = New(s.storage, s.clock, s.ids, testutil.NopLogger())
	s.ctx = context.Background()

	s.Require().NoError(s.storage.CreateUser(s.ctx, &model.User{ID: "user-1", Username: "testuser"}))
}

func rating(v float64) *float64 {
	return &v
}

func (s *ServiceSuite) create(name string) *model.CustomGame {
	game, err := s.service.Create(s.ctx, model.NewCustomGame{Name: name, Rating: rating(4)}, "user-1")
	s.Require().NoError(err)
	return game
}

// Create tests

func (s *ServiceSuite) TestCreateSucceeds() {
	released := time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC)
	game, err := s.service.Create(s.ctx, model.NewCustomGame{
		Name:            "A Lenda de Andirá",
		Released:        &released,
		Rating:          rating(4.8),
		Description:     "RPG classic",
		BackgroundImage: "https://example.com/andira.png",
	}, "user-1")
	s.Require().NoError(err)

	s.True(model.IsGameID(string(game.ID)))
	s.Equal("A Lenda de Andirá", game.Name)
	s.Equal(4.8, game.Rating)
	s.Equal(model.UserID("user-1"), game.OwnerID)
	s.Equal(s.clock.Now(), game.CreatedAt)

	stored, err := s.storage.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal("2025-12-05", stored.ReleasedString())
	s.Equal("RPG classic", stored.Description)
}

func (s *ServiceSuite) TestCreateAcceptsRatingBounds() {
	for _, r := range []float64{model.MinRating, model.MaxRating} {
		_, err := s.service.Create(s.ctx, model.NewCustomGame{Name: "Edge", Rating: rating(r)}, "user-1")
		s.NoError(err, r)
	}
}

func (s *ServiceSuite) TestCreateRejectsInvalidInputWithoutWriting() {
	cases := []model.NewCustomGame{
		{Rating: rating(3)},
		{Name: "No Rating"},
		{Name: "Too High", Rating: rating(5.1)},
		{Name: "Too Low", Rating: rating(-0.1)},
	}
	for _, input := range cases {
		_, err := s.service.Create(s.ctx, input, "user-1")
		s.True(model.IsValidationError(err), "%+v", input)
	}

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *ServiceSuite) TestCreateFailsForMissingOwner() {
	_, err := s.service.Create(s.ctx, model.NewCustomGame{Name: "Orphan", Rating: rating(3)}, "ghost")
	s.ErrorIs(err, model.ErrOwnerNotFound)

	games, _ := s.storage.ListGames(s.ctx)
	s.Empty(games)
}

// FindByID tests

func (s *ServiceSuite) TestFindByIDReturnsCreatedGame() {
	game := s.create("Portal")

	found, err := s.service.FindByID(s.ctx, string(game.ID))
	s.Require().NoError(err)
	s.Equal("Portal", found.Name)
}

func (s *ServiceSuite) TestFindByIDNotFound() {
	_, err := s.service.FindByID(s.ctx, string(model.NewGameID(s.clock.Now())))
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ServiceSuite) TestFindByIDRejectsForeignFormat() {
	for _, id := range []string{"3498", "grand-theft-auto-v", "", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := s.service.FindByID(s.ctx, id)
		s.ErrorIs(err, model.ErrNotNativeID, id)
	}
}

// Search and listing tests

func (s *ServiceSuite) TestSearchIsCaseInsensitive() {
	s.create("A Lenda de Andirá")
	s.create("Portal")

	games, err := s.service.Search(s.ctx, "LENDA")
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Equal("A Lenda de Andirá", games[0].Name)
}

func (s *ServiceSuite) TestListRecentNewestFirst() {
	s.create("First")
	s.clock.Advance(time.Minute)
	s.create("Second")

	games, err := s.service.ListRecent(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 2)
	s.Equal("Second", games[0].Name)
	s.Equal("First", games[1].Name)
}
