package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/gamevault/internal/dependencies/mocks"
	"github.com/mcoot/gamevault/internal/services/auth"
	"github.com/mcoot/gamevault/internal/services/games"
	"github.com/mcoot/gamevault/internal/storage/memory"
	"github.com/mcoot/gamevault/internal/testutil"
)

type SeedSuite struct {
	suite.Suite
	storage *memory.Storage
	auth    *auth.Service
	games   *games.Service
	seeder  *Seeder
	ctx     context.Context
}

func TestSeedSuite(t *testing.T) {
	suite.Run(t, new(SeedSuite))
}

func (s *SeedSuite) SetupTest() {
	s.storage = memory.New()
	clock := mocks.NewMockClock(time.Date(2025, 12, 5, 12, 0, 0, 0, time.UTC))
	ids := mocks.NewMockIDs()

	var err error
	s.auth, err = auth.New(s.storage, clock, ids, auth.Config{BcryptCost: bcrypt.MinCost})
	s.Require().NoError(err)
	s.games = games.New(s.storage, clock, ids, testutil.NopLogger())
	s.seeder = New(s.storage, s.auth, s.games, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *SeedSuite) TestRunCreatesDemoData() {
	summary, err := s.seeder.Run(s.ctx, DefaultConfig())
	s.Require().NoError(err)

	s.True(summary.UserCreated)
	s.True(summary.GameCreated)
	s.Equal("testuser", summary.User.Username)
	s.Equal("A Lenda de Andirá", summary.Game.Name)
	s.Equal("2025-12-05", summary.Game.ReleasedString())
	s.Equal(4.8, summary.Game.Rating)
	s.Equal(summary.User.ID, summary.Game.OwnerID)

	user, err := s.auth.Login(s.ctx, "testuser", "123456")
	s.Require().NoError(err)
	s.Equal(summary.User.ID, user.ID)
}

func (s *SeedSuite) TestRunIsIdempotent() {
	first, err := s.seeder.Run(s.ctx, DefaultConfig())
	s.Require().NoError(err)

	second, err := s.seeder.Run(s.ctx, DefaultConfig())
	s.Require().NoError(err)

	s.False(second.UserCreated)
	s.False(second.GameCreated)
	s.Equal(first.User.ID, second.User.ID)
	s.Equal(first.Game.ID, second.Game.ID)

	all, err := s.games.ListRecent(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *SeedSuite) TestRunWithCustomCredentials() {
	_, err := s.seeder.Run(s.ctx, Config{Username: "demo", Password: "s3cret"})
	s.Require().NoError(err)

	_, err = s.auth.Login(s.ctx, "demo", "s3cret")
	s.NoError(err)
}
