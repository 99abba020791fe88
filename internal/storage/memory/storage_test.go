package memory

import (
	"testing"

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
	s.NewStorage = func() storage.Storage { return New() }
	suite.Run(t, s)
}

func (s *StorageSuite) TestReturnedUserIsACopy() {
	user := &model.User{ID: "user-1", Username: "alice"}
	s.Require().NoError(s.Storage.CreateUser(s.Ctx, user))

	retrieved, err := s.Storage.GetUser(s.Ctx, "user-1")
	s.Require().NoError(err)
	retrieved.Username = "mallory"

	again, err := s.Storage.GetUser(s.Ctx, "user-1")
	s.Require().NoError(err)
	s.Equal("alice", again.Username)
}
