package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/pixelquest/accounts/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) testUser(id, externalID string) *model.User {
	u := model.NewUser(externalID, "tester", "tester@example.com", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	u.ID = model.UserID(id)
	return u
}

func (s *StorageSuite) ctx() context.Context {
	return context.Background()
}

func (s *StorageSuite) TestSaveAndGetUser() {
	user := s.testUser("u-1", "ext-1")

	err := s.storage.SaveUser(s.ctx(), user)
	s.Require().NoError(err)

	got, err := s.storage.GetUser(s.ctx(), "u-1")
	s.Require().NoError(err)
	s.Equal(user.ID, got.ID)
	s.Equal(user.ExternalID, got.ExternalID)
	s.Equal(1, got.Level)
	s.Equal(model.DefaultEnergy, got.Energy)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx(), "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByExternalID() {
	user := s.testUser("u-1", "ext-1")
	s.Require().NoError(s.storage.SaveUser(s.ctx(), user))

	got, err := s.storage.GetUserByExternalID(s.ctx(), "ext-1")
	s.Require().NoError(err)
	s.Equal(model.UserID("u-1"), got.ID)

	_, err = s.storage.GetUserByExternalID(s.ctx(), "ext-other")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestListUsers() {
	users, err := s.storage.ListUsers(s.ctx())
	s.Require().NoError(err)
	s.Empty(users)

	s.Require().NoError(s.storage.SaveUser(s.ctx(), s.testUser("u-1", "ext-1")))
	s.Require().NoError(s.storage.SaveUser(s.ctx(), s.testUser("u-2", "ext-2")))

	users, err = s.storage.ListUsers(s.ctx())
	s.Require().NoError(err)
	s.Len(users, 2)
}

func (s *StorageSuite) TestSaveUserIsUpsert() {
	user := s.testUser("u-1", "ext-1")
	s.Require().NoError(s.storage.SaveUser(s.ctx(), user))

	user.Coin = 250
	s.Require().NoError(s.storage.SaveUser(s.ctx(), user))

	got, err := s.storage.GetUser(s.ctx(), "u-1")
	s.Require().NoError(err)
	s.Equal(250, got.Coin)

	users, err := s.storage.ListUsers(s.ctx())
	s.Require().NoError(err)
	s.Len(users, 1)
}

func (s *StorageSuite) TestUpdateExperience() {
	s.Require().NoError(s.storage.SaveUser(s.ctx(), s.testUser("u-1", "ext-1")))

	err := s.storage.UpdateExperience(s.ctx(), "u-1", 4, 50)
	s.Require().NoError(err)

	got, err := s.storage.GetUser(s.ctx(), "u-1")
	s.Require().NoError(err)
	s.Equal(4, got.Level)
	s.Equal(50, got.XP)

	err = s.storage.UpdateExperience(s.ctx(), "missing", 2, 0)
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestUpdateExperienceLeavesOtherFields() {
	user := s.testUser("u-1", "ext-1")
	user.Coin = 77
	s.Require().NoError(s.storage.SaveUser(s.ctx(), user))

	s.Require().NoError(s.storage.UpdateExperience(s.ctx(), "u-1", 2, 10))

	got, err := s.storage.GetUser(s.ctx(), "u-1")
	s.Require().NoError(err)
	s.Equal(77, got.Coin)
	s.Equal(user.Username, got.Username)
}

func (s *StorageSuite) TestUpdateLoginTime() {
	s.Require().NoError(s.storage.SaveUser(s.ctx(), s.testUser("u-1", "ext-1")))

	at := time.Date(2024, 7, 2, 9, 30, 0, 0, time.UTC)
	s.Require().NoError(s.storage.UpdateLoginTime(s.ctx(), "u-1", at))

	got, err := s.storage.GetUser(s.ctx(), "u-1")
	s.Require().NoError(err)
	s.True(got.LoginTime.Equal(at))

	err = s.storage.UpdateLoginTime(s.ctx(), "missing", at)
	s.ErrorIs(err, model.ErrUserNotFound)
}
