package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/sendagame/progress/internal/dependencies/mocks"
	"github.com/sendagame/progress/internal/model"
	"github.com/sendagame/progress/internal/storage/memory"
	"github.com/sendagame/progress/internal/testutil"
)

type PlayerServiceTestSuite struct {
	suite.Suite
	service *Service
	clock   *mocks.MockClock
	random  *mocks.MockRandom
}

func (s *PlayerServiceTestSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.service = New(memory.New(), s.clock, s.random, testutil.NopLogger())
}

func (s *PlayerServiceTestSuite) TestRegister() {
	s.random.QueueString("WANDERER0001")

	player, err := s.service.Register(context.Background(), "La Viajera")
	s.Require().NoError(err)

	s.Equal(model.PlayerID("WANDERER0001"), player.ID)
	s.Equal("La Viajera", player.DisplayName)
	s.Equal(s.clock.CurrentTime, player.CreatedAt)
	s.Equal(0, player.GamesPlayed)
	s.Equal(0, player.GamesCompleted)
	s.Equal(0.0, player.Stats.MoralAlignment)
	s.Nil(player.Stats.FavoriteRelic)
	s.Nil(player.Stats.BestSpeedrunSeconds)
}

func (s *PlayerServiceTestSuite) TestRegisterThenGet() {
	created, err := s.service.Register(context.Background(), "La Viajera")
	s.Require().NoError(err)

	got, err := s.service.Get(context.Background(), created.ID)
	s.Require().NoError(err)
	s.Equal(created.ID, got.ID)
	s.Equal("La Viajera", got.DisplayName)
}

func (s *PlayerServiceTestSuite) TestGetUnknownPlayer() {
	_, err := s.service.Get(context.Background(), "NOBODY")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func TestPlayerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PlayerServiceTestSuite))
}
