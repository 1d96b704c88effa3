package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/sendagame/progress/internal/model"
)

type RedisStorageTestSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func (s *RedisStorageTestSuite) SetupTest() {
	mini, err := miniredis.Run()
	s.Require().NoError(err)
	s.mini = mini

	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	s.storage = NewWithClient(client, Config{
		FinishedSessionTTL: 30 * 24 * time.Hour,
	})
	s.ctx = context.Background()
}

func (s *RedisStorageTestSuite) TearDownTest() {
	_ = s.storage.Close()
	s.mini.Close()
}

func (s *RedisStorageTestSuite) newSession(id model.SessionID, playerID model.PlayerID) *model.GameSession {
	return &model.GameSession{
		ID:        id,
		PlayerID:  playerID,
		Status:    model.SessionInProgress,
		StartedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *RedisStorageTestSuite) TestSaveAndGetPlayer() {
	player := &model.Player{ID: "PLAYER1", DisplayName: "La Viajera"}

	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))
	s.Equal(int64(1), player.Version)

	got, err := s.storage.GetPlayer(s.ctx, "PLAYER1")
	s.Require().NoError(err)
	s.Equal("La Viajera", got.DisplayName)
	s.Equal(int64(1), got.Version)
}

func (s *RedisStorageTestSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "NOBODY")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *RedisStorageTestSuite) TestSavePlayerStaleVersionConflict() {
	player := &model.Player{ID: "PLAYER1"}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	stale := &model.Player{ID: "PLAYER1", Version: 0}
	s.ErrorIs(s.storage.SavePlayer(s.ctx, stale), model.ErrVersionConflict)
	s.Equal(int64(0), stale.Version)
}

func (s *RedisStorageTestSuite) TestSavePlayerRoundTripsPointerStats() {
	relic := model.RelicID("lirio")
	best := int64(720)
	player := &model.Player{ID: "PLAYER1"}
	player.Stats.FavoriteRelic = &relic
	player.Stats.BestSpeedrunSeconds = &best

	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	got, err := s.storage.GetPlayer(s.ctx, "PLAYER1")
	s.Require().NoError(err)
	s.Require().NotNil(got.Stats.FavoriteRelic)
	s.Equal(model.RelicID("lirio"), *got.Stats.FavoriteRelic)
	s.Require().NotNil(got.Stats.BestSpeedrunSeconds)
	s.Equal(int64(720), *got.Stats.BestSpeedrunSeconds)
}

func (s *RedisStorageTestSuite) TestSaveAndGetSession() {
	session := s.newSession("SESSION1", "PLAYER1")

	s.Require().NoError(s.storage.SaveSession(s.ctx, session))
	s.Equal(int64(1), session.Version)

	got, err := s.storage.GetSession(s.ctx, "SESSION1")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("PLAYER1"), got.PlayerID)
	s.Equal(model.SessionInProgress, got.Status)
}

func (s *RedisStorageTestSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "NOWHERE")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *RedisStorageTestSuite) TestSessionVersionConflict() {
	session := s.newSession("SESSION1", "PLAYER1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	stale := s.newSession("SESSION1", "PLAYER1")
	s.ErrorIs(s.storage.SaveSession(s.ctx, stale), model.ErrVersionConflict)
}

func (s *RedisStorageTestSuite) TestFindActiveSession() {
	session := s.newSession("SESSION1", "PLAYER1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	active, err := s.storage.FindActiveSessionByPlayer(s.ctx, "PLAYER1")
	s.Require().NoError(err)
	s.Equal(model.SessionID("SESSION1"), active.ID)
}

func (s *RedisStorageTestSuite) TestFindActiveSessionNone() {
	_, err := s.storage.FindActiveSessionByPlayer(s.ctx, "PLAYER1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *RedisStorageTestSuite) TestActiveIndexClearedOnTerminalSave() {
	session := s.newSession("SESSION1", "PLAYER1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	loaded, err := s.storage.GetSession(s.ctx, "SESSION1")
	s.Require().NoError(err)
	ended := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	loaded.Status = model.SessionCompleted
	loaded.EndedAt = &ended
	s.Require().NoError(s.storage.SaveSession(s.ctx, loaded))

	_, err = s.storage.FindActiveSessionByPlayer(s.ctx, "PLAYER1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *RedisStorageTestSuite) TestSecondActiveSessionRejected() {
	first := s.newSession("SESSION1", "PLAYER1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, first))

	// A second in_progress save for the same player loses the create race
	second := s.newSession("SESSION2", "PLAYER1")
	s.ErrorIs(s.storage.SaveSession(s.ctx, second), model.ErrActiveSessionConflict)
	s.Equal(int64(0), second.Version)

	active, err := s.storage.FindActiveSessionByPlayer(s.ctx, "PLAYER1")
	s.Require().NoError(err)
	s.Equal(model.SessionID("SESSION1"), active.ID)
}

func (s *RedisStorageTestSuite) TestNewActiveSessionAfterTerminal() {
	first := s.newSession("SESSION1", "PLAYER1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, first))

	loaded, err := s.storage.GetSession(s.ctx, "SESSION1")
	s.Require().NoError(err)
	loaded.Status = model.SessionAbandoned
	s.Require().NoError(s.storage.SaveSession(s.ctx, loaded))

	second := s.newSession("SESSION2", "PLAYER1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, second))

	active, err := s.storage.FindActiveSessionByPlayer(s.ctx, "PLAYER1")
	s.Require().NoError(err)
	s.Equal(model.SessionID("SESSION2"), active.ID)
}

func (s *RedisStorageTestSuite) TestTerminalSessionGetsTTL() {
	session := s.newSession("SESSION1", "PLAYER1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))
	s.Equal(time.Duration(0), s.mini.TTL(sessionKey("SESSION1")))

	loaded, err := s.storage.GetSession(s.ctx, "SESSION1")
	s.Require().NoError(err)
	loaded.Status = model.SessionAbandoned
	s.Require().NoError(s.storage.SaveSession(s.ctx, loaded))

	s.Equal(30*24*time.Hour, s.mini.TTL(sessionKey("SESSION1")))
}

func TestRedisStorageTestSuite(t *testing.T) {
	suite.Run(t, new(RedisStorageTestSuite))
}
