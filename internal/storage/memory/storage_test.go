package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/sendagame/progress/internal/model"
)

type MemoryStorageTestSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func (s *MemoryStorageTestSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *MemoryStorageTestSuite) newSession(id model.SessionID, playerID model.PlayerID) *model.GameSession {
	return &model.GameSession{
		ID:             id,
		PlayerID:       playerID,
		Status:         model.SessionInProgress,
		Choices:        make(map[model.LevelID]model.Choice),
		LevelStartedAt: make(map[model.LevelID]time.Time),
		Metrics: model.SessionMetrics{
			TimePerLevel:   make(map[model.LevelID]int64),
			DeathsPerLevel: make(map[model.LevelID]int),
		},
		StartedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *MemoryStorageTestSuite) TestSaveAndGetPlayer() {
	player := &model.Player{ID: "PLAYER1", DisplayName: "La Viajera"}

	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))
	s.Equal(int64(1), player.Version)

	got, err := s.storage.GetPlayer(s.ctx, "PLAYER1")
	s.Require().NoError(err)
	s.Equal("La Viajera", got.DisplayName)
	s.Equal(int64(1), got.Version)
}

func (s *MemoryStorageTestSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "NOBODY")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *MemoryStorageTestSuite) TestSavePlayerCreateConflict() {
	player := &model.Player{ID: "PLAYER1"}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	// A second create (version 0) against an existing record must fail
	dup := &model.Player{ID: "PLAYER1"}
	s.ErrorIs(s.storage.SavePlayer(s.ctx, dup), model.ErrVersionConflict)
}

func (s *MemoryStorageTestSuite) TestSavePlayerStaleVersionConflict() {
	player := &model.Player{ID: "PLAYER1"}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	first, err := s.storage.GetPlayer(s.ctx, "PLAYER1")
	s.Require().NoError(err)
	second, err := s.storage.GetPlayer(s.ctx, "PLAYER1")
	s.Require().NoError(err)

	first.GamesPlayed = 1
	s.Require().NoError(s.storage.SavePlayer(s.ctx, first))

	second.GamesPlayed = 7
	s.ErrorIs(s.storage.SavePlayer(s.ctx, second), model.ErrVersionConflict)

	got, err := s.storage.GetPlayer(s.ctx, "PLAYER1")
	s.Require().NoError(err)
	s.Equal(1, got.GamesPlayed)
}

func (s *MemoryStorageTestSuite) TestGetPlayerReturnsCopy() {
	relic := model.RelicID("lirio")
	player := &model.Player{ID: "PLAYER1"}
	player.Stats.FavoriteRelic = &relic
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	got, err := s.storage.GetPlayer(s.ctx, "PLAYER1")
	s.Require().NoError(err)
	*got.Stats.FavoriteRelic = "espejo"
	got.DisplayName = "mutated"

	again, err := s.storage.GetPlayer(s.ctx, "PLAYER1")
	s.Require().NoError(err)
	s.Equal(model.RelicID("lirio"), *again.Stats.FavoriteRelic)
	s.Empty(again.DisplayName)
}

func (s *MemoryStorageTestSuite) TestSaveAndGetSession() {
	session := s.newSession("SESSION1", "PLAYER1")

	s.Require().NoError(s.storage.SaveSession(s.ctx, session))
	s.Equal(int64(1), session.Version)

	got, err := s.storage.GetSession(s.ctx, "SESSION1")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("PLAYER1"), got.PlayerID)
	s.Equal(model.SessionInProgress, got.Status)
}

func (s *MemoryStorageTestSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "NOWHERE")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *MemoryStorageTestSuite) TestSessionVersionConflict() {
	session := s.newSession("SESSION1", "PLAYER1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	stale := s.newSession("SESSION1", "PLAYER1")
	stale.Version = 0
	s.ErrorIs(s.storage.SaveSession(s.ctx, stale), model.ErrVersionConflict)
}

func (s *MemoryStorageTestSuite) TestGetSessionReturnsCopy() {
	session := s.newSession("SESSION1", "PLAYER1")
	session.Relics = []model.RelicID{"lirio"}
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	got, err := s.storage.GetSession(s.ctx, "SESSION1")
	s.Require().NoError(err)
	got.Relics[0] = "espejo"
	got.Choices["senda_ebano"] = "sanar"

	again, err := s.storage.GetSession(s.ctx, "SESSION1")
	s.Require().NoError(err)
	s.Equal(model.RelicID("lirio"), again.Relics[0])
	s.Empty(again.Choices)
}

func (s *MemoryStorageTestSuite) TestFindActiveSession() {
	session := s.newSession("SESSION1", "PLAYER1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	active, err := s.storage.FindActiveSessionByPlayer(s.ctx, "PLAYER1")
	s.Require().NoError(err)
	s.Equal(model.SessionID("SESSION1"), active.ID)
}

func (s *MemoryStorageTestSuite) TestFindActiveSessionNone() {
	_, err := s.storage.FindActiveSessionByPlayer(s.ctx, "PLAYER1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *MemoryStorageTestSuite) TestActiveIndexClearedOnTerminalSave() {
	session := s.newSession("SESSION1", "PLAYER1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	loaded, err := s.storage.GetSession(s.ctx, "SESSION1")
	s.Require().NoError(err)
	loaded.Status = model.SessionAbandoned
	s.Require().NoError(s.storage.SaveSession(s.ctx, loaded))

	_, err = s.storage.FindActiveSessionByPlayer(s.ctx, "PLAYER1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *MemoryStorageTestSuite) TestSecondActiveSessionRejected() {
	first := s.newSession("SESSION1", "PLAYER1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, first))

	// A second in_progress save for the same player loses the create race
	second := s.newSession("SESSION2", "PLAYER1")
	s.ErrorIs(s.storage.SaveSession(s.ctx, second), model.ErrActiveSessionConflict)

	_, err := s.storage.GetSession(s.ctx, "SESSION2")
	s.ErrorIs(err, model.ErrSessionNotFound)

	active, err := s.storage.FindActiveSessionByPlayer(s.ctx, "PLAYER1")
	s.Require().NoError(err)
	s.Equal(model.SessionID("SESSION1"), active.ID)
}

func (s *MemoryStorageTestSuite) TestActiveSessionUpdateAllowed() {
	session := s.newSession("SESSION1", "PLAYER1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	loaded, err := s.storage.GetSession(s.ctx, "SESSION1")
	s.Require().NoError(err)
	loaded.TotalTimeSeconds = 42
	s.Require().NoError(s.storage.SaveSession(s.ctx, loaded))
}

func (s *MemoryStorageTestSuite) TestNewActiveSessionAfterTerminal() {
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

func TestMemoryStorageTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryStorageTestSuite))
}
