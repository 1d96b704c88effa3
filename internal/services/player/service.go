package player

import (
	"context"
	"log/slog"

	"github.com/sendagame/progress/internal/dependencies/clock"
	"github.com/sendagame/progress/internal/dependencies/random"
	"github.com/sendagame/progress/internal/model"
	"github.com/sendagame/progress/internal/storage"
)

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Service manages player registration and lookup
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new player service
func New(storage storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clk,
		random:  rnd,
		logger:  logger,
	}
}

// Register creates a new player with zeroed counters
func (s *Service) Register(ctx context.Context, displayName string) (*model.Player, error) {
	now := s.clock.Now()
	player := &model.Player{
		ID:          model.PlayerID(s.random.String(12, idAlphabet)),
		DisplayName: displayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player registered",
		slog.String("player_id", string(player.ID)),
		slog.String("display_name", displayName),
	)

	return player, nil
}

// Get retrieves a player by id
func (s *Service) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}
