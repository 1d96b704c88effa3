package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/sendagame/progress/internal/model"
	"github.com/sendagame/progress/internal/storage"
)

// Storage is an in-memory implementation of the storage interface. A
// single mutex covers every save, so the version check, the write, and
// the active-session index update are one atomic step.
type Storage struct {
	mu sync.RWMutex

	players  map[model.PlayerID]*model.Player
	sessions map[model.SessionID]*model.GameSession

	// activeByPlayer indexes the one in_progress session per player
	activeByPlayer map[model.PlayerID]model.SessionID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:        make(map[model.PlayerID]*model.Player),
		sessions:       make(map[model.SessionID]*model.GameSession),
		activeByPlayer: make(map[model.PlayerID]model.SessionID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.players[player.ID]
	if err := checkVersion(exists, versionOf(stored), player.Version); err != nil {
		return err
	}

	player.Version++
	s.players[player.ID] = copyPlayer(player)
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return copyPlayer(player), nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.sessions[session.ID]
	if err := checkVersion(exists, sessionVersionOf(stored), session.Version); err != nil {
		return err
	}

	// At most one in_progress session per player; a save that would
	// create a second one is rejected, never silently indexed over
	if session.Status == model.SessionInProgress {
		if activeID, ok := s.activeByPlayer[session.PlayerID]; ok && activeID != session.ID {
			return model.ErrActiveSessionConflict
		}
	}

	session.Version++
	s.sessions[session.ID] = copySession(session)

	if session.Status == model.SessionInProgress {
		s.activeByPlayer[session.PlayerID] = session.ID
	} else if s.activeByPlayer[session.PlayerID] == session.ID {
		delete(s.activeByPlayer, session.PlayerID)
	}
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return copySession(session), nil
}

func (s *Storage) FindActiveSessionByPlayer(ctx context.Context, playerID model.PlayerID) (*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.activeByPlayer[playerID]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return copySession(session), nil
}

// checkVersion enforces compare-and-swap semantics for saves
func checkVersion(exists bool, stored, incoming int64) error {
	if !exists {
		if incoming != 0 {
			return model.ErrVersionConflict
		}
		return nil
	}
	if stored != incoming {
		return model.ErrVersionConflict
	}
	return nil
}

func versionOf(p *model.Player) int64 {
	if p == nil {
		return 0
	}
	return p.Version
}

func sessionVersionOf(s *model.GameSession) int64 {
	if s == nil {
		return 0
	}
	return s.Version
}

// copyPlayer deep-copies a player so callers never alias stored state

func copyPlayer(p *model.Player) *model.Player {
	out := *p
	if p.Stats.FavoriteRelic != nil {
		relic := *p.Stats.FavoriteRelic
		out.Stats.FavoriteRelic = &relic
	}
	if p.Stats.BestSpeedrunSeconds != nil {
		best := *p.Stats.BestSpeedrunSeconds
		out.Stats.BestSpeedrunSeconds = &best
	}
	out.AppliedSessions = maps.Clone(p.AppliedSessions)
	return &out
}

func copySession(s *model.GameSession) *model.GameSession {
	out := *s
	if s.CurrentLevel != nil {
		level := *s.CurrentLevel
		out.CurrentLevel = &level
	}
	if s.EndedAt != nil {
		ended := *s.EndedAt
		out.EndedAt = &ended
	}
	if s.StatsAppliedAt != nil {
		applied := *s.StatsAppliedAt
		out.StatsAppliedAt = &applied
	}
	out.LevelsCompleted = append([]model.LevelID(nil), s.LevelsCompleted...)
	out.Relics = append([]model.RelicID(nil), s.Relics...)
	out.Choices = maps.Clone(s.Choices)
	out.LevelStartedAt = maps.Clone(s.LevelStartedAt)
	out.Metrics.TimePerLevel = maps.Clone(s.Metrics.TimePerLevel)
	out.Metrics.DeathsPerLevel = maps.Clone(s.Metrics.DeathsPerLevel)
	return &out
}
