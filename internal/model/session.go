package model

import "time"

// SessionID uniquely identifies a game session
type SessionID string

// LevelID identifies a level in the catalog
type LevelID string

// RelicID identifies a collectible relic
type RelicID string

// Choice is a raw moral-choice value as submitted by the client
type Choice string

// SessionStatus represents the lifecycle state of a session
type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionAbandoned  SessionStatus = "abandoned"
)

// SessionMetrics holds per-session gameplay metrics
type SessionMetrics struct {
	TotalDeaths    int
	TimePerLevel   map[LevelID]int64
	DeathsPerLevel map[LevelID]int
}

// GameSession represents one playthrough by a single player
type GameSession struct {
	ID       SessionID
	PlayerID PlayerID
	Status   SessionStatus

	// CurrentLevel is the level last started and not yet completed
	CurrentLevel *LevelID

	// LevelsCompleted preserves completion order for display; each level
	// appears at most once
	LevelsCompleted []LevelID

	// Choices records the raw submitted value for decision levels
	Choices map[LevelID]Choice

	// Relics preserves collection order; the last entry is the most
	// recently obtained relic
	Relics []RelicID

	Metrics SessionMetrics

	// TotalTimeSeconds is the sum of per-level durations
	TotalTimeSeconds int64

	// CompletionPercentage is derived from the catalog size, in [0, 100]
	CompletionPercentage float64

	StartedAt time.Time
	EndedAt   *time.Time

	// LevelStartedAt records when each level was last started. It exists
	// only to compute durations on completion and is not part of the
	// session's public shape.
	LevelStartedAt map[LevelID]time.Time

	// StatsAppliedAt marks that this completed session has been folded
	// into the player's stats; guards against double aggregation
	StatsAppliedAt *time.Time

	UpdatedAt time.Time

	// Version supports optimistic concurrency on saves
	Version int64
}

// IsTerminal returns true once no further mutation is permitted
func (s *GameSession) IsTerminal() bool {
	return s.Status == SessionCompleted || s.Status == SessionAbandoned
}

// HasCompletedLevel returns true if the level is already in LevelsCompleted
func (s *GameSession) HasCompletedLevel(level LevelID) bool {
	for _, l := range s.LevelsCompleted {
		if l == level {
			return true
		}
	}
	return false
}

// HasRelic returns true if the relic was already collected this session
func (s *GameSession) HasRelic(relic RelicID) bool {
	for _, r := range s.Relics {
		if r == relic {
			return true
		}
	}
	return false
}

// LastRelic returns the most recently collected relic, or nil
func (s *GameSession) LastRelic() *RelicID {
	if len(s.Relics) == 0 {
		return nil
	}
	r := s.Relics[len(s.Relics)-1]
	return &r
}
