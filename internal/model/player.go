package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player represents a registered player and their cumulative statistics
type Player struct {
	ID          PlayerID
	DisplayName string

	// Cumulative counters across all sessions
	GamesPlayed          int
	GamesCompleted       int
	TotalPlaytimeSeconds int64

	Stats PlayerStats

	// AppliedSessions records which completed sessions have been folded
	// into the cumulative stats, keyed by session id. It is written in
	// the same save as the totals it guards, so a retry that lost the
	// session-side marker still cannot count a session twice.
	AppliedSessions map[SessionID]time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Version supports optimistic concurrency on saves
	Version int64
}

// HasAggregated reports whether the session's stats are already counted
func (p *Player) HasAggregated(id SessionID) bool {
	_, ok := p.AppliedSessions[id]
	return ok
}

// MarkAggregated records the session as counted
func (p *Player) MarkAggregated(id SessionID, at time.Time) {
	if p.AppliedSessions == nil {
		p.AppliedSessions = make(map[SessionID]time.Time)
	}
	p.AppliedSessions[id] = at
}

// PlayerStats is the aggregated stats block updated on game completion
type PlayerStats struct {
	TotalGoodChoices int
	TotalBadChoices  int
	TotalDeaths      int

	// FavoriteRelic is the most recently collected relic (last-write-wins)
	FavoriteRelic *RelicID

	// BestSpeedrunSeconds is the lowest total session time, nil until the
	// player completes a first game
	BestSpeedrunSeconds *int64

	// MoralAlignment is always derived from the cumulative good/bad counts,
	// in [-1, 1]
	MoralAlignment float64
}
