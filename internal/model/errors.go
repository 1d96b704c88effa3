package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Session errors
	ErrSessionNotFound  = errors.New("session not found")
	ErrForbidden        = errors.New("session does not belong to player")
	ErrSessionNotActive = errors.New("session is no longer in progress")

	// Level errors
	ErrInvalidLevel          = errors.New("unknown level")
	ErrLevelAlreadyCompleted = errors.New("level already completed")

	// Choice and relic errors
	ErrInvalidChoice = errors.New("invalid choice")
	ErrInvalidRelic  = errors.New("relic does not belong to level")

	// Metric errors
	ErrInvalidDeaths   = errors.New("death count must be non-negative")
	ErrInvalidDuration = errors.New("invalid duration override")

	// Aggregation errors
	ErrStatsNotApplied = errors.New("player stats aggregation pending")

	// Storage errors
	ErrVersionConflict = errors.New("record was modified concurrently")

	// ErrActiveSessionConflict signals a concurrent writer created or
	// kept another active session for the player; resolved by retrying
	// the supersede-then-create cycle
	ErrActiveSessionConflict = errors.New("active session changed concurrently")
)
