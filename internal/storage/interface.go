package storage

import (
	"context"

	"github.com/sendagame/progress/internal/model"
)

// Storage defines the persistence port for players and game sessions.
//
// Saves are optimistic compare-and-swap: a record with Version 0 must not
// already exist, and an existing record is only overwritten when the
// incoming Version matches the stored one. On success the adapter bumps
// the record's Version in place; on mismatch it returns
// model.ErrVersionConflict and leaves stored state intact. Concurrent
// operations against the same record are serialized by retrying on
// conflict.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)

	// Session operations. SaveSession maintains the player ->
	// active-session index in the same atomic write, and rejects an
	// in_progress save with model.ErrActiveSessionConflict when the index
	// already holds a different session; at most one session per player
	// is ever in_progress.
	SaveSession(ctx context.Context, session *model.GameSession) error
	GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error)

	// FindActiveSessionByPlayer returns the player's single in_progress
	// session, or model.ErrSessionNotFound when there is none
	FindActiveSessionByPlayer(ctx context.Context, playerID model.PlayerID) (*model.GameSession, error)
}
