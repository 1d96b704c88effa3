package redis

import (
	"fmt"

	"github.com/sendagame/progress/internal/model"
)

// Key prefix for all progress-related data
const keyPrefix = "senda"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// sessionKey returns the Redis key for a GameSession
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// activeSessionKey returns the Redis key for the player -> active session index
func activeSessionKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:active_session:%s", keyPrefix, playerID)
}
