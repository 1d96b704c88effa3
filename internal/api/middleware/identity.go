package middleware

import (
	"context"
	"net/http"

	"github.com/sendagame/progress/internal/api/apierr"
	"github.com/sendagame/progress/internal/model"
)

type contextKey string

const (
	playerIDContextKey contextKey = "player_id"
	adminContextKey    contextKey = "admin"
)

// Header names for caller identity. Authentication itself happens
// upstream; by the time a request reaches this service the player id is
// an opaque, already-verified value.
const (
	PlayerIDHeader   = "X-Player-ID"
	AdminTokenHeader = "X-Admin-Token"
)

// Identity requires the player id header and stores it on the context
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			playerID := r.Header.Get(PlayerIDHeader)
			if playerID == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			ctx := context.WithValue(r.Context(), playerIDContextKey, model.PlayerID(playerID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin flags the request as admin when the configured token matches.
// An empty configured token disables admin access entirely.
func Admin(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token != "" && r.Header.Get(AdminTokenHeader) == token {
				ctx := context.WithValue(r.Context(), adminContextKey, true)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetPlayerID returns the acting player id from the request context
func GetPlayerID(ctx context.Context) model.PlayerID {
	id, _ := ctx.Value(playerIDContextKey).(model.PlayerID)
	return id
}

// IsAdmin reports whether the request carries a valid admin token
func IsAdmin(ctx context.Context) bool {
	admin, _ := ctx.Value(adminContextKey).(bool)
	return admin
}

// MustGetPlayerID returns the acting player id or panics
func MustGetPlayerID(ctx context.Context) model.PlayerID {
	id := GetPlayerID(ctx)
	if id == "" {
		panic("no player id in context - identity middleware not applied?")
	}
	return id
}
