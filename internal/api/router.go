package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sendagame/progress/internal/api/handler"
	apimiddleware "github.com/sendagame/progress/internal/api/middleware"
	"github.com/sendagame/progress/internal/levels"
	"github.com/sendagame/progress/internal/middleware"
	"github.com/sendagame/progress/internal/services/lifecycle"
	"github.com/sendagame/progress/internal/services/player"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger              *slog.Logger
	PlayerService       *player.Service
	LifecycleController *lifecycle.Controller
	Catalog             *levels.Catalog

	// AdminToken enables read-only admin access when non-empty
	AdminToken string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)
	gameHandler := handler.NewGameHandler(cfg.LifecycleController)
	levelsHandler := handler.NewLevelsHandler(cfg.Catalog)

	identityMiddleware := apimiddleware.Identity()
	adminMiddleware := apimiddleware.Admin(cfg.AdminToken)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Registration carries no identity yet; the catalog and health
	// endpoints are public reads
	api.HandleFunc("/players", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/levels", levelsHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Player routes (identity required)
	players := api.PathPrefix("/players").Subrouter()
	players.Use(identityMiddleware)
	players.Use(adminMiddleware)
	players.HandleFunc("/{player_id}", playerHandler.Get).Methods(http.MethodGet)

	// Game routes (identity required)
	games := api.PathPrefix("/games").Subrouter()
	games.Use(identityMiddleware)
	games.Use(adminMiddleware)
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{game_id}/levels/{level_id}/start", gameHandler.StartLevel).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/levels/{level_id}/complete", gameHandler.CompleteLevel).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/complete", gameHandler.Complete).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/abandon", gameHandler.Abandon).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/stats/retry", gameHandler.RetryStats).Methods(http.MethodPost)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
