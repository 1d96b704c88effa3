package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sendagame/progress/internal/api/middleware"
	"github.com/sendagame/progress/internal/api/request"
	"github.com/sendagame/progress/internal/api/response"
	"github.com/sendagame/progress/internal/model"
	"github.com/sendagame/progress/internal/services/lifecycle"
)

// GameHandler handles game session endpoints
type GameHandler struct {
	lifecycle *lifecycle.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(controller *lifecycle.Controller) *GameHandler {
	return &GameHandler{lifecycle: controller}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())

	session, err := h.lifecycle.CreateGame(r.Context(), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(session))
}

// Get handles GET /api/v1/games/{game_id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	sessionID := model.SessionID(mux.Vars(r)["game_id"])

	session, err := h.lifecycle.GetGame(r.Context(), sessionID, playerID, middleware.IsAdmin(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(session))
}

// StartLevel handles POST /api/v1/games/{game_id}/levels/{level_id}/start
func (h *GameHandler) StartLevel(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	vars := mux.Vars(r)
	sessionID := model.SessionID(vars["game_id"])
	levelID := model.LevelID(vars["level_id"])

	session, err := h.lifecycle.StartLevel(r.Context(), sessionID, playerID, levelID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(session))
}

// CompleteLevel handles POST /api/v1/games/{game_id}/levels/{level_id}/complete
func (h *GameHandler) CompleteLevel(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	vars := mux.Vars(r)
	sessionID := model.SessionID(vars["game_id"])
	levelID := model.LevelID(vars["level_id"])

	var req request.CompleteLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Deaths < 0 {
		WriteError(w, NewInvalidRequestError("deaths must be non-negative"))
		return
	}

	input := lifecycle.CompleteLevelInput{
		Level:            levelID,
		Deaths:           req.Deaths,
		DurationOverride: req.DurationSeconds,
	}
	if req.Choice != nil {
		c := model.Choice(*req.Choice)
		input.Choice = &c
	}
	if req.Relic != nil {
		relic := model.RelicID(*req.Relic)
		input.Relic = &relic
	}

	session, err := h.lifecycle.CompleteLevel(r.Context(), sessionID, playerID, input)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(session))
}

// Complete handles POST /api/v1/games/{game_id}/complete
func (h *GameHandler) Complete(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	sessionID := model.SessionID(mux.Vars(r)["game_id"])

	session, err := h.lifecycle.CompleteGame(r.Context(), sessionID, playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(session))
}

// Abandon handles POST /api/v1/games/{game_id}/abandon
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	sessionID := model.SessionID(mux.Vars(r)["game_id"])

	session, err := h.lifecycle.AbandonGame(r.Context(), sessionID, playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(session))
}

// RetryStats handles POST /api/v1/games/{game_id}/stats/retry
func (h *GameHandler) RetryStats(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	sessionID := model.SessionID(mux.Vars(r)["game_id"])

	session, err := h.lifecycle.ReapplyStats(r.Context(), sessionID, playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(session))
}
