package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/sendagame/progress/internal/api/middleware"
	"github.com/sendagame/progress/internal/api/request"
	"github.com/sendagame/progress/internal/api/response"
	"github.com/sendagame/progress/internal/model"
	"github.com/sendagame/progress/internal/services/player"
)

// PlayerHandler handles player endpoints
type PlayerHandler struct {
	players *player.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(players *player.Service) *PlayerHandler {
	return &PlayerHandler{players: players}
}

// Register handles POST /api/v1/players
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		WriteError(w, NewInvalidRequestError("display_name is required"))
		return
	}

	p, err := h.players.Register(r.Context(), name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(p))
}

// Get handles GET /api/v1/players/{player_id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	acting := middleware.MustGetPlayerID(r.Context())
	id := model.PlayerID(mux.Vars(r)["player_id"])

	if id != acting && !middleware.IsAdmin(r.Context()) {
		WriteError(w, model.ErrForbidden)
		return
	}

	p, err := h.players.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}
