package handler

import (
	"net/http"

	"github.com/sendagame/progress/internal/api/response"
	"github.com/sendagame/progress/internal/levels"
)

// LevelsHandler serves the static level catalog
type LevelsHandler struct {
	catalog *levels.Catalog
}

// NewLevelsHandler creates a new levels handler
func NewLevelsHandler(catalog *levels.Catalog) *LevelsHandler {
	return &LevelsHandler{catalog: catalog}
}

// List handles GET /api/v1/levels
func (h *LevelsHandler) List(w http.ResponseWriter, r *http.Request) {
	resp := response.LevelsResponse{Levels: make([]response.Level, 0, h.catalog.Len())}
	for _, id := range h.catalog.IDs() {
		level, err := h.catalog.Lookup(id)
		if err != nil {
			WriteError(w, err)
			return
		}
		resp.Levels = append(resp.Levels, response.LevelFromCatalog(level))
	}
	response.JSON(w, http.StatusOK, resp)
}
