package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sendagame/progress/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeForbidden             = "FORBIDDEN"
	CodePlayerNotFound        = "PLAYER_NOT_FOUND"
	CodeGameNotFound          = "GAME_NOT_FOUND"
	CodeInvalidLevel          = "INVALID_LEVEL"
	CodeInvalidChoice         = "INVALID_CHOICE"
	CodeInvalidRelic          = "INVALID_RELIC"
	CodeInvalidDuration       = "INVALID_DURATION"
	CodeLevelAlreadyCompleted = "LEVEL_ALREADY_COMPLETED"
	CodeGameNotActive         = "GAME_NOT_ACTIVE"
	CodeConflict              = "CONFLICT"
	CodeStatsPending          = "STATS_AGGREGATION_PENDING"
	CodeInternalError         = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors; messages carry the wrapped detail (offending
	// field and valid values) without exposing internal state
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrForbidden):
		return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Game belongs to another player"}}
	case errors.Is(err, model.ErrInvalidLevel):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidLevel, err.Error()}}
	case errors.Is(err, model.ErrInvalidChoice):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidChoice, err.Error()}}
	case errors.Is(err, model.ErrInvalidRelic):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRelic, err.Error()}}
	case errors.Is(err, model.ErrInvalidDeaths):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, err.Error()}}
	case errors.Is(err, model.ErrInvalidDuration):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDuration, err.Error()}}
	case errors.Is(err, model.ErrLevelAlreadyCompleted):
		return &httpError{http.StatusConflict, APIError{CodeLevelAlreadyCompleted, "Level already completed"}}
	case errors.Is(err, model.ErrSessionNotActive):
		return &httpError{http.StatusConflict, APIError{CodeGameNotActive, "Game is no longer in progress"}}
	case errors.Is(err, model.ErrVersionConflict), errors.Is(err, model.ErrActiveSessionConflict):
		return &httpError{http.StatusConflict, APIError{CodeConflict, "Concurrent update, retry the request"}}
	case errors.Is(err, model.ErrStatsNotApplied):
		return &httpError{http.StatusInternalServerError, APIError{CodeStatsPending, "Stats aggregation pending, retry"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Player identity required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
