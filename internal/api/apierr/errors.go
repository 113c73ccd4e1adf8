package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/trampoline/internal/model"
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
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidMode         = "INVALID_MODE"
	CodeInvalidPlayerCount  = "INVALID_PLAYER_COUNT"
	CodeInvalidPosition     = "INVALID_POSITION"
	CodeNotYourTurn         = "NOT_YOUR_TURN"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodePlayerFinished      = "PLAYER_FINISHED"
	CodeGameNotFound        = "GAME_NOT_FOUND"
	CodeGameComplete        = "GAME_COMPLETE"
	CodeSummaryNotFound     = "SUMMARY_NOT_FOUND"
	CodeCellOccupied        = "CELL_OCCUPIED"
	CodeCellEmpty           = "CELL_EMPTY"
	CodeRowOwned            = "ROW_OWNED"
	CodeTileNotFound        = "TILE_NOT_FOUND"
	CodeTileNotInHand       = "TILE_NOT_IN_HAND"
	CodeTileFrozen          = "TILE_FROZEN"
	CodeDictionaryNotLoaded = "DICTIONARY_NOT_LOADED"
	CodeDictionaryFailed    = "DICTIONARY_FAILED"
	CodeUnknownStrategy     = "UNKNOWN_STRATEGY"
	CodeInternalError       = "INTERNAL_ERROR"
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

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// ErrInvariant first: its wrapped detail may also carry a domain sentinel
	switch {
	case errors.Is(err, model.ErrInvariant):
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}

	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrSummaryNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSummaryNotFound, "Game summary not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrGameComplete):
		return &httpError{http.StatusConflict, APIError{CodeGameComplete, "Game is already complete"}}
	case errors.Is(err, model.ErrInvalidMode):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidMode, "Invalid game mode"}}
	case errors.Is(err, model.ErrInvalidPlayerCount):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayerCount, "Player count out of range"}}
	case errors.Is(err, model.ErrNotPlayerTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrPlayerFinished):
		return &httpError{http.StatusConflict, APIError{CodePlayerFinished, "Player has already finished"}}

	case errors.Is(err, model.ErrInvalidPosition):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPosition, "Invalid board position"}}
	case errors.Is(err, model.ErrCellOccupied):
		return &httpError{http.StatusConflict, APIError{CodeCellOccupied, "Cell is already occupied"}}
	case errors.Is(err, model.ErrCellEmpty):
		return &httpError{http.StatusConflict, APIError{CodeCellEmpty, "Cell is empty"}}
	case errors.Is(err, model.ErrRowOwned):
		return &httpError{http.StatusForbidden, APIError{CodeRowOwned, "Row is owned by another player"}}

	case errors.Is(err, model.ErrTileNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTileNotFound, "Tile not found"}}
	case errors.Is(err, model.ErrTileNotInHand):
		return &httpError{http.StatusConflict, APIError{CodeTileNotInHand, "Tile is not in your hand"}}
	case errors.Is(err, model.ErrTileFrozen):
		return &httpError{http.StatusConflict, APIError{CodeTileFrozen, "Tile is frozen into a word"}}

	case errors.Is(err, model.ErrDictionaryFailed):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeDictionaryFailed, "Dictionary failed to load"}}
	case errors.Is(err, model.ErrDictionaryNotLoaded):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeDictionaryNotLoaded, "Dictionary is still loading"}}
	case errors.Is(err, model.ErrUnknownStrategy):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownStrategy, "Unknown autoplay strategy"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
