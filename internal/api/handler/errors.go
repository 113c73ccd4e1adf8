package handler

import (
	"net/http"

	"github.com/mcoot/trampoline/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest      = apierr.CodeInvalidRequest
	CodeInvalidMode         = apierr.CodeInvalidMode
	CodeInvalidPlayerCount  = apierr.CodeInvalidPlayerCount
	CodeInvalidPosition     = apierr.CodeInvalidPosition
	CodeNotYourTurn         = apierr.CodeNotYourTurn
	CodePlayerNotFound      = apierr.CodePlayerNotFound
	CodePlayerFinished      = apierr.CodePlayerFinished
	CodeGameNotFound        = apierr.CodeGameNotFound
	CodeGameComplete        = apierr.CodeGameComplete
	CodeSummaryNotFound     = apierr.CodeSummaryNotFound
	CodeCellOccupied        = apierr.CodeCellOccupied
	CodeCellEmpty           = apierr.CodeCellEmpty
	CodeRowOwned            = apierr.CodeRowOwned
	CodeTileNotFound        = apierr.CodeTileNotFound
	CodeTileNotInHand       = apierr.CodeTileNotInHand
	CodeTileFrozen          = apierr.CodeTileFrozen
	CodeDictionaryNotLoaded = apierr.CodeDictionaryNotLoaded
	CodeUnknownStrategy     = apierr.CodeUnknownStrategy
	CodeInternalError       = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
