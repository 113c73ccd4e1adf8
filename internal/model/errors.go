package model

import "errors"

// Common errors used across the application
var (
	// Game errors
	ErrGameNotFound       = errors.New("game not found")
	ErrGameComplete       = errors.New("game is already complete")
	ErrInvalidMode        = errors.New("invalid game mode")
	ErrInvalidPlayerCount = errors.New("player count out of range")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrNotPlayerTurn      = errors.New("not this player's turn")
	ErrPlayerFinished     = errors.New("player has already finished")
	ErrSummaryNotFound    = errors.New("game summary not found")

	// Board errors
	ErrInvalidPosition = errors.New("invalid board position")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrCellEmpty       = errors.New("cell is empty")
	ErrRowOwned        = errors.New("row is owned by another player")

	// Tile errors
	ErrTileNotFound   = errors.New("tile not found")
	ErrTileNotInHand  = errors.New("tile is not in the player's hand")
	ErrTileFrozen     = errors.New("tile is frozen into a word")
	ErrTileNotTracked = errors.New("tile is not tracked in this row")
	ErrPoolExhausted  = errors.New("tile pool is exhausted")

	// Dictionary errors
	ErrDictionaryNotLoaded     = errors.New("dictionary not loaded")
	ErrDictionarySourceMissing = errors.New("dictionary source missing")
	ErrDictionaryEmpty         = errors.New("dictionary source contains no usable entries")
	ErrDictionaryFailed        = errors.New("dictionary failed to load")

	// Autoplay errors
	ErrUnknownStrategy = errors.New("unknown autoplay strategy")

	// ErrInvariant marks internal consistency failures; always wrapped with detail
	ErrInvariant = errors.New("internal invariant violated")
)
