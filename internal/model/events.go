package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventGameCreated    EventType = "game_created"
	EventTilePlaced     EventType = "tile_placed"
	EventTileRemoved    EventType = "tile_removed"
	EventTileFlipped    EventType = "tile_flipped"
	EventScoresUpdated  EventType = "scores_updated"
	EventTurnChanged    EventType = "turn_changed"
	EventPlayerFinished EventType = "player_finished"
	EventGameCompleted  EventType = "game_completed"
)

// Event is the base structure for all events
type Event struct {
	Type      EventType
	Timestamp time.Time
	GameID    GameID
	PlayerID  PlayerID // The player who triggered or is affected
	Payload   any      // Type-specific data
}

// TileMovedPayload contains data for tile placed and removed events
type TileMovedPayload struct {
	Tile     TileID
	Position Position
	Letter   rune
}

// TileFlippedPayload contains data for tile flipped events
type TileFlippedPayload struct {
	Tile        TileID
	Side        Side
	Letter      rune
	Highlighted bool
}

// ScoresUpdatedPayload contains data for scores updated events
type ScoresUpdatedPayload struct {
	Total  int
	Scores []PlayerState
}

// TurnChangedPayload contains data for turn changed events
type TurnChangedPayload struct {
	PreviousPlayer PlayerID
	CurrentPlayer  PlayerID
}

// GameCompletedPayload contains data for game completed events
type GameCompletedPayload struct {
	Scores []PlayerState
	Winner PlayerID // NoPlayer if tie
}
