package model

// PlayerID is a 0-based seat index within a game
type PlayerID int

// NoPlayer marks an unowned row or an absent winner
const NoPlayer PlayerID = -1

// Player is a seat at the table
type Player struct {
	ID          PlayerID
	DisplayName string
	Color       string // display color for owned rows, presentation only
}

// PlayerState is recomputed on every evaluation pass
type PlayerState struct {
	ID            PlayerID
	Score         int
	Finished      bool
	CompleteWords int
}

// PlayerColors is the default seat color palette
var PlayerColors = []string{"#e4572e", "#17bebb", "#ffc914", "#76b041"}
