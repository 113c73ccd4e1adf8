package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GameMode selects between the single-player and hot-seat variants
type GameMode string

const (
	GameModeSolo        GameMode = "solo"
	GameModeMultiplayer GameMode = "multiplayer"
)

// GameState represents the current phase of a game
type GameState string

const (
	GameStatePlaying  GameState = "playing"
	GameStateComplete GameState = "complete"
)

// Game is the full snapshot of one round
type Game struct {
	ID    GameID
	Mode  GameMode
	State GameState

	Players      []Player
	PlayerStates []PlayerState

	Board  *Board
	Tiles  TileSet
	Ledger []RowLedger // one per board row, multiplayer only
	Turn   TurnState
	Pool   PoolState

	// Last evaluation pass
	Score BoardScore

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsMultiplayer reports whether ownership and turns apply
func (g *Game) IsMultiplayer() bool {
	return g.Mode == GameModeMultiplayer
}

// IsComplete returns true once the game has reached its terminal state
func (g *Game) IsComplete() bool {
	return g.State == GameStateComplete
}

// IsValidPlayer returns true if the ID names a seat in this game
func (g *Game) IsValidPlayer(id PlayerID) bool {
	return id >= 0 && int(id) < len(g.Players)
}

// PlayerState returns the state for a seat, or nil if out of range
func (g *Game) PlayerState(id PlayerID) *PlayerState {
	if !g.IsValidPlayer(id) || int(id) >= len(g.PlayerStates) {
		return nil
	}
	return &g.PlayerStates[id]
}

// Clone returns a deep copy of the game
func (g *Game) Clone() *Game {
	cp := *g
	cp.Players = append([]Player(nil), g.Players...)
	cp.PlayerStates = append([]PlayerState(nil), g.PlayerStates...)
	if g.Board != nil {
		cp.Board = g.Board.Clone()
	}
	cp.Tiles = g.Tiles.Clone()
	if g.Ledger != nil {
		cp.Ledger = make([]RowLedger, len(g.Ledger))
		for i, l := range g.Ledger {
			cp.Ledger[i] = l.Clone()
		}
	}
	cp.Turn = g.Turn.Clone()
	cp.Pool = g.Pool.Clone()
	cp.Score = BoardScore{
		Words:      append([]Word(nil), g.Score.Words...),
		ValidWords: append([]ScoredWord(nil), g.Score.ValidWords...),
		Total:      g.Score.Total,
	}
	return &cp
}

// GameSummary is a lightweight record of a completed game
type GameSummary struct {
	ID            GameID
	Mode          GameMode
	Players       []Player
	FinalScores   map[PlayerID]int
	CompleteWords map[PlayerID]int
	Winner        PlayerID // NoPlayer if tie
	CompletedAt   time.Time
}
