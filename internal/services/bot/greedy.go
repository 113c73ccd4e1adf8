package bot

import (
	"github.com/mcoot/trampoline/internal/model"
)

// Scorer evaluates a whole board
type Scorer interface {
	ScoreBoard(b *model.Board, tiles model.TileSet) model.BoardScore
}

// GreedyStrategy tries every hand tile in every candidate cell and keeps the
// placement that leaves the seat with the highest score. Earlier hand tiles and
// upper rows win ties.
type GreedyStrategy struct {
	scorer Scorer
}

// NewGreedyStrategy creates a new GreedyStrategy
func NewGreedyStrategy(scorer Scorer) *GreedyStrategy {
	return &GreedyStrategy{scorer: scorer}
}

// ChooseMove implements Strategy
func (s *GreedyStrategy) ChooseMove(g *model.Game, player model.PlayerID) (Move, bool) {
	hand := g.Pool.Hands[player]
	cells := Candidates(g, player)
	if len(hand) == 0 || len(cells) == 0 {
		return Move{}, false
	}

	var best Move
	bestValue := 0
	found := false
	seen := make(map[string]bool, len(hand))
	for _, tile := range hand {
		t := g.Tiles.Get(tile)
		if t == nil {
			continue
		}
		// tiles showing the same face are interchangeable
		face := string(t.Letter()) + string(t.Shown().Color)
		if seen[face] {
			continue
		}
		seen[face] = true

		for _, pos := range cells {
			value := s.evaluate(g, player, tile, pos)
			if !found || value > bestValue {
				best = Move{Tile: tile, Position: pos}
				bestValue = value
				found = true
			}
		}
	}
	return best, found
}

func (s *GreedyStrategy) evaluate(g *model.Game, player model.PlayerID, tile model.TileID, pos model.Position) int {
	b := g.Board.Clone()
	b.Set(pos, tile)
	if b.RowOwners != nil && b.RowOwners[pos.Row] == model.NoPlayer {
		b.RowOwners[pos.Row] = player
	}

	score := s.scorer.ScoreBoard(b, g.Tiles)
	if !g.IsMultiplayer() {
		return score.Total
	}
	value := 0
	for _, w := range score.ValidWords {
		if w.Owner == player {
			value += w.Score
		}
	}
	return value
}

var _ Strategy = (*GreedyStrategy)(nil)
