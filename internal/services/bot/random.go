package bot

import (
	"github.com/mcoot/trampoline/internal/dependencies/random"
	"github.com/mcoot/trampoline/internal/model"
)

// RandomStrategy places a random hand tile at a random candidate cell
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseMove implements Strategy
func (s *RandomStrategy) ChooseMove(g *model.Game, player model.PlayerID) (Move, bool) {
	hand := g.Pool.Hands[player]
	cells := Candidates(g, player)
	if len(hand) == 0 || len(cells) == 0 {
		return Move{}, false
	}
	return Move{
		Tile:     hand[s.random.Intn(len(hand))],
		Position: cells[s.random.Intn(len(cells))],
	}, true
}

var _ Strategy = (*RandomStrategy)(nil)
