package bot

import (
	"github.com/mcoot/trampoline/internal/model"
)

// Move is a single placement chosen by a strategy
type Move struct {
	Tile     model.TileID
	Position model.Position
}

// Strategy picks the next placement for a seat. ok is false when no move exists.
type Strategy interface {
	ChooseMove(g *model.Game, player model.PlayerID) (move Move, ok bool)
}

// Candidates returns the cells a seat may extend: the end of the filled prefix of
// every non-empty row it can play in, plus the first empty row.
func Candidates(g *model.Game, player model.PlayerID) []model.Position {
	b := g.Board
	var result []model.Position
	openedEmpty := false
	for row := 0; row < b.Rows(); row++ {
		if g.IsMultiplayer() {
			if owner := b.Owner(row); owner != model.NoPlayer && owner != player {
				continue
			}
		}
		col := prefixEnd(b, row)
		if col >= b.Cols {
			continue
		}
		if b.IsRowEmpty(row) {
			if openedEmpty {
				continue
			}
			openedEmpty = true
		}
		result = append(result, model.Position{Row: row, Col: col})
	}
	return result
}

func prefixEnd(b *model.Board, row int) int {
	for col, id := range b.Cells[row] {
		if id == model.NoTile {
			return col
		}
	}
	return b.Cols
}
