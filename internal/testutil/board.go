package testutil

import (
	"unicode"

	"github.com/mcoot/trampoline/internal/model"
)

// FillBoard lays rows of letters onto b starting at row 0 and returns the tiles used.
// '.' or ' ' leaves a cell empty. Uppercase letters show a yellow face, lowercase
// letters show the same letter on the green face.
func FillBoard(b *model.Board, rows ...string) model.TileSet {
	tiles := model.TileSet{}
	next := model.TileID(1)
	for r, line := range rows {
		for b.Rows() <= r {
			b.AppendRow()
		}
		for c, ch := range []rune(line) {
			if ch == '.' || ch == ' ' || c >= b.Cols {
				continue
			}
			tiles[next] = NewTile(next, ch)
			b.Set(model.Position{Row: r, Col: c}, next)
			next++
		}
	}
	return tiles
}

// NewTile returns a tile whose shown face carries the letter, green when ch is lowercase
func NewTile(id model.TileID, ch rune) *model.Tile {
	letter := unicode.ToUpper(ch)
	shown, other := model.ColorYellow, model.ColorGreen
	if unicode.IsLower(ch) {
		shown, other = other, shown
	}
	return &model.Tile{
		ID: id,
		Faces: [2]model.Face{
			{Letter: letter, Color: shown},
			{Letter: letter, Color: other},
		},
	}
}
