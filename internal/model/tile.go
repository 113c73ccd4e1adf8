package model

// TileID identifies a physical tile for the lifetime of a game. Zero means "no tile".
type TileID int

// NoTile marks an empty cell
const NoTile TileID = 0

// Color is the color of a tile face
type Color string

const (
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
)

// HighlightColor is the face color that costs points when shown on the board
const HighlightColor = ColorGreen

// Side selects which face of a tile is shown
type Side int

const (
	SideFront Side = 0
	SideBack  Side = 1
)

// Face is one side of a tile
type Face struct {
	Letter rune
	Color  Color
}

// Ownership tags a tile that has been scored into a row in multiplayer games
type Ownership struct {
	PlayerID      PlayerID
	PositionScore int
	Frozen        bool
	FrozenWordID  int
}

// Tile is a two-sided letter piece
type Tile struct {
	ID    TileID
	Faces [2]Face
	Side  Side
	Owner *Ownership // nil while untracked
}

// Shown returns the face currently facing up
func (t *Tile) Shown() Face {
	return t.Faces[t.Side]
}

// Letter returns the letter currently facing up
func (t *Tile) Letter() rune {
	return t.Shown().Letter
}

// IsHighlighted reports whether the shown face carries the highlight color
func (t *Tile) IsHighlighted() bool {
	return t.Shown().Color == HighlightColor
}

// Flip toggles the shown side
func (t *Tile) Flip() {
	if t.Side == SideFront {
		t.Side = SideBack
	} else {
		t.Side = SideFront
	}
}

// IsFrozen reports whether the tile is locked into a frozen word
func (t *Tile) IsFrozen() bool {
	return t.Owner != nil && t.Owner.Frozen
}

// TileSet indexes every tile of a game by ID
type TileSet map[TileID]*Tile

// Get returns the tile with the given ID, or nil
func (s TileSet) Get(id TileID) *Tile {
	if id == NoTile {
		return nil
	}
	return s[id]
}

// Clone returns a deep copy of the set
func (s TileSet) Clone() TileSet {
	out := make(TileSet, len(s))
	for id, t := range s {
		cp := *t
		if t.Owner != nil {
			owner := *t.Owner
			cp.Owner = &owner
		}
		out[id] = &cp
	}
	return out
}
