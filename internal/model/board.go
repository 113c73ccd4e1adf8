package model

// Position identifies a cell on the board
type Position struct {
	Row int // 0-indexed from top
	Col int // 0-indexed from left
}

// BoardConfig bounds the shape of a board
type BoardConfig struct {
	Cols    int
	MinRows int
	MaxRows int

	// TrackOwnership enables per-row owner attribution (multiplayer)
	TrackOwnership bool
}

// DefaultBoardConfig returns the standard 9-column, 2..13 row board
func DefaultBoardConfig() BoardConfig {
	return BoardConfig{
		Cols:    9,
		MinRows: 2,
		MaxRows: 13,
	}
}

// Board is a fixed-width, variable-height grid of tile references
type Board struct {
	Cols      int
	Cells     [][]TileID // Row-major: Cells[row][col], NoTile means empty
	RowOwners []PlayerID // nil unless ownership is tracked
}

// NewBoard creates an empty board with the configured minimum row count
func NewBoard(cfg BoardConfig) *Board {
	b := &Board{Cols: cfg.Cols}
	if cfg.TrackOwnership {
		b.RowOwners = []PlayerID{}
	}
	for i := 0; i < cfg.MinRows; i++ {
		b.AppendRow()
	}
	return b
}

// Rows returns the current row count
func (b *Board) Rows() int {
	return len(b.Cells)
}

// CellCount returns the total number of cells
func (b *Board) CellCount() int {
	count := 0
	for _, row := range b.Cells {
		count += len(row)
	}
	return count
}

// Get returns the tile at the given position, or NoTile if empty or out of range
func (b *Board) Get(pos Position) TileID {
	if !b.IsValidPosition(pos) {
		return NoTile
	}
	return b.Cells[pos.Row][pos.Col]
}

// Set places a tile at the given position
func (b *Board) Set(pos Position, tile TileID) {
	if b.IsValidPosition(pos) {
		b.Cells[pos.Row][pos.Col] = tile
	}
}

// IsEmpty returns true if the cell at the given position is empty
func (b *Board) IsEmpty(pos Position) bool {
	return b.Get(pos) == NoTile
}

// IsValidPosition returns true if the position is within bounds
func (b *Board) IsValidPosition(pos Position) bool {
	return pos.Row >= 0 && pos.Row < len(b.Cells) && pos.Col >= 0 && pos.Col < b.Cols
}

// IsRowEmpty returns true if no cell in the row holds a tile
func (b *Board) IsRowEmpty(row int) bool {
	if row < 0 || row >= len(b.Cells) {
		return true
	}
	for _, id := range b.Cells[row] {
		if id != NoTile {
			return false
		}
	}
	return true
}

// RowTiles returns every tile in the row, gaps skipped
func (b *Board) RowTiles(row int) []TileID {
	if row < 0 || row >= len(b.Cells) {
		return nil
	}
	var result []TileID
	for _, id := range b.Cells[row] {
		if id != NoTile {
			result = append(result, id)
		}
	}
	return result
}

// Find returns the position of a tile on the board
func (b *Board) Find(tile TileID) (Position, bool) {
	if tile == NoTile {
		return Position{}, false
	}
	for r, row := range b.Cells {
		for c, id := range row {
			if id == tile {
				return Position{Row: r, Col: c}, true
			}
		}
	}
	return Position{}, false
}

// Owner returns the owner of a row, or NoPlayer
func (b *Board) Owner(row int) PlayerID {
	if row < 0 || row >= len(b.RowOwners) {
		return NoPlayer
	}
	return b.RowOwners[row]
}

// AppendRow adds an empty row at the bottom
func (b *Board) AppendRow() {
	b.Cells = append(b.Cells, make([]TileID, b.Cols))
	if b.RowOwners != nil {
		b.RowOwners = append(b.RowOwners, NoPlayer)
	}
}

// RemoveLastRow drops the bottom row
func (b *Board) RemoveLastRow() {
	if len(b.Cells) == 0 {
		return
	}
	b.Cells = b.Cells[:len(b.Cells)-1]
	if len(b.RowOwners) > len(b.Cells) {
		b.RowOwners = b.RowOwners[:len(b.Cells)]
	}
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	cp := &Board{Cols: b.Cols, Cells: make([][]TileID, len(b.Cells))}
	for i, row := range b.Cells {
		cp.Cells[i] = append([]TileID(nil), row...)
	}
	if b.RowOwners != nil {
		cp.RowOwners = append([]PlayerID{}, b.RowOwners...)
	}
	return cp
}

// Word is the contiguous prefix of filled cells in one row
type Word struct {
	Text        string
	Length      int // letters, not bytes
	Highlighted int // letters shown on the highlight face
	Row         int
	Owner       PlayerID // NoPlayer when unowned or untracked
	Tiles       []TileID
}

// ScoredWord is a dictionary-valid word with its contribution
type ScoredWord struct {
	Word
	Score int
}

// BoardScore is the result of one evaluation pass over a board
type BoardScore struct {
	Words      []Word
	ValidWords []ScoredWord
	Total      int
}
