package board

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcoot/trampoline/internal/model"
)

// Service provides board operations
type Service struct {
	cfg    model.BoardConfig
	logger *slog.Logger
}

// New creates a new BoardService
func New(cfg model.BoardConfig, logger *slog.Logger) *Service {
	return &Service{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "board")),
	}
}

// Config returns the board shape this service enforces
func (s *Service) Config() model.BoardConfig {
	return s.cfg
}

// NewBoard creates an empty board at the minimum row count
func (s *Service) NewBoard(trackOwnership bool) *model.Board {
	cfg := s.cfg
	cfg.TrackOwnership = trackOwnership
	return model.NewBoard(cfg)
}

// Resize applies one step of the row growth/shrink policy:
// grow to the minimum, else append a row when the last one is in use,
// else drop trailing rows while the last two are both empty.
func (s *Service) Resize(b *model.Board) error {
	switch {
	case b.Rows() < s.cfg.MinRows:
		for b.Rows() < s.cfg.MinRows {
			b.AppendRow()
		}
	case !b.IsRowEmpty(b.Rows()-1) && b.Rows() < s.cfg.MaxRows:
		b.AppendRow()
	default:
		for b.Rows() > s.cfg.MinRows && b.IsRowEmpty(b.Rows()-1) && b.IsRowEmpty(b.Rows()-2) {
			b.RemoveLastRow()
		}
	}
	return s.checkShape(b)
}

func (s *Service) checkShape(b *model.Board) error {
	if b.CellCount()%b.Cols != 0 {
		return fmt.Errorf("%w: %d cells is not a multiple of %d columns", model.ErrInvariant, b.CellCount(), b.Cols)
	}
	for i, row := range b.Cells {
		if len(row) != b.Cols {
			return fmt.Errorf("%w: row %d has %d cells, want %d", model.ErrInvariant, i, len(row), b.Cols)
		}
	}
	if b.RowOwners != nil && len(b.RowOwners) != b.Rows() {
		return fmt.Errorf("%w: %d row owners for %d rows", model.ErrInvariant, len(b.RowOwners), b.Rows())
	}
	return nil
}

// ValidatePlacement checks if a position is valid and empty
func (s *Service) ValidatePlacement(b *model.Board, pos model.Position) error {
	if !b.IsValidPosition(pos) {
		return model.ErrInvalidPosition
	}
	if !b.IsEmpty(pos) {
		return model.ErrCellOccupied
	}
	return nil
}

// Place puts a tile into an empty cell
func (s *Service) Place(b *model.Board, pos model.Position, tile model.TileID) error {
	if tile == model.NoTile {
		return model.ErrTileNotFound
	}
	if err := s.ValidatePlacement(b, pos); err != nil {
		return err
	}
	b.Set(pos, tile)
	return nil
}

// Remove takes the tile out of a cell and returns it
func (s *Service) Remove(b *model.Board, pos model.Position) (model.TileID, error) {
	if !b.IsValidPosition(pos) {
		return model.NoTile, model.ErrInvalidPosition
	}
	tile := b.Get(pos)
	if tile == model.NoTile {
		return model.NoTile, model.ErrCellEmpty
	}
	b.Set(pos, model.NoTile)
	return tile, nil
}

// ClaimRow gives an unowned row to a player. Placing into a row owned by
// someone else is refused. Boards without ownership tracking accept anything.
func (s *Service) ClaimRow(b *model.Board, row int, player model.PlayerID) error {
	if b.RowOwners == nil {
		return nil
	}
	if row < 0 || row >= len(b.RowOwners) {
		return model.ErrInvalidPosition
	}
	switch b.RowOwners[row] {
	case model.NoPlayer:
		b.RowOwners[row] = player
		return nil
	case player:
		return nil
	default:
		return model.ErrRowOwned
	}
}

// ReleaseEmptyRows clears the owner of every row that no longer holds a tile
func (s *Service) ReleaseEmptyRows(b *model.Board) {
	for row := range b.RowOwners {
		if b.RowOwners[row] != model.NoPlayer && b.IsRowEmpty(row) {
			b.RowOwners[row] = model.NoPlayer
		}
	}
}

// ExtractWord reads the contiguous prefix of filled cells in one row
func (s *Service) ExtractWord(b *model.Board, tiles model.TileSet, row int) model.Word {
	word := model.Word{Row: row, Owner: b.Owner(row)}
	if row < 0 || row >= b.Rows() {
		s.logger.Warn("row out of range", slog.Int("row", row))
		return word
	}

	var sb strings.Builder
	for _, id := range b.Cells[row] {
		if id == model.NoTile {
			break
		}
		t := tiles.Get(id)
		if t == nil {
			s.logger.Warn("board references unknown tile", slog.Int("tile", int(id)), slog.Int("row", row))
			break
		}
		sb.WriteRune(t.Letter())
		word.Tiles = append(word.Tiles, id)
		if t.IsHighlighted() {
			word.Highlighted++
		}
	}
	word.Text = sb.String()
	word.Length = len(word.Tiles)
	return word
}

// ExtractWords returns the non-empty word of every row, top to bottom
func (s *Service) ExtractWords(b *model.Board, tiles model.TileSet) []model.Word {
	var words []model.Word
	for row := 0; row < b.Rows(); row++ {
		if w := s.ExtractWord(b, tiles, row); w.Length > 0 {
			w.Owner = model.NoPlayer
			words = append(words, w)
		}
	}
	return words
}

// ExtractWordsWithOwner is ExtractWords with each word tagged by its row owner
func (s *Service) ExtractWordsWithOwner(b *model.Board, tiles model.TileSet) []model.Word {
	var words []model.Word
	for row := 0; row < b.Rows(); row++ {
		if w := s.ExtractWord(b, tiles, row); w.Length > 0 {
			words = append(words, w)
		}
	}
	return words
}

// Interface for dependency injection
type ServiceInterface interface {
	NewBoard(trackOwnership bool) *model.Board
	Resize(b *model.Board) error
	Place(b *model.Board, pos model.Position, tile model.TileID) error
	Remove(b *model.Board, pos model.Position) (model.TileID, error)
	ClaimRow(b *model.Board, row int, player model.PlayerID) error
	ReleaseEmptyRows(b *model.Board)
	ExtractWords(b *model.Board, tiles model.TileSet) []model.Word
	ExtractWordsWithOwner(b *model.Board, tiles model.TileSet) []model.Word
}

var _ ServiceInterface = (*Service)(nil)
