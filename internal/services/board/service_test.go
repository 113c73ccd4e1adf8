package board

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/trampoline/internal/model"
	"github.com/mcoot/trampoline/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New(model.DefaultBoardConfig(), testutil.NopLogger())
}

func pos(row, col int) model.Position {
	return model.Position{Row: row, Col: col}
}

// NewBoard tests

func (s *ServiceSuite) TestNewBoardStartsAtMinimum() {
	b := s.service.NewBoard(false)
	s.Equal(2, b.Rows())
	s.Equal(18, b.CellCount())
	s.Nil(b.RowOwners)
}

func (s *ServiceSuite) TestNewBoardWithOwnership() {
	b := s.service.NewBoard(true)
	s.Equal([]model.PlayerID{model.NoPlayer, model.NoPlayer}, b.RowOwners)
}

// Resize tests

func (s *ServiceSuite) TestResizeGrowsToMinimum() {
	b := &model.Board{Cols: 9}
	s.Require().NoError(s.service.Resize(b))
	s.Equal(2, b.Rows())
}

func (s *ServiceSuite) TestResizeAppendsWhenLastRowUsed() {
	b := s.service.NewBoard(true)
	b.Set(pos(1, 4), 1)

	s.Require().NoError(s.service.Resize(b))
	s.Equal(3, b.Rows())
	s.Len(b.RowOwners, 3)

	// One row per tick
	b.Set(pos(2, 0), 2)
	s.Require().NoError(s.service.Resize(b))
	s.Equal(4, b.Rows())
}

func (s *ServiceSuite) TestResizeStopsAtMaximum() {
	b := s.service.NewBoard(false)
	for row := 0; row < 20; row++ {
		b.Set(pos(b.Rows()-1, 0), model.TileID(row+1))
		s.Require().NoError(s.service.Resize(b))
	}
	s.Equal(13, b.Rows())
}

func (s *ServiceSuite) TestResizeShrinksTrailingEmptyRows() {
	b := s.service.NewBoard(false)
	for i := 0; i < 4; i++ {
		b.AppendRow()
	}
	b.Set(pos(0, 0), 1)

	s.Require().NoError(s.service.Resize(b))
	s.Equal(2, b.Rows())
}

func (s *ServiceSuite) TestResizeKeepsSingleTrailingEmptyRow() {
	b := s.service.NewBoard(false)
	b.AppendRow()
	b.AppendRow()
	b.Set(pos(2, 0), 1)

	s.Require().NoError(s.service.Resize(b))
	s.Equal(4, b.Rows())

	s.Require().NoError(s.service.Resize(b))
	s.Equal(4, b.Rows())
}

func (s *ServiceSuite) TestResizeDetectsMisalignedRow() {
	b := s.service.NewBoard(false)
	b.Cells[1] = b.Cells[1][:5]

	err := s.service.Resize(b)
	s.ErrorIs(err, model.ErrInvariant)
}

func (s *ServiceSuite) TestResizeInvariantHoldsUnderRandomPlay() {
	rng := rand.New(rand.NewSource(42))
	b := s.service.NewBoard(true)
	next := model.TileID(1)

	for step := 0; step < 2000; step++ {
		p := pos(rng.Intn(b.Rows()), rng.Intn(b.Cols))
		if b.IsEmpty(p) {
			s.Require().NoError(s.service.Place(b, p, next))
			next++
		} else {
			_, err := s.service.Remove(b, p)
			s.Require().NoError(err)
		}
		s.Require().NoError(s.service.Resize(b))

		s.GreaterOrEqual(b.Rows(), 2)
		s.LessOrEqual(b.Rows(), 13)
		s.Zero(b.CellCount() % 9)
		s.Len(b.RowOwners, b.Rows())
		if b.Rows() > 2 {
			s.False(b.IsRowEmpty(b.Rows()-1) && b.IsRowEmpty(b.Rows()-2),
				"two trailing empty rows at step %d", step)
		}
	}
}

// Place / Remove tests

func (s *ServiceSuite) TestPlaceSucceeds() {
	b := s.service.NewBoard(false)
	s.Require().NoError(s.service.Place(b, pos(1, 3), 7))
	s.Equal(model.TileID(7), b.Get(pos(1, 3)))
}

func (s *ServiceSuite) TestPlaceRejectsBadInput() {
	b := s.service.NewBoard(false)
	s.ErrorIs(s.service.Place(b, pos(5, 0), 1), model.ErrInvalidPosition)
	s.ErrorIs(s.service.Place(b, pos(0, 9), 1), model.ErrInvalidPosition)
	s.ErrorIs(s.service.Place(b, pos(0, -1), 1), model.ErrInvalidPosition)
	s.ErrorIs(s.service.Place(b, pos(0, 0), model.NoTile), model.ErrTileNotFound)

	s.Require().NoError(s.service.Place(b, pos(0, 0), 1))
	s.ErrorIs(s.service.Place(b, pos(0, 0), 2), model.ErrCellOccupied)
}

func (s *ServiceSuite) TestRemove() {
	b := s.service.NewBoard(false)
	b.Set(pos(0, 2), 4)

	tile, err := s.service.Remove(b, pos(0, 2))
	s.Require().NoError(err)
	s.Equal(model.TileID(4), tile)
	s.True(b.IsEmpty(pos(0, 2)))

	_, err = s.service.Remove(b, pos(0, 2))
	s.ErrorIs(err, model.ErrCellEmpty)
	_, err = s.service.Remove(b, pos(9, 0))
	s.ErrorIs(err, model.ErrInvalidPosition)
}

// Row ownership tests

func (s *ServiceSuite) TestClaimRow() {
	b := s.service.NewBoard(true)

	s.Require().NoError(s.service.ClaimRow(b, 0, 1))
	s.Equal(model.PlayerID(1), b.Owner(0))
	s.NoError(s.service.ClaimRow(b, 0, 1))
	s.ErrorIs(s.service.ClaimRow(b, 0, 0), model.ErrRowOwned)
	s.ErrorIs(s.service.ClaimRow(b, 7, 0), model.ErrInvalidPosition)
}

func (s *ServiceSuite) TestClaimRowWithoutTracking() {
	b := s.service.NewBoard(false)
	s.NoError(s.service.ClaimRow(b, 0, 1))
	s.Equal(model.NoPlayer, b.Owner(0))
}

func (s *ServiceSuite) TestReleaseEmptyRows() {
	b := s.service.NewBoard(true)
	b.RowOwners[0] = 0
	b.RowOwners[1] = 1
	b.Set(pos(1, 0), 3)

	s.service.ReleaseEmptyRows(b)
	s.Equal(model.NoPlayer, b.Owner(0))
	s.Equal(model.PlayerID(1), b.Owner(1))
}

// Extraction tests

func (s *ServiceSuite) TestExtractWordsOmitsEmptyRows() {
	b := s.service.NewBoard(false)
	tiles := testutil.FillBoard(b, ".........", "CHAT.....", ".........", "ARbRE....")

	words := s.service.ExtractWords(b, tiles)
	s.Require().Len(words, 2)

	s.Equal("CHAT", words[0].Text)
	s.Equal(1, words[0].Row)
	s.Equal(4, words[0].Length)
	s.Equal(0, words[0].Highlighted)
	s.Equal(model.NoPlayer, words[0].Owner)

	s.Equal("ARBRE", words[1].Text)
	s.Equal(1, words[1].Highlighted)
	s.Len(words[1].Tiles, 5)
}

func (s *ServiceSuite) TestExtractWordStopsAtGap() {
	for k := 0; k < 8; k++ {
		b := s.service.NewBoard(false)
		row := []rune("ABCDEFGHI")
		row[k] = '.'
		tiles := testutil.FillBoard(b, string(row))

		w := s.service.ExtractWord(b, tiles, 0)
		s.Equal(k, w.Length, "gap at %d", k)
		s.Equal("ABCDEFGHI"[:k], w.Text)
	}
}

func (s *ServiceSuite) TestExtractWordShowsCurrentFace() {
	b := s.service.NewBoard(false)
	tiles := model.TileSet{
		1: {ID: 1, Faces: [2]model.Face{{Letter: 'A', Color: model.ColorYellow}, {Letter: 'E', Color: model.ColorGreen}}},
	}
	b.Set(pos(0, 0), 1)

	s.Equal("A", s.service.ExtractWord(b, tiles, 0).Text)

	tiles[1].Flip()
	w := s.service.ExtractWord(b, tiles, 0)
	s.Equal("E", w.Text)
	s.Equal(1, w.Highlighted)
}

func (s *ServiceSuite) TestExtractWordOutOfRangeIsEmpty() {
	b := s.service.NewBoard(false)
	w := s.service.ExtractWord(b, model.TileSet{}, 40)
	s.Zero(w.Length)
	s.Empty(w.Text)
}

func (s *ServiceSuite) TestExtractWordsWithOwner() {
	b := s.service.NewBoard(true)
	tiles := testutil.FillBoard(b, "MER......", "SEL......")
	b.RowOwners[0] = 0
	b.RowOwners[1] = 1

	words := s.service.ExtractWordsWithOwner(b, tiles)
	s.Require().Len(words, 2)
	s.Equal(model.PlayerID(0), words[0].Owner)
	s.Equal(0, words[0].Row)
	s.Equal(model.PlayerID(1), words[1].Owner)
	s.Equal(1, words[1].Row)
}
