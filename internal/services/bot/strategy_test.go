package bot_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/trampoline/internal/dependencies/mocks"
	"github.com/mcoot/trampoline/internal/model"
	"github.com/mcoot/trampoline/internal/services/bot"
)

type StrategySuite struct {
	suite.Suite
	mockRandom *mocks.MockRandom
	strategy   *bot.RandomStrategy
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategySuite))
}

func (s *StrategySuite) SetupTest() {
	s.mockRandom = mocks.NewMockRandom()
	s.strategy = bot.NewRandomStrategy(s.mockRandom)
}

func multiplayerGame() *model.Game {
	cfg := model.DefaultBoardConfig()
	cfg.TrackOwnership = true
	return &model.Game{
		Mode:    model.GameModeMultiplayer,
		Players: []model.Player{{ID: 0}, {ID: 1}},
		Board:   model.NewBoard(cfg),
		Pool: model.PoolState{
			Hands: map[model.PlayerID][]model.TileID{0: {5, 6, 7}, 1: {8}},
		},
	}
}

func (s *StrategySuite) TestCandidates_EmptyBoardOffersFirstRow() {
	g := multiplayerGame()
	s.Equal([]model.Position{{Row: 0, Col: 0}}, bot.Candidates(g, 0))
}

func (s *StrategySuite) TestCandidates_SkipsOtherPlayersRows() {
	g := multiplayerGame()
	g.Board.Set(model.Position{Row: 0, Col: 0}, 5)
	g.Board.RowOwners[0] = 0

	s.Equal([]model.Position{{Row: 0, Col: 1}, {Row: 1, Col: 0}}, bot.Candidates(g, 0))
	s.Equal([]model.Position{{Row: 1, Col: 0}}, bot.Candidates(g, 1))
}

func (s *StrategySuite) TestCandidates_SkipsFullRows() {
	g := multiplayerGame()
	for col := 0; col < g.Board.Cols; col++ {
		g.Board.Set(model.Position{Row: 0, Col: col}, model.TileID(col+1))
	}
	g.Board.RowOwners[0] = 0

	s.Equal([]model.Position{{Row: 1, Col: 0}}, bot.Candidates(g, 0))
}

func (s *StrategySuite) TestCandidates_SoloIgnoresOwnership() {
	g := multiplayerGame()
	g.Mode = model.GameModeSolo
	g.Board.Set(model.Position{Row: 0, Col: 0}, 5)
	g.Board.RowOwners[0] = 1

	s.Equal([]model.Position{{Row: 0, Col: 1}, {Row: 1, Col: 0}}, bot.Candidates(g, 0))
}

func (s *StrategySuite) TestRandom_PicksQueuedTileAndCell() {
	g := multiplayerGame()
	g.Board.Set(model.Position{Row: 0, Col: 0}, 4)
	g.Board.RowOwners[0] = 0

	s.mockRandom.QueueIntn(2, 1)
	move, ok := s.strategy.ChooseMove(g, 0)
	s.Require().True(ok)
	s.Equal(model.TileID(7), move.Tile)
	s.Equal(model.Position{Row: 1, Col: 0}, move.Position)
}

func (s *StrategySuite) TestRandom_NoMoveWithEmptyHand() {
	g := multiplayerGame()
	g.Pool.Hands[0] = nil

	_, ok := s.strategy.ChooseMove(g, 0)
	s.False(ok)
}
