package bot_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/trampoline/internal/factory"
	"github.com/mcoot/trampoline/internal/model"
	"github.com/mcoot/trampoline/internal/services/bot"
)

type ServiceSuite struct {
	suite.Suite
	app *factory.TestApp
	ctx context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.app = factory.NewTestApp()
	s.ctx = context.Background()
	s.Require().NoError(s.app.LoadTestDictionary())
}

func (s *ServiceSuite) createGame(mode model.GameMode, names ...string) *model.Game {
	g, err := s.app.GameController.CreateGame(s.ctx, mode, names)
	s.Require().NoError(err)
	return g
}

func (s *ServiceSuite) TestStrategies() {
	s.Equal([]string{"greedy", "random"}, s.app.BotService.Strategies())
}

func (s *ServiceSuite) TestGreedy_BuildsWordAndEndsTurn() {
	g := s.createGame(model.GameModeMultiplayer, "Ana", "Ben")
	hand, err := s.app.GiveHand(s.ctx, g.ID, 0, "OR")
	s.Require().NoError(err)

	result, err := s.app.BotService.PlayTurn(s.ctx, g.ID, 0, bot.StrategyGreedy, 0)
	s.Require().NoError(err)

	s.Equal([]bot.Action{
		{Type: bot.ActionPlace, Player: 0, Tile: hand[0], Position: model.Position{Row: 0, Col: 0}},
		{Type: bot.ActionPlace, Player: 0, Tile: hand[1], Position: model.Position{Row: 0, Col: 1}},
		{Type: bot.ActionEndTurn, Player: 0},
	}, result.Actions)

	g = result.Game
	s.Equal(3, g.PlayerStates[0].Score)
	s.Equal(model.PlayerID(1), g.Turn.Current)
	s.True(g.Tiles[hand[0]].IsFrozen())
	s.True(g.Tiles[hand[1]].IsFrozen())
}

func (s *ServiceSuite) TestGreedy_PrefersScoringCell() {
	g := s.createGame(model.GameModeMultiplayer, "Ana", "Ben")
	hand, err := s.app.GiveHand(s.ctx, g.ID, 0, "MER")
	s.Require().NoError(err)

	// M then E in row 0, leaving R to complete MER
	_, err = s.app.GameController.PlaceTile(s.ctx, g.ID, 0, hand[0], model.Position{Row: 0, Col: 0})
	s.Require().NoError(err)
	_, err = s.app.GameController.PlaceTile(s.ctx, g.ID, 0, hand[1], model.Position{Row: 0, Col: 1})
	s.Require().NoError(err)

	result, err := s.app.BotService.PlayTurn(s.ctx, g.ID, 0, bot.StrategyGreedy, 1)
	s.Require().NoError(err)
	s.Require().Len(result.Actions, 2)
	s.Equal(model.Position{Row: 0, Col: 2}, result.Actions[0].Position)
	s.Equal(6, result.Game.PlayerStates[0].Score)
}

func (s *ServiceSuite) TestRandom_SoloPlacesWithoutTurns() {
	g := s.createGame(model.GameModeSolo, "Zoé")

	result, err := s.app.BotService.PlayTurn(s.ctx, g.ID, 0, bot.StrategyRandom, 3)
	s.Require().NoError(err)
	s.Len(result.Actions, 3)
	for i, action := range result.Actions {
		s.Equal(bot.ActionPlace, action.Type)
		s.Equal(model.Position{Row: 0, Col: i}, action.Position)
		s.Equal(action.Tile, result.Game.Board.Get(action.Position))
	}
	s.Equal(model.GameStatePlaying, result.Game.State)
}

func (s *ServiceSuite) TestUnknownStrategy() {
	g := s.createGame(model.GameModeSolo, "Zoé")

	_, err := s.app.BotService.PlayTurn(s.ctx, g.ID, 0, "clever", 1)
	s.ErrorIs(err, model.ErrUnknownStrategy)
}

func (s *ServiceSuite) TestNotPlayersTurn() {
	g := s.createGame(model.GameModeMultiplayer, "Ana", "Ben")

	_, err := s.app.BotService.PlayTurn(s.ctx, g.ID, 1, bot.StrategyRandom, 1)
	s.ErrorIs(err, model.ErrNotPlayerTurn)
}

func (s *ServiceSuite) TestUnknownPlayer() {
	g := s.createGame(model.GameModeMultiplayer, "Ana", "Ben")

	_, err := s.app.BotService.PlayTurn(s.ctx, g.ID, 5, bot.StrategyRandom, 1)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestUnknownGame() {
	_, err := s.app.BotService.PlayTurn(s.ctx, "missing", 0, "", 0)
	s.ErrorIs(err, model.ErrGameNotFound)
}
