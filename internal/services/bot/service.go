package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mcoot/trampoline/internal/dependencies/random"
	"github.com/mcoot/trampoline/internal/model"
	"github.com/mcoot/trampoline/internal/services/game"
)

const (
	StrategyRandom = "random"
	StrategyGreedy = "greedy"

	DefaultStrategy = StrategyGreedy

	// DefaultMaxMoves is one full hand
	DefaultMaxMoves = 9

	// MaxMoves caps a single autoplay request
	MaxMoves = 117
)

// ActionType names what the bot did
type ActionType string

const (
	ActionPlace   ActionType = "place"
	ActionEndTurn ActionType = "end_turn"
)

// Action records one step taken on behalf of a seat
type Action struct {
	Type     ActionType
	Player   model.PlayerID
	Tile     model.TileID
	Position model.Position
}

// Result is the outcome of an autoplay run
type Result struct {
	Actions []Action
	Game    *model.Game
}

// Service plays turns for a seat through the game controller
type Service struct {
	games      game.ControllerInterface
	strategies map[string]Strategy
	logger     *slog.Logger
}

// NewService creates a new bot Service
func NewService(games game.ControllerInterface, strategies map[string]Strategy, logger *slog.Logger) *Service {
	return &Service{
		games:      games,
		strategies: strategies,
		logger:     logger.With(slog.String("component", "bot")),
	}
}

// DefaultStrategies returns the built-in strategies keyed by name
func DefaultStrategies(rnd random.Random, scorer Scorer) map[string]Strategy {
	return map[string]Strategy{
		StrategyRandom: NewRandomStrategy(rnd),
		StrategyGreedy: NewGreedyStrategy(scorer),
	}
}

// Strategies lists the registered strategy names
func (s *Service) Strategies() []string {
	names := make([]string, 0, len(s.strategies))
	for name := range s.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PlayTurn places up to maxMoves tiles for the player using the named strategy.
// In multiplayer the player's turn is then ended. An empty strategy name
// selects DefaultStrategy and a non-positive maxMoves selects DefaultMaxMoves.
func (s *Service) PlayTurn(ctx context.Context, gameID model.GameID, player model.PlayerID, strategy string, maxMoves int) (*Result, error) {
	if strategy == "" {
		strategy = DefaultStrategy
	}
	strat, ok := s.strategies[strategy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownStrategy, strategy)
	}
	if maxMoves <= 0 {
		maxMoves = DefaultMaxMoves
	}
	maxMoves = min(maxMoves, MaxMoves)

	g, err := s.games.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g.IsComplete() {
		return nil, model.ErrGameComplete
	}
	if !g.IsValidPlayer(player) {
		return nil, model.ErrPlayerNotFound
	}
	// seats off turn hold no hand, so the controller would never see a move
	if g.IsMultiplayer() {
		if int(player) < len(g.Turn.Finished) && g.Turn.Finished[player] {
			return nil, model.ErrPlayerFinished
		}
		if g.Turn.Current != player {
			return nil, model.ErrNotPlayerTurn
		}
	}

	result := &Result{Game: g}
	for i := 0; i < maxMoves && !g.IsComplete(); i++ {
		move, ok := strat.ChooseMove(g, player)
		if !ok {
			break
		}
		g, err = s.games.PlaceTile(ctx, gameID, player, move.Tile, move.Position)
		if err != nil {
			return nil, err
		}
		result.Actions = append(result.Actions, Action{
			Type:     ActionPlace,
			Player:   player,
			Tile:     move.Tile,
			Position: move.Position,
		})
		result.Game = g
	}

	if g.IsMultiplayer() && !g.IsComplete() && g.Turn.Current == player {
		g, err = s.games.EndTurn(ctx, gameID, player)
		if err != nil {
			return nil, err
		}
		result.Actions = append(result.Actions, Action{Type: ActionEndTurn, Player: player})
		result.Game = g
	}

	s.logger.Info("autoplay finished",
		slog.String("game_id", string(gameID)),
		slog.Int("player", int(player)),
		slog.String("strategy", strategy),
		slog.Int("actions", len(result.Actions)))
	return result, nil
}

// ServiceInterface for dependency injection
type ServiceInterface interface {
	PlayTurn(ctx context.Context, gameID model.GameID, player model.PlayerID, strategy string, maxMoves int) (*Result, error)
	Strategies() []string
}

var _ ServiceInterface = (*Service)(nil)
