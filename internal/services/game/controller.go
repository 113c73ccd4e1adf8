package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mcoot/trampoline/internal/dependencies/clock"
	"github.com/mcoot/trampoline/internal/dependencies/random"
	"github.com/mcoot/trampoline/internal/model"
	"github.com/mcoot/trampoline/internal/services/board"
	"github.com/mcoot/trampoline/internal/services/ownership"
	"github.com/mcoot/trampoline/internal/services/scoring"
	"github.com/mcoot/trampoline/internal/services/tiles"
	"github.com/mcoot/trampoline/internal/services/turn"
	"github.com/mcoot/trampoline/internal/storage"
)

// Publisher receives game events after the change that produced them is saved
type Publisher interface {
	Publish(ctx context.Context, event model.Event)
}

type nopPublisher struct{}

// Readiness reports a terminal failure of a dependency new games rely on
type Readiness interface {
	Err() error
}

func (nopPublisher) Publish(context.Context, model.Event) {}

// Controller manages game sessions: placement input, evaluation and turn flow.
// Mutations of one game are serialized.
type Controller struct {
	storage   storage.Storage
	board     *board.Service
	scoring   *scoring.Service
	ownership *ownership.Service
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger
	publisher Publisher
	ready     Readiness
	cfg       Config

	locksMu sync.Mutex
	locks   map[model.GameID]*sync.Mutex
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	boardService *board.Service,
	scoringService *scoring.Service,
	ownershipService *ownership.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
	cfg Config,
) *Controller {
	return &Controller{
		storage:   storage,
		board:     boardService,
		scoring:   scoringService,
		ownership: ownershipService,
		clock:     clock,
		random:    random,
		logger:    logger.With(slog.String("component", "game")),
		publisher: nopPublisher{},
		cfg:       cfg,
		locks:     make(map[model.GameID]*sync.Mutex),
	}
}

// SetPublisher sets where game events are sent
func (c *Controller) SetPublisher(p Publisher) {
	if p == nil {
		p = nopPublisher{}
	}
	c.publisher = p
}

// SetDictionary makes game creation fail once the dictionary has failed to load
func (c *Controller) SetDictionary(r Readiness) {
	c.ready = r
}

func (c *Controller) lock(id model.GameID) func() {
	c.locksMu.Lock()
	mu, ok := c.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		c.locks[id] = mu
	}
	c.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// forget drops a game's lock. Callers hold that lock, and the game must be
// gone from storage so nothing can mutate it again.
func (c *Controller) forget(id model.GameID) {
	c.locksMu.Lock()
	delete(c.locks, id)
	c.locksMu.Unlock()
}

// CreateGame sets up a new game. Solo games take exactly one player;
// multiplayer games take between two and four.
func (c *Controller) CreateGame(ctx context.Context, mode model.GameMode, names []string) (*model.Game, error) {
	if c.ready != nil {
		if err := c.ready.Err(); err != nil {
			return nil, err
		}
	}

	switch mode {
	case model.GameModeSolo:
		if len(names) == 0 {
			names = []string{"Player 1"}
		}
		if len(names) != 1 {
			return nil, model.ErrInvalidPlayerCount
		}
	case model.GameModeMultiplayer:
		if len(names) < turn.MinPlayers || len(names) > turn.MaxPlayers {
			return nil, model.ErrInvalidPlayerCount
		}
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidMode, mode)
	}

	now := c.clock.Now()
	tileSet := tiles.Catalog()
	game := &model.Game{
		ID:           model.GameID(c.random.UUID()),
		Mode:         mode,
		State:        model.GameStatePlaying,
		Players:      make([]model.Player, len(names)),
		PlayerStates: make([]model.PlayerState, len(names)),
		Board:        c.board.NewBoard(mode == model.GameModeMultiplayer),
		Tiles:        tileSet,
		Pool:         tiles.NewPool(tiles.IDs(tileSet), c.random),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for i, name := range names {
		id := model.PlayerID(i)
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		game.Players[i] = model.Player{ID: id, DisplayName: name, Color: model.PlayerColors[i%len(model.PlayerColors)]}
		game.PlayerStates[i] = model.PlayerState{ID: id}
	}

	if game.IsMultiplayer() {
		state, err := turn.NewState(len(names))
		if err != nil {
			return nil, err
		}
		game.Turn = state
	}

	s := c.newSession(ctx, game)
	s.emit(model.EventGameCreated, model.NoPlayer, nil)
	if s.turns != nil {
		s.turns.Start()
	} else {
		s.dist.Draw(0, tiles.Size)
	}

	if err := s.evaluate(); err != nil {
		return nil, err
	}
	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("mode", string(mode)),
		slog.Int("player_count", len(names)),
	)
	c.publish(ctx, s.events)
	return game, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// ListGames returns the IDs of stored games
func (c *Controller) ListGames(ctx context.Context) ([]model.GameID, error) {
	return c.storage.ListGames(ctx)
}

// DeleteGame discards a game
func (c *Controller) DeleteGame(ctx context.Context, gameID model.GameID) error {
	unlock := c.lock(gameID)
	defer unlock()

	if _, err := c.storage.GetGame(ctx, gameID); err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			c.forget(gameID)
		}
		return err
	}
	if err := c.storage.DeleteGame(ctx, gameID); err != nil {
		return err
	}
	c.forget(gameID)
	return nil
}

// mutate loads a game, applies fn, re-evaluates, saves, and publishes.
// Nothing is saved when fn or the evaluation fails.
func (c *Controller) mutate(ctx context.Context, gameID model.GameID, fn func(s *session) error) (*model.Game, error) {
	unlock := c.lock(gameID)
	defer unlock()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			c.forget(gameID)
		}
		return nil, err
	}
	if game.IsComplete() {
		return nil, model.ErrGameComplete
	}

	s := c.newSession(ctx, game)
	if err := fn(s); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	if err := s.evaluate(); err != nil {
		c.logger.Error("evaluation failed",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	game.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}
	if s.completed {
		if err := c.storage.SaveGameSummary(ctx, s.summary()); err != nil {
			c.logger.Error("failed to save game summary",
				slog.String("game_id", string(gameID)),
				slog.String("error", err.Error()),
			)
			return nil, err
		}
	}

	c.publish(ctx, s.events)
	return game, nil
}

func (c *Controller) publish(ctx context.Context, events []model.Event) {
	for _, e := range events {
		c.publisher.Publish(ctx, e)
	}
}

// PlaceTile moves a tile from the player's hand onto an empty cell.
// In multiplayer the row must be unowned or already the player's.
func (c *Controller) PlaceTile(ctx context.Context, gameID model.GameID, player model.PlayerID, tile model.TileID, pos model.Position) (*model.Game, error) {
	return c.mutate(ctx, gameID, func(s *session) error {
		if err := s.requirePlayer(player); err != nil {
			return err
		}
		if s.game.Tiles.Get(tile) == nil {
			return model.ErrTileNotFound
		}
		if !s.dist.InHand(player, tile) {
			return model.ErrTileNotInHand
		}

		b := s.game.Board
		if err := c.board.ValidatePlacement(b, pos); err != nil {
			return err
		}
		if err := c.board.ClaimRow(b, pos.Row, player); err != nil {
			return err
		}
		if err := c.board.Place(b, pos, tile); err != nil {
			return err
		}
		if err := s.dist.Take(player, tile); err != nil {
			return err
		}

		s.emit(model.EventTilePlaced, player, model.TileMovedPayload{
			Tile:     tile,
			Position: pos,
			Letter:   s.game.Tiles.Get(tile).Letter(),
		})
		return nil
	})
}

// RemoveTile lifts an unfrozen tile off the board back into the player's hand
func (c *Controller) RemoveTile(ctx context.Context, gameID model.GameID, player model.PlayerID, pos model.Position) (*model.Game, error) {
	return c.mutate(ctx, gameID, func(s *session) error {
		if err := s.requirePlayer(player); err != nil {
			return err
		}

		g := s.game
		if !g.Board.IsValidPosition(pos) {
			return model.ErrInvalidPosition
		}
		id := g.Board.Get(pos)
		if id == model.NoTile {
			return model.ErrCellEmpty
		}
		frozen := g.Tiles.Get(id).IsFrozen()
		if g.IsMultiplayer() && pos.Row < len(g.Ledger) {
			frozen = frozen || !c.ownership.CanRemove(&g.Ledger[pos.Row], id)
		}
		if frozen {
			return model.ErrTileFrozen
		}
		if g.IsMultiplayer() && g.Board.Owner(pos.Row) != player {
			return model.ErrRowOwned
		}

		if g.IsMultiplayer() && pos.Row < len(g.Ledger) {
			if err := c.ownership.RemoveTile(&g.Ledger[pos.Row], id, g.Tiles); err != nil {
				return err
			}
		}
		if _, err := c.board.Remove(g.Board, pos); err != nil {
			return err
		}
		s.dist.Give(player, id)

		s.emit(model.EventTileRemoved, player, model.TileMovedPayload{
			Tile:     id,
			Position: pos,
			Letter:   g.Tiles.Get(id).Letter(),
		})
		return nil
	})
}

// FlipTile turns a tile over. The tile must be in the player's hand or on the
// board in a row the player may edit, and must not be frozen.
func (c *Controller) FlipTile(ctx context.Context, gameID model.GameID, player model.PlayerID, tile model.TileID) (*model.Game, error) {
	return c.mutate(ctx, gameID, func(s *session) error {
		if err := s.requirePlayer(player); err != nil {
			return err
		}

		g := s.game
		t := g.Tiles.Get(tile)
		if t == nil {
			return model.ErrTileNotFound
		}
		if t.IsFrozen() {
			return model.ErrTileFrozen
		}
		if !s.dist.InHand(player, tile) {
			pos, onBoard := g.Board.Find(tile)
			if !onBoard {
				return model.ErrTileNotInHand
			}
			if g.IsMultiplayer() && g.Board.Owner(pos.Row) != player {
				return model.ErrRowOwned
			}
		}

		t.Flip()
		s.emit(model.EventTileFlipped, player, model.TileFlippedPayload{
			Tile:        tile,
			Side:        t.Side,
			Letter:      t.Letter(),
			Highlighted: t.IsHighlighted(),
		})
		return nil
	})
}

// EndTurn closes the active player's turn and deals to the next player
func (c *Controller) EndTurn(ctx context.Context, gameID model.GameID, player model.PlayerID) (*model.Game, error) {
	return c.mutate(ctx, gameID, func(s *session) error {
		if s.turns == nil {
			return fmt.Errorf("%w: solo games have no turns", model.ErrInvalidMode)
		}
		if err := s.requirePlayer(player); err != nil {
			return err
		}
		s.turns.EndCurrentTurn()
		return s.err
	})
}

// ForceTurn hands the turn straight to a player who has not finished
func (c *Controller) ForceTurn(ctx context.Context, gameID model.GameID, player model.PlayerID) (*model.Game, error) {
	return c.mutate(ctx, gameID, func(s *session) error {
		if s.turns == nil {
			return fmt.Errorf("%w: solo games have no turns", model.ErrInvalidMode)
		}
		if err := s.turns.ForcePlayerTurn(player); err != nil {
			return err
		}
		return s.err
	})
}

// PlayerReport is a player's standing plus their position-score ledger totals
type PlayerReport struct {
	model.PlayerState
	DisplayName string
	Positions   ownership.Totals
	Words       []model.ScoredWord
}

// ScoreReport is the scoring view of a game
type ScoreReport struct {
	GameID     model.GameID
	State      model.GameState
	Total      int
	ValidWords []model.ScoredWord
	Players    []PlayerReport
	Current    model.PlayerID // NoPlayer in solo games
	Winner     model.PlayerID // NoPlayer until complete or on a tie
}

// Scores reports the current scores of a game
func (c *Controller) Scores(ctx context.Context, gameID model.GameID) (*ScoreReport, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	report := &ScoreReport{
		GameID:     game.ID,
		State:      game.State,
		Total:      game.Score.Total,
		ValidWords: game.Score.ValidWords,
		Current:    model.NoPlayer,
		Winner:     model.NoPlayer,
	}
	if game.IsMultiplayer() {
		report.Current = game.Turn.Current
	}
	if game.IsComplete() {
		report.Winner = scoring.DetermineWinner(game.PlayerStates)
	}

	for _, ps := range game.PlayerStates {
		pr := PlayerReport{
			PlayerState: ps,
			DisplayName: game.Players[ps.ID].DisplayName,
		}
		if game.IsMultiplayer() {
			pr.Words = scoring.PlayerWords(game.Score, ps.ID)
			pr.Positions = c.ownership.PlayerTotals(game.Ledger, ps.ID, pr.Words)
		} else {
			pr.Words = game.Score.ValidWords
		}
		report.Players = append(report.Players, pr)
	}
	return report, nil
}

// GetSummary retrieves the record of a completed game
func (c *Controller) GetSummary(ctx context.Context, gameID model.GameID) (*model.GameSummary, error) {
	return c.storage.GetGameSummary(ctx, gameID)
}

// ListSummaries returns the most recently completed games first
func (c *Controller) ListSummaries(ctx context.Context, limit int) ([]*model.GameSummary, error) {
	return c.storage.ListGameSummaries(ctx, limit)
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, mode model.GameMode, names []string) (*model.Game, error)
	GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	ListGames(ctx context.Context) ([]model.GameID, error)
	DeleteGame(ctx context.Context, gameID model.GameID) error
	PlaceTile(ctx context.Context, gameID model.GameID, player model.PlayerID, tile model.TileID, pos model.Position) (*model.Game, error)
	RemoveTile(ctx context.Context, gameID model.GameID, player model.PlayerID, pos model.Position) (*model.Game, error)
	FlipTile(ctx context.Context, gameID model.GameID, player model.PlayerID, tile model.TileID) (*model.Game, error)
	EndTurn(ctx context.Context, gameID model.GameID, player model.PlayerID) (*model.Game, error)
	ForceTurn(ctx context.Context, gameID model.GameID, player model.PlayerID) (*model.Game, error)
	Scores(ctx context.Context, gameID model.GameID) (*ScoreReport, error)
	GetSummary(ctx context.Context, gameID model.GameID) (*model.GameSummary, error)
	ListSummaries(ctx context.Context, limit int) ([]*model.GameSummary, error)
}

var _ ControllerInterface = (*Controller)(nil)
