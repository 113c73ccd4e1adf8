package game

import (
	"context"
	"log/slog"

	"github.com/mcoot/trampoline/internal/model"
	"github.com/mcoot/trampoline/internal/services/scoring"
	"github.com/mcoot/trampoline/internal/services/tiles"
	"github.com/mcoot/trampoline/internal/services/turn"
)

// session is one mutation of one game. It owns the loaded game until it is saved
// and collects the events to publish once the save succeeds.
type session struct {
	c      *Controller
	ctx    context.Context
	game   *model.Game
	dist   *tiles.Distributor
	turns  *turn.Manager // nil in solo games
	events []model.Event
	logger *slog.Logger

	completed bool
	err       error // first failure raised inside a turn notification
}

func (c *Controller) newSession(ctx context.Context, game *model.Game) *session {
	s := &session{
		c:      c,
		ctx:    ctx,
		game:   game,
		dist:   tiles.NewDistributor(&game.Pool),
		logger: c.logger.With(slog.String("game_id", string(game.ID))),
	}
	if game.IsMultiplayer() {
		s.turns = turn.NewManager(&game.Turn, c.logger)
		s.turns.OnTurnChanged(s.onTurnChanged)
		s.turns.OnGameCompleted(s.onGameCompleted)
	}
	return s
}

func (s *session) emit(eventType model.EventType, player model.PlayerID, payload any) {
	s.events = append(s.events, model.Event{
		Type:      eventType,
		Timestamp: s.c.clock.Now(),
		GameID:    s.game.ID,
		PlayerID:  player,
		Payload:   payload,
	})
}

func (s *session) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// requirePlayer checks that a player may act right now
func (s *session) requirePlayer(player model.PlayerID) error {
	if !s.game.IsValidPlayer(player) {
		return model.ErrPlayerNotFound
	}
	if s.turns == nil {
		return nil
	}
	if s.turns.IsFinished(player) {
		return model.ErrPlayerFinished
	}
	if s.turns.Current() != player {
		return model.ErrNotPlayerTurn
	}
	return nil
}

// onTurnChanged banks the previous turn and deals to the new player. The turn
// may come back to the same player when everyone else has finished.
func (s *session) onTurnChanged(previous, current model.PlayerID) {
	if previous != model.NoPlayer {
		if err := s.closeTurn(previous); err != nil {
			s.fail(err)
			return
		}
	}

	if len(s.dist.Hand(current)) == 0 && !s.dist.CanDraw(s.c.cfg.HandSize) {
		s.logger.Warn("tile pool cannot fill a hand",
			slog.Int("player_id", int(current)),
			slog.Int("pool_remaining", s.dist.Available()),
		)
	}
	hand := s.dist.Draw(current, s.c.cfg.HandSize)
	s.logger.Info("turn changed",
		slog.Int("previous_player", int(previous)),
		slog.Int("current_player", int(current)),
		slog.Int("hand_size", len(hand)),
		slog.Int("pool_remaining", s.dist.Available()),
	)
	s.emit(model.EventTurnChanged, current, model.TurnChangedPayload{
		PreviousPlayer: previous,
		CurrentPlayer:  current,
	})
}

func (s *session) onGameCompleted() {
	if err := s.closeTurn(s.turns.Current()); err != nil {
		s.fail(err)
		return
	}
	s.complete()
}

// closeTurn banks everything the player put down this turn:
// new tiles get position scores, their valid words freeze, and the unplaced
// hand goes back to the pool.
func (s *session) closeTurn(player model.PlayerID) error {
	g := s.game
	own := s.c.ownership

	for row := 0; row < g.Board.Rows() && row < len(g.Ledger); row++ {
		if err := own.AssignPositionScores(&g.Ledger[row], g.Board.RowTiles(row), player, g.Tiles); err != nil {
			return err
		}
	}

	score := s.c.scoring.ScoreBoard(g.Board, g.Tiles)
	for _, w := range scoring.PlayerWords(score, player) {
		if allFrozen(w.Tiles, g.Tiles) || w.Row >= len(g.Ledger) {
			continue
		}
		wordID, err := own.FreezeWord(&g.Ledger[w.Row], w.Tiles, g.Tiles)
		if err != nil {
			return err
		}
		s.logger.Debug("word frozen",
			slog.String("word", w.Text),
			slog.Int("row", w.Row),
			slog.Int("word_id", wordID),
			slog.Int("player_id", int(player)),
		)
	}

	returned := s.dist.Return(player)
	s.logger.Debug("turn closed",
		slog.Int("player_id", int(player)),
		slog.Int("returned_tiles", returned),
	)
	return nil
}

func allFrozen(ids []model.TileID, set model.TileSet) bool {
	for _, id := range ids {
		if t := set.Get(id); t == nil || !t.IsFrozen() {
			return false
		}
	}
	return true
}

// evaluate re-derives everything that depends on board content.
// It runs once after every mutation.
func (s *session) evaluate() error {
	g := s.game
	c := s.c

	if err := c.board.Resize(g.Board); err != nil {
		return err
	}
	if g.IsMultiplayer() {
		c.board.ReleaseEmptyRows(g.Board)
		ledger, err := c.ownership.ResizeRows(g.Ledger, g.Board.Rows())
		if err != nil {
			return err
		}
		g.Ledger = ledger
	}

	g.Score = c.scoring.ScoreBoard(g.Board, g.Tiles)
	cols := g.Board.Cols
	if g.IsMultiplayer() {
		scores := scoring.PlayerScores(g.Score, len(g.Players))
		complete := scoring.PlayerCompleteWordCounts(g.Score, len(g.Players), cols)
		for i := range g.PlayerStates {
			g.PlayerStates[i].Score = scores[i]
			g.PlayerStates[i].CompleteWords = complete[i]
		}
	} else {
		g.PlayerStates[0].Score = g.Score.Total
		g.PlayerStates[0].CompleteWords = scoring.CompleteWordCount(g.Score, cols)
	}
	s.emit(model.EventScoresUpdated, model.NoPlayer, model.ScoresUpdatedPayload{
		Total:  g.Score.Total,
		Scores: append([]model.PlayerState(nil), g.PlayerStates...),
	})

	for i := range g.PlayerStates {
		ps := &g.PlayerStates[i]
		if ps.Finished || ps.CompleteWords < c.cfg.CompleteWordThreshold {
			continue
		}
		ps.Finished = true
		s.logger.Info("player finished",
			slog.Int("player_id", int(ps.ID)),
			slog.Int("complete_words", ps.CompleteWords),
		)
		s.emit(model.EventPlayerFinished, ps.ID, nil)

		if s.turns == nil {
			s.complete()
			continue
		}
		if err := s.turns.SetPlayerFinished(ps.ID, true); err != nil {
			return err
		}
	}
	return s.err
}

func (s *session) complete() {
	if s.completed {
		return
	}
	s.completed = true
	s.game.State = model.GameStateComplete
	winner := scoring.DetermineWinner(s.game.PlayerStates)

	s.logger.Info("game completed",
		slog.String("mode", string(s.game.Mode)),
		slog.Int("winner", int(winner)),
	)
	s.emit(model.EventGameCompleted, winner, model.GameCompletedPayload{
		Scores: append([]model.PlayerState(nil), s.game.PlayerStates...),
		Winner: winner,
	})
}

// summary builds the stored record of a completed game
func (s *session) summary() *model.GameSummary {
	g := s.game
	summary := &model.GameSummary{
		ID:            g.ID,
		Mode:          g.Mode,
		Players:       append([]model.Player(nil), g.Players...),
		FinalScores:   make(map[model.PlayerID]int, len(g.PlayerStates)),
		CompleteWords: make(map[model.PlayerID]int, len(g.PlayerStates)),
		Winner:        scoring.DetermineWinner(g.PlayerStates),
		CompletedAt:   s.c.clock.Now(),
	}
	for _, ps := range g.PlayerStates {
		summary.FinalScores[ps.ID] = ps.Score
		summary.CompleteWords[ps.ID] = ps.CompleteWords
	}
	return summary
}
