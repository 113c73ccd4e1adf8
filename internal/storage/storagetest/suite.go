// Package storagetest holds the behaviour every storage backend must share.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/trampoline/internal/model"
	"github.com/mcoot/trampoline/internal/storage"
)

// Suite runs the common storage contract against a backend.
// Embed it and set Storage in SetupTest.
type Suite struct {
	suite.Suite
	Storage storage.Storage
	Ctx     context.Context
}

// SampleGame builds a small multiplayer snapshot with one placed tile
func SampleGame(id model.GameID) *model.Game {
	cfg := model.DefaultBoardConfig()
	cfg.TrackOwnership = true
	board := model.NewBoard(cfg)
	board.Set(model.Position{Row: 0, Col: 0}, 7)
	board.RowOwners[0] = 1

	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &model.Game{
		ID:    id,
		Mode:  model.GameModeMultiplayer,
		State: model.GameStatePlaying,
		Players: []model.Player{
			{ID: 0, DisplayName: "Alice"},
			{ID: 1, DisplayName: "Bob"},
		},
		PlayerStates: []model.PlayerState{{ID: 0}, {ID: 1, Score: 3}},
		Board:        board,
		Tiles: model.TileSet{
			7: {
				ID:    7,
				Faces: [2]model.Face{{Letter: 'A', Color: model.ColorYellow}, {Letter: 'E', Color: model.ColorGreen}},
				Side:  model.SideBack,
				Owner: &model.Ownership{PlayerID: 1, PositionScore: 1},
			},
		},
		Ledger: []model.RowLedger{
			{Entries: []model.LedgerEntry{{Tile: 7, PlayerID: 1, PositionScore: 1}}, NextScore: 2, NextWordID: 1},
			model.NewRowLedger(),
		},
		Turn: model.TurnState{Current: 1, Finished: []bool{false, false}, Started: true},
		Pool: model.PoolState{
			Queue: []model.TileID{3, 4},
			Hands: map[model.PlayerID][]model.TileID{1: {5, 6}},
		},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func (s *Suite) TestSaveAndGetGame() {
	game := SampleGame("game-1")
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))

	got, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(game.Mode, got.Mode)
	s.Equal(game.Players, got.Players)
	s.Equal(model.TileID(7), got.Board.Get(model.Position{Row: 0, Col: 0}))
	s.Equal(model.PlayerID(1), got.Board.Owner(0))
	s.Equal(model.SideBack, got.Tiles.Get(7).Side)
	s.Equal('E', got.Tiles.Get(7).Letter())
	s.Require().NotNil(got.Tiles.Get(7).Owner)
	s.Equal(1, got.Tiles.Get(7).Owner.PositionScore)
	s.Equal(2, got.Ledger[0].NextScore)
	s.Equal([]model.TileID{5, 6}, got.Pool.Hands[1])
	s.Equal(model.PlayerID(1), got.Turn.Current)
	s.True(game.CreatedAt.Equal(got.CreatedAt))
}

func (s *Suite) TestGetGameNotFound() {
	_, err := s.Storage.GetGame(s.Ctx, "missing")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *Suite) TestSavedGameIsIsolatedFromCaller() {
	game := SampleGame("game-1")
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))

	game.Board.Set(model.Position{Row: 1, Col: 0}, 9)
	game.Tiles.Get(7).Flip()

	got, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.Require().NoError(err)
	s.True(got.Board.IsEmpty(model.Position{Row: 1, Col: 0}))
	s.Equal(model.SideBack, got.Tiles.Get(7).Side)
}

func (s *Suite) TestDeleteGame() {
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, SampleGame("game-1")))
	s.Require().NoError(s.Storage.DeleteGame(s.Ctx, "game-1"))

	_, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)

	ids, err := s.Storage.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Empty(ids)
}

func (s *Suite) TestListGames() {
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, SampleGame("game-b")))
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, SampleGame("game-a")))

	ids, err := s.Storage.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]model.GameID{"game-a", "game-b"}, ids)
}

func (s *Suite) TestSummaries() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []model.GameID{"old", "newest", "middle"} {
		offset := []time.Duration{0, 2 * time.Hour, time.Hour}[i]
		summary := &model.GameSummary{
			ID:            id,
			Mode:          model.GameModeMultiplayer,
			Players:       []model.Player{{ID: 0, DisplayName: "Alice"}, {ID: 1, DisplayName: "Bob"}},
			FinalScores:   map[model.PlayerID]int{0: 45, 1: 10},
			CompleteWords: map[model.PlayerID]int{0: 1},
			Winner:        0,
			CompletedAt:   base.Add(offset),
		}
		s.Require().NoError(s.Storage.SaveGameSummary(s.Ctx, summary))
	}

	got, err := s.Storage.GetGameSummary(s.Ctx, "newest")
	s.Require().NoError(err)
	s.Equal(45, got.FinalScores[0])
	s.Equal(model.PlayerID(0), got.Winner)

	list, err := s.Storage.ListGameSummaries(s.Ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(model.GameID("newest"), list[0].ID)
	s.Equal(model.GameID("middle"), list[1].ID)

	all, err := s.Storage.ListGameSummaries(s.Ctx, 0)
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *Suite) TestGetSummaryNotFound() {
	_, err := s.Storage.GetGameSummary(s.Ctx, "missing")
	s.ErrorIs(err, model.ErrSummaryNotFound)
}

func (s *Suite) TestDictionaryNotLoaded() {
	_, err := s.Storage.GetDictionaryWords(s.Ctx)
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}

func (s *Suite) TestSaveAndGetDictionaryWords() {
	s.Require().NoError(s.Storage.SaveDictionaryWords(s.Ctx, []string{"ARBRE", "CAFE"}))
	s.Require().NoError(s.Storage.SaveDictionaryWords(s.Ctx, []string{"CAFE", "ETE"}))

	words, err := s.Storage.GetDictionaryWords(s.Ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"CAFE", "ETE"}, words)
}
