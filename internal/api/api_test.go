package api_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/trampoline/internal/api"
	"github.com/mcoot/trampoline/internal/api/apierr"
	"github.com/mcoot/trampoline/internal/api/response"
	"github.com/mcoot/trampoline/internal/factory"
	"github.com/mcoot/trampoline/internal/model"
	"github.com/mcoot/trampoline/internal/services/game"
	"github.com/mcoot/trampoline/internal/testutil"
)

// testServer wraps the router around a test app with mocked randomness
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	return newTestServerWithConfig(t, game.DefaultConfig(), true)
}

func newTestServerWithConfig(t *testing.T, cfg game.Config, loadDictionary bool) *testServer {
	t.Helper()

	app := factory.NewTestAppWithConfig(cfg)
	if loadDictionary {
		require.NoError(t, app.LoadTestDictionary())
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		GameController: app.GameController,
		Dictionary:     app.DictionaryService,
		Bots:           app.BotService,
		HubManager:     app.HubManager,
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	reqBody := bytes.NewBuffer(nil)
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) createGame(t *testing.T, mode string, players ...string) response.Game {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{"mode": mode, "players": players})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decodeGame(t, rr)
}

func (ts *testServer) placeRow(t *testing.T, id string, player, row int, hand []model.TileID) response.Game {
	t.Helper()
	var g response.Game
	for col, tile := range hand {
		rr := ts.request(http.MethodPost, "/api/v1/games/"+id+"/place",
			map[string]int{"player": player, "tile": int(tile), "row": row, "col": col})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		g = decodeGame(t, rr)
	}
	return g
}

func decodeGame(t *testing.T, rr *httptest.ResponseRecorder) response.Game {
	t.Helper()
	var g response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &g))
	return g
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apierr.APIError {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var health response.Health
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.True(t, health.Dictionary.Loaded)
	assert.Positive(t, health.Dictionary.WordCount)
}

func TestHealthCheckWhileLoading(t *testing.T) {
	ts := newTestServerWithConfig(t, game.DefaultConfig(), false)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var health response.Health
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &health))
	assert.Equal(t, "loading", health.Status)
	assert.False(t, health.Dictionary.Loaded)
}

func TestDictionaryFailureIsReported(t *testing.T) {
	ts := newTestServerWithConfig(t, game.DefaultConfig(), false)
	ts.app.DictionaryService.LoadAsync(context.Background(), "\n\n")
	require.ErrorIs(t, ts.app.DictionaryService.WaitLoaded(context.Background()), model.ErrDictionaryFailed)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	var health response.Health
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &health))
	assert.Equal(t, "failed", health.Status)
	assert.NotEmpty(t, health.Dictionary.Error)

	rr = ts.request(http.MethodPost, "/api/v1/games", map[string]any{"mode": "multiplayer", "players": []string{"Ana", "Ben"}})
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, apierr.CodeDictionaryFailed, decodeError(t, rr).Code)

	rr = ts.request(http.MethodGet, "/api/v1/dictionary/mer", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, apierr.CodeDictionaryFailed, decodeError(t, rr).Code)
}

func TestCreateMultiplayerGame(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueUUID("game-1")

	g := ts.createGame(t, "multiplayer", "Ana", "Ben")

	assert.Equal(t, "game-1", g.ID)
	assert.Equal(t, "multiplayer", g.Mode)
	assert.Equal(t, "playing", g.State)
	require.Len(t, g.Players, 2)
	assert.Equal(t, "Ben", g.Players[1].DisplayName)
	require.NotNil(t, g.CurrentPlayer)
	assert.Equal(t, 0, *g.CurrentPlayer)
	assert.Len(t, g.Hands["0"], 9)
	assert.Equal(t, 117-9, g.PoolSize)
	assert.Equal(t, 9, g.Board.Cols)
	assert.Equal(t, 2, g.Board.Rows)
}

func TestCreateSoloGame(t *testing.T) {
	ts := newTestServer(t)

	g := ts.createGame(t, "solo")

	assert.Equal(t, "Player 1", g.Players[0].DisplayName)
	assert.Nil(t, g.CurrentPlayer)
	assert.Len(t, g.Hands["0"], 117)
	assert.Zero(t, g.PoolSize)
}

func TestCreateGameValidation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"unknown mode", map[string]any{"mode": "teams"}, http.StatusBadRequest, apierr.CodeInvalidMode},
		{"one player", map[string]any{"mode": "multiplayer", "players": []string{"Ana"}}, http.StatusBadRequest, apierr.CodeInvalidPlayerCount},
		{"five players", map[string]any{"mode": "multiplayer", "players": []string{"A", "B", "C", "D", "E"}}, http.StatusBadRequest, apierr.CodeInvalidPlayerCount},
		{"bad body", "not an object", http.StatusBadRequest, apierr.CodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/api/v1/games", tt.body)
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.code, decodeError(t, rr).Code)
		})
	}
}

func TestGetGameNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/games/nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeGameNotFound, decodeError(t, rr).Code)
}

func TestListAndDeleteGames(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueUUID("game-b", "game-a")
	ts.createGame(t, "solo")
	ts.createGame(t, "solo")

	rr := ts.request(http.MethodGet, "/api/v1/games", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list response.GameList
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Equal(t, []string{"game-a", "game-b"}, list.Games)

	rr = ts.request(http.MethodDelete, "/api/v1/games/game-a", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/games/game-a", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPlaceCompleteWord(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueUUID("game-1")
	ts.createGame(t, "multiplayer", "Ana", "Ben")

	hand, err := ts.app.GiveHand(context.Background(), "game-1", 0, "CROISSANT")
	require.NoError(t, err)

	g := ts.placeRow(t, "game-1", 0, 0, hand)

	assert.Equal(t, 45, g.TotalScore)
	require.Len(t, g.ValidWords, 1)
	assert.Equal(t, "CROISSANT", g.ValidWords[0].Text)
	require.NotNil(t, g.ValidWords[0].Owner)
	assert.Equal(t, 0, *g.ValidWords[0].Owner)
	assert.Equal(t, 1, g.Players[0].CompleteWords)
	require.NotNil(t, g.Board.RowOwners[0])
	assert.Equal(t, 0, *g.Board.RowOwners[0])
	assert.Nil(t, g.Board.RowOwners[1])
	assert.Equal(t, "C", g.Board.Cells[0][0].Letter)
	assert.Empty(t, g.Hands["0"])
}

func TestPlaceErrors(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueUUID("game-1")
	g := ts.createGame(t, "multiplayer", "Ana", "Ben")
	tile := g.Hands["0"][0].ID

	tests := []struct {
		name   string
		body   map[string]int
		status int
		code   string
	}{
		{"wrong turn", map[string]int{"player": 1, "tile": tile, "row": 0, "col": 0}, http.StatusForbidden, apierr.CodeNotYourTurn},
		{"unknown player", map[string]int{"player": 7, "tile": tile, "row": 0, "col": 0}, http.StatusNotFound, apierr.CodePlayerNotFound},
		{"off board", map[string]int{"player": 0, "tile": tile, "row": 0, "col": 9}, http.StatusBadRequest, apierr.CodeInvalidPosition},
		{"unknown tile", map[string]int{"player": 0, "tile": 999, "row": 0, "col": 0}, http.StatusNotFound, apierr.CodeTileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/api/v1/games/game-1/place", tt.body)
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.code, decodeError(t, rr).Code)
		})
	}
}

func TestRemoveAndFlip(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueUUID("game-1")
	ts.createGame(t, "multiplayer", "Ana", "Ben")

	hand, err := ts.app.GiveHand(context.Background(), "game-1", 0, "MER")
	require.NoError(t, err)
	g := ts.placeRow(t, "game-1", 0, 0, hand)
	assert.Equal(t, 6, g.TotalScore)

	rr := ts.request(http.MethodPost, "/api/v1/games/game-1/remove", map[string]int{"player": 0, "row": 0, "col": 2})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	g = decodeGame(t, rr)
	assert.Zero(t, g.TotalScore)
	assert.Nil(t, g.Board.Cells[0][2])
	assert.Len(t, g.Hands["0"], 1)

	rr = ts.request(http.MethodPost, "/api/v1/games/game-1/remove", map[string]int{"player": 0, "row": 0, "col": 2})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeCellEmpty, decodeError(t, rr).Code)

	rr = ts.request(http.MethodPost, "/api/v1/games/game-1/flip", map[string]int{"player": 0, "tile": int(hand[2])})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	g = decodeGame(t, rr)
	assert.True(t, g.Hands["0"][0].Highlighted)
	assert.Equal(t, 1, g.Hands["0"][0].Side)
}

func TestEndTurnFreezesAndDeals(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueUUID("game-1")
	ts.createGame(t, "multiplayer", "Ana", "Ben")

	hand, err := ts.app.GiveHand(context.Background(), "game-1", 0, "SEL")
	require.NoError(t, err)
	ts.placeRow(t, "game-1", 0, 0, hand)

	rr := ts.request(http.MethodPost, "/api/v1/games/game-1/end-turn", map[string]int{"player": 1})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/games/game-1/end-turn", map[string]int{"player": 0})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	g := decodeGame(t, rr)
	require.NotNil(t, g.CurrentPlayer)
	assert.Equal(t, 1, *g.CurrentPlayer)
	assert.Len(t, g.Hands["1"], 9)
	assert.True(t, g.Board.Cells[0][0].Frozen)
	assert.Equal(t, 1, g.Board.Cells[0][0].PositionScore)

	rr = ts.request(http.MethodPost, "/api/v1/games/game-1/remove", map[string]int{"player": 1, "row": 0, "col": 0})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeTileFrozen, decodeError(t, rr).Code)

	rr = ts.request(http.MethodGet, "/api/v1/games/game-1/scores", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var scores response.Scores
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &scores))
	assert.Equal(t, 6, scores.Total)
	assert.Equal(t, 6, scores.Players[0].Score)
	assert.Equal(t, response.Positions{All: 6, Frozen: 6}, scores.Players[0].Positions)
	assert.Nil(t, scores.Winner)
}

func TestForceTurn(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueUUID("game-1")
	ts.createGame(t, "multiplayer", "Ana", "Ben", "Cy")

	rr := ts.request(http.MethodPost, "/api/v1/games/game-1/force-turn", map[string]int{"player": 2})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	g := decodeGame(t, rr)
	assert.Equal(t, 2, *g.CurrentPlayer)

	rr = ts.request(http.MethodPost, "/api/v1/games/game-1/force-turn", map[string]int{"player": 5})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSoloCompletionWritesSummary(t *testing.T) {
	ts := newTestServerWithConfig(t, game.Config{CompleteWordThreshold: 1, HandSize: 9}, true)
	ts.app.MockRandom.QueueUUID("solo-1")
	ts.createGame(t, "solo", "Zoé")

	hand, err := ts.app.GiveHand(context.Background(), "solo-1", 0, "CROISSANT")
	require.NoError(t, err)
	g := ts.placeRow(t, "solo-1", 0, 0, hand)
	assert.Equal(t, "complete", g.State)

	rr := ts.request(http.MethodPost, "/api/v1/games/solo-1/flip", map[string]int{"player": 0, "tile": int(hand[0])})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeGameComplete, decodeError(t, rr).Code)

	rr = ts.request(http.MethodGet, "/api/v1/summaries", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list response.SummaryList
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list.Summaries, 1)
	assert.Equal(t, "solo-1", list.Summaries[0].ID)
	assert.Equal(t, []string{"Zoé"}, list.Summaries[0].Players)
	assert.Equal(t, 45, list.Summaries[0].FinalScores["0"])
	require.NotNil(t, list.Summaries[0].Winner)
	assert.Equal(t, 0, *list.Summaries[0].Winner)

	rr = ts.request(http.MethodGet, "/api/v1/summaries/solo-1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/summaries/missing", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeSummaryNotFound, decodeError(t, rr).Code)

	rr = ts.request(http.MethodGet, "/api/v1/summaries?limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAutoPlay(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueUUID("game-1")
	ts.createGame(t, "multiplayer", "Ana", "Ben")

	hand, err := ts.app.GiveHand(context.Background(), "game-1", 0, "OR")
	require.NoError(t, err)

	rr := ts.request(http.MethodPost, "/api/v1/games/game-1/autoplay", map[string]any{"player": 0})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var res response.AutoPlay
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Len(t, res.Actions, 3)
	assert.Equal(t, "place", res.Actions[0].Type)
	require.NotNil(t, res.Actions[0].Tile)
	assert.Equal(t, int(hand[0]), *res.Actions[0].Tile)
	assert.Equal(t, "end_turn", res.Actions[2].Type)
	assert.Nil(t, res.Actions[2].Tile)
	assert.Equal(t, 3, res.Game.Players[0].Score)
	require.NotNil(t, res.Game.CurrentPlayer)
	assert.Equal(t, 1, *res.Game.CurrentPlayer)
}

func TestAutoPlayErrors(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueUUID("game-1")
	ts.createGame(t, "multiplayer", "Ana", "Ben")

	tests := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{"unknown strategy", map[string]any{"player": 0, "strategy": "clever"}, http.StatusBadRequest, apierr.CodeUnknownStrategy},
		{"negative moves", map[string]any{"player": 0, "moves": -1}, http.StatusBadRequest, apierr.CodeInvalidRequest},
		{"wrong turn", map[string]any{"player": 1}, http.StatusForbidden, apierr.CodeNotYourTurn},
		{"unknown seat", map[string]any{"player": 7}, http.StatusNotFound, apierr.CodePlayerNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/api/v1/games/game-1/autoplay", tt.body)
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.code, decodeError(t, rr).Code)
		})
	}
}

func TestAutoPlayStrategies(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/autoplay/strategies", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var res response.Strategies
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, []string{"greedy", "random"}, res.Strategies)
	assert.Equal(t, "greedy", res.Default)
}

func TestDictionaryEndpoints(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/dictionary", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var status response.DictionaryStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.True(t, status.Loaded)
	assert.Positive(t, status.WordCount)

	rr = ts.request(http.MethodGet, "/api/v1/dictionary/Croissant", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var check response.WordCheck
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &check))
	assert.Equal(t, "CROISSANT", check.Normalized)
	assert.True(t, check.Valid)

	rr = ts.request(http.MethodGet, "/api/v1/dictionary/zzz", nil)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &check))
	assert.False(t, check.Valid)
}

func TestDictionaryNotLoaded(t *testing.T) {
	ts := newTestServerWithConfig(t, game.DefaultConfig(), false)

	rr := ts.request(http.MethodGet, "/api/v1/dictionary/mer", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, apierr.CodeDictionaryNotLoaded, decodeError(t, rr).Code)
}

func TestEventStream(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueUUID("game-1")
	g := ts.createGame(t, "multiplayer", "Ana", "Ben")

	server := httptest.NewServer(ts.handler)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/games/game-1/events?player=0", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readEvent := func() string {
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if name, ok := strings.CutPrefix(strings.TrimSpace(line), "event: "); ok {
				return name
			}
		}
	}
	require.Equal(t, "connected", readEvent())

	tile := g.Hands["0"][0].ID
	rr := ts.request(http.MethodPost, "/api/v1/games/game-1/place", map[string]int{"player": 0, "tile": tile, "row": 0, "col": 0})
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, "tile-placed", readEvent())
	assert.Equal(t, "scores-updated", readEvent())
}

func TestEventStreamRejectsUnknownSeat(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueUUID("game-1")
	ts.createGame(t, "multiplayer", "Ana", "Ben")

	rr := ts.request(http.MethodGet, "/api/v1/games/game-1/events?player=4", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/games/missing/events", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
