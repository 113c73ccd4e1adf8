package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/trampoline/internal/api/response"
)

func intPtr(v int) *int { return &v }

func sampleGame() response.Game {
	cells := make([][]*response.Tile, 2)
	for i := range cells {
		cells[i] = make([]*response.Tile, 9)
	}
	cells[0][0] = &response.Tile{ID: 12, Letter: "M", Frozen: true}
	cells[0][1] = &response.Tile{ID: 30, Letter: "E", Highlighted: true}

	return response.Game{
		ID:    "game-1",
		Mode:  "multiplayer",
		State: "playing",
		Players: []response.Player{
			{ID: 0, DisplayName: "Ana", Score: 3},
			{ID: 1, DisplayName: "Ben"},
		},
		Board: response.Board{
			Cols:      9,
			Rows:      2,
			Cells:     cells,
			RowOwners: []*int{intPtr(0), nil},
		},
		Hands:         map[string][]response.Tile{"1": {{ID: 40, Letter: "R"}}},
		PoolSize:      100,
		CurrentPlayer: intPtr(1),
	}
}

func TestPrintGameText(t *testing.T) {
	var buf bytes.Buffer
	NewOutputTo("text", &buf).Print(sampleGame())

	out := buf.String()
	assert.Contains(t, out, "Game: game-1 (multiplayer)")
	assert.Contains(t, out, "Turn: Ben")
	assert.Contains(t, out, " 0 |[M] e  . ")
	assert.Contains(t, out, "| Ana")
	assert.Contains(t, out, "Hand (Ben, 1 tiles):")
	assert.Contains(t, out, "40:R")
}

func TestPrintAutoPlay(t *testing.T) {
	var buf bytes.Buffer
	NewOutputTo("text", &buf).Print(response.AutoPlay{
		Actions: []response.Action{
			{Type: "place", Player: 0, Tile: intPtr(12), Row: intPtr(0), Col: intPtr(0)},
			{Type: "end_turn", Player: 0},
		},
		Game: sampleGame(),
	})

	out := buf.String()
	assert.Contains(t, out, "Ana: place tile 12 at row 0 col 0")
	assert.Contains(t, out, "Ana: end_turn")
	assert.Contains(t, out, "Game: game-1 (multiplayer)")
}

func TestPrintGameJSON(t *testing.T) {
	var buf bytes.Buffer
	NewOutputTo("json", &buf).Print(sampleGame())

	var decoded response.Game
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "game-1", decoded.ID)
	assert.Equal(t, 1, *decoded.CurrentPlayer)
}

func TestPrintScoresTie(t *testing.T) {
	var buf bytes.Buffer
	NewOutputTo("text", &buf).Print(response.Scores{
		GameID: "game-1",
		State:  "complete",
		Total:  90,
		Players: []response.PlayerScore{
			{Player: response.Player{ID: 0, DisplayName: "Ana", Score: 45, CompleteWords: 1}, Positions: response.Positions{All: 45, Frozen: 45}},
			{Player: response.Player{ID: 1, DisplayName: "Ben", Score: 45, CompleteWords: 1}},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Ana: 45 points, 1 complete")
	assert.Contains(t, out, "Positions: 45 (45 frozen, 0 unfrozen)")
	assert.Contains(t, out, "Result: tie")
}

func TestPrintWordCheck(t *testing.T) {
	tests := []struct {
		check response.WordCheck
		want  string
	}{
		{response.WordCheck{Word: "MER", Normalized: "MER", Valid: true}, "MER: valid\n"},
		{response.WordCheck{Word: "été", Normalized: "ETE", Valid: false}, "été (ETE): not a word\n"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		NewOutputTo("text", &buf).Print(tt.check)
		assert.Equal(t, tt.want, buf.String())
	}
}

func TestParseInts(t *testing.T) {
	n, err := parseInts([]string{"1", "42", "0"}, "player", "tile", "row")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 42, 0}, n)

	_, err = parseInts([]string{"x"}, "player")
	assert.ErrorContains(t, err, "invalid player")
}
