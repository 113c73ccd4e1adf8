package response

import (
	"sort"
	"strconv"
	"time"

	"github.com/mcoot/trampoline/internal/model"
	"github.com/mcoot/trampoline/internal/services/bot"
	"github.com/mcoot/trampoline/internal/services/game"
)

// playerRef returns nil for NoPlayer so absent seats serialize as null
func playerRef(id model.PlayerID) *int {
	if id == model.NoPlayer {
		return nil
	}
	v := int(id)
	return &v
}

// Player represents a seat and its current standing
type Player struct {
	ID            int    `json:"id"`
	DisplayName   string `json:"display_name"`
	Color         string `json:"color,omitempty"`
	Score         int    `json:"score"`
	Finished      bool   `json:"finished"`
	CompleteWords int    `json:"complete_words"`
}

// PlayersFromModel zips seats with their recomputed state
func PlayersFromModel(players []model.Player, states []model.PlayerState) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = Player{
			ID:          int(p.ID),
			DisplayName: p.DisplayName,
			Color:       p.Color,
		}
		if i < len(states) {
			out[i].Score = states[i].Score
			out[i].Finished = states[i].Finished
			out[i].CompleteWords = states[i].CompleteWords
		}
	}
	return out
}

// Tile represents a tile with its shown face
type Tile struct {
	ID            int    `json:"id"`
	Letter        string `json:"letter"`
	Color         string `json:"color"`
	Side          int    `json:"side"`
	Highlighted   bool   `json:"highlighted"`
	Owner         *int   `json:"owner,omitempty"`
	PositionScore int    `json:"position_score,omitempty"`
	Frozen        bool   `json:"frozen,omitempty"`
}

// TileFromModel converts model.Tile
func TileFromModel(t *model.Tile) Tile {
	face := t.Shown()
	resp := Tile{
		ID:          int(t.ID),
		Letter:      string(face.Letter),
		Color:       string(face.Color),
		Side:        int(t.Side),
		Highlighted: t.IsHighlighted(),
	}
	if t.Owner != nil {
		resp.Owner = playerRef(t.Owner.PlayerID)
		resp.PositionScore = t.Owner.PositionScore
		resp.Frozen = t.Owner.Frozen
	}
	return resp
}

// TilesFromIDs resolves a list of tile IDs, skipping unknown ones
func TilesFromIDs(set model.TileSet, ids []model.TileID) []Tile {
	out := make([]Tile, 0, len(ids))
	for _, id := range ids {
		if t := set.Get(id); t != nil {
			out = append(out, TileFromModel(t))
		}
	}
	return out
}

// Board represents the shared board.
// Empty cells are null.
type Board struct {
	Cols      int       `json:"cols"`
	Rows      int       `json:"rows"`
	Cells     [][]*Tile `json:"cells"`
	RowOwners []*int    `json:"row_owners,omitempty"`
}

// BoardFromModel converts model.Board to response Board
func BoardFromModel(b *model.Board, set model.TileSet) Board {
	cells := make([][]*Tile, b.Rows())
	for row := range b.Cells {
		cells[row] = make([]*Tile, b.Cols)
		for col, id := range b.Cells[row] {
			if t := set.Get(id); t != nil {
				resp := TileFromModel(t)
				cells[row][col] = &resp
			}
		}
	}

	var owners []*int
	if b.RowOwners != nil {
		owners = make([]*int, len(b.RowOwners))
		for i, o := range b.RowOwners {
			owners[i] = playerRef(o)
		}
	}

	return Board{
		Cols:      b.Cols,
		Rows:      b.Rows(),
		Cells:     cells,
		RowOwners: owners,
	}
}

// Word represents a scored dictionary word on the board
type Word struct {
	Text        string `json:"text"`
	Row         int    `json:"row"`
	Length      int    `json:"length"`
	Highlighted int    `json:"highlighted"`
	Score       int    `json:"score"`
	Owner       *int   `json:"owner,omitempty"`
}

// WordsFromModel converts scored words
func WordsFromModel(words []model.ScoredWord) []Word {
	out := make([]Word, len(words))
	for i, w := range words {
		out[i] = Word{
			Text:        w.Text,
			Row:         w.Row,
			Length:      w.Length,
			Highlighted: w.Highlighted,
			Score:       w.Score,
			Owner:       playerRef(w.Owner),
		}
	}
	return out
}

// Game represents the full visible state of a game
type Game struct {
	ID            string            `json:"id"`
	Mode          string            `json:"mode"`
	State         string            `json:"state"`
	Players       []Player          `json:"players"`
	Board         Board             `json:"board"`
	Hands         map[string][]Tile `json:"hands"`
	PoolSize      int               `json:"pool_size"`
	CurrentPlayer *int              `json:"current_player"`
	TotalScore    int               `json:"total_score"`
	ValidWords    []Word            `json:"valid_words"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// GameFromModel converts model.Game to response Game
func GameFromModel(g *model.Game) Game {
	hands := make(map[string][]Tile, len(g.Pool.Hands))
	for pid, ids := range g.Pool.Hands {
		hands[strconv.Itoa(int(pid))] = TilesFromIDs(g.Tiles, ids)
	}

	current := model.NoPlayer
	if g.IsMultiplayer() && !g.IsComplete() {
		current = g.Turn.Current
	}

	return Game{
		ID:            string(g.ID),
		Mode:          string(g.Mode),
		State:         string(g.State),
		Players:       PlayersFromModel(g.Players, g.PlayerStates),
		Board:         BoardFromModel(g.Board, g.Tiles),
		Hands:         hands,
		PoolSize:      len(g.Pool.Queue),
		CurrentPlayer: playerRef(current),
		TotalScore:    g.Score.Total,
		ValidWords:    WordsFromModel(g.Score.ValidWords),
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

// GameList is the response for listing games
type GameList struct {
	Games []string `json:"games"`
}

// GameListFromIDs sorts IDs for a stable listing
func GameListFromIDs(ids []model.GameID) GameList {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	sort.Strings(out)
	return GameList{Games: out}
}

// Positions splits a player's position-score total by freeze state
type Positions struct {
	All      int `json:"all"`
	Frozen   int `json:"frozen"`
	Unfrozen int `json:"unfrozen"`
}

// PlayerScore represents one player's line in a score report
type PlayerScore struct {
	Player
	Positions Positions `json:"positions"`
	Words     []Word    `json:"words"`
}

// Scores is the scoring view of a game
type Scores struct {
	GameID        string        `json:"game_id"`
	State         string        `json:"state"`
	Total         int           `json:"total"`
	ValidWords    []Word        `json:"valid_words"`
	Players       []PlayerScore `json:"players"`
	CurrentPlayer *int          `json:"current_player"`
	Winner        *int          `json:"winner"`
}

// ScoresFromReport converts game.ScoreReport
func ScoresFromReport(r *game.ScoreReport) Scores {
	players := make([]PlayerScore, len(r.Players))
	for i, p := range r.Players {
		players[i] = PlayerScore{
			Player: Player{
				ID:            int(p.ID),
				DisplayName:   p.DisplayName,
				Score:         p.Score,
				Finished:      p.Finished,
				CompleteWords: p.CompleteWords,
			},
			Positions: Positions{
				All:      p.Positions.All,
				Frozen:   p.Positions.Frozen,
				Unfrozen: p.Positions.Unfrozen,
			},
			Words: WordsFromModel(p.Words),
		}
	}
	return Scores{
		GameID:        string(r.GameID),
		State:         string(r.State),
		Total:         r.Total,
		ValidWords:    WordsFromModel(r.ValidWords),
		Players:       players,
		CurrentPlayer: playerRef(r.Current),
		Winner:        playerRef(r.Winner),
	}
}

// GameSummary represents a completed game summary
type GameSummary struct {
	ID            string         `json:"id"`
	Mode          string         `json:"mode"`
	Players       []string       `json:"players"`
	FinalScores   map[string]int `json:"final_scores"`
	CompleteWords map[string]int `json:"complete_words"`
	Winner        *int           `json:"winner"`
	CompletedAt   time.Time      `json:"completed_at"`
}

// GameSummaryFromModel converts model.GameSummary.
// Scores are keyed by seat index.
func GameSummaryFromModel(s *model.GameSummary) GameSummary {
	names := make([]string, len(s.Players))
	for i, p := range s.Players {
		names[i] = p.DisplayName
	}
	key := func(id model.PlayerID) string {
		return strconv.Itoa(int(id))
	}

	scores := make(map[string]int, len(s.FinalScores))
	for pid, score := range s.FinalScores {
		scores[key(pid)] = score
	}
	complete := make(map[string]int, len(s.CompleteWords))
	for pid, n := range s.CompleteWords {
		complete[key(pid)] = n
	}

	return GameSummary{
		ID:            string(s.ID),
		Mode:          string(s.Mode),
		Players:       names,
		FinalScores:   scores,
		CompleteWords: complete,
		Winner:        playerRef(s.Winner),
		CompletedAt:   s.CompletedAt,
	}
}

// SummaryList is the response for listing completed games
type SummaryList struct {
	Summaries []GameSummary `json:"summaries"`
}

// DictionaryStatus reports whether the dictionary is ready
type DictionaryStatus struct {
	Loaded    bool   `json:"loaded"`
	WordCount int    `json:"word_count"`
	Error     string `json:"error,omitempty"`
}

// WordCheck is the result of a dictionary lookup
type WordCheck struct {
	Word       string `json:"word"`
	Normalized string `json:"normalized"`
	Valid      bool   `json:"valid"`
}

// Action is one step taken by autoplay
type Action struct {
	Type   string `json:"type"`
	Player int    `json:"player"`
	Tile   *int   `json:"tile,omitempty"`
	Row    *int   `json:"row,omitempty"`
	Col    *int   `json:"col,omitempty"`
}

// AutoPlay is the result of an autoplay run
type AutoPlay struct {
	Actions []Action `json:"actions"`
	Game    Game     `json:"game"`
}

// AutoPlayFromResult converts a bot result to its response form
func AutoPlayFromResult(res *bot.Result) AutoPlay {
	actions := make([]Action, 0, len(res.Actions))
	for _, a := range res.Actions {
		action := Action{Type: string(a.Type), Player: int(a.Player)}
		if a.Type == bot.ActionPlace {
			tile, row, col := int(a.Tile), a.Position.Row, a.Position.Col
			action.Tile, action.Row, action.Col = &tile, &row, &col
		}
		actions = append(actions, action)
	}
	return AutoPlay{Actions: actions, Game: GameFromModel(res.Game)}
}

// Strategies lists the available autoplay strategies
type Strategies struct {
	Strategies []string `json:"strategies"`
	Default    string   `json:"default"`
}

// Health is the health check response
type Health struct {
	Status     string           `json:"status"`
	Dictionary DictionaryStatus `json:"dictionary"`
}
