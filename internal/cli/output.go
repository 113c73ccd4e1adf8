package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/mcoot/trampoline/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to stdout
func NewOutput(format string) *Output {
	return &Output{format: format, w: os.Stdout}
}

// NewOutputTo creates an Output formatter writing to w
func NewOutputTo(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Game:
		o.printGame(v)
	case response.GameList:
		o.printGameList(v)
	case response.Scores:
		o.printScores(v)
	case response.GameSummary:
		o.printSummary(v)
	case response.SummaryList:
		o.printSummaryList(v)
	case response.DictionaryStatus:
		o.printDictionaryStatus(v)
	case response.WordCheck:
		o.printWordCheck(v)
	case response.AutoPlay:
		o.printAutoPlay(v)
	case response.Health:
		o.printHealth(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// playerName resolves a seat index against a player list
func playerName(players []response.Player, id *int) string {
	if id == nil {
		return "-"
	}
	for _, p := range players {
		if p.ID == *id {
			return p.DisplayName
		}
	}
	return "#" + strconv.Itoa(*id)
}

// tileLabel shows highlighted faces in lowercase
func tileLabel(t response.Tile) string {
	letter := t.Letter
	if t.Highlighted {
		letter = strings.ToLower(letter)
	}
	return letter
}

func (o *Output) printGame(g response.Game) {
	fmt.Fprintf(o.w, "Game: %s (%s)\n", g.ID, g.Mode)
	fmt.Fprintf(o.w, "State: %s\n", g.State)
	if g.CurrentPlayer != nil {
		fmt.Fprintf(o.w, "Turn: %s\n", playerName(g.Players, g.CurrentPlayer))
	}
	fmt.Fprintf(o.w, "Total Score: %d\n", g.TotalScore)
	fmt.Fprintf(o.w, "Pool: %d tiles\n", g.PoolSize)

	fmt.Fprintf(o.w, "Players (%d):\n", len(g.Players))
	for _, p := range g.Players {
		finished := ""
		if p.Finished {
			finished = " [finished]"
		}
		fmt.Fprintf(o.w, "  %d. %s: %d points, %d complete%s\n",
			p.ID, p.DisplayName, p.Score, p.CompleteWords, finished)
	}

	fmt.Fprintln(o.w)
	o.printBoard(g.Board, g.Players)

	if len(g.ValidWords) > 0 {
		fmt.Fprintln(o.w, "\nWords:")
		o.printWords(g.ValidWords)
	}

	seats := make([]string, 0, len(g.Hands))
	for seat := range g.Hands {
		seats = append(seats, seat)
	}
	sort.Strings(seats)
	for _, seat := range seats {
		hand := g.Hands[seat]
		id, _ := strconv.Atoi(seat)
		fmt.Fprintf(o.w, "\nHand (%s, %d tiles):\n ", playerName(g.Players, &id), len(hand))
		for _, t := range hand {
			fmt.Fprintf(o.w, " %d:%s", t.ID, tileLabel(t))
		}
		fmt.Fprintln(o.w)
	}
}

func (o *Output) printBoard(b response.Board, players []response.Player) {
	if len(b.Cells) == 0 {
		return
	}

	// Column headers
	fmt.Fprint(o.w, "    ")
	for col := 0; col < b.Cols; col++ {
		fmt.Fprintf(o.w, " %d ", col)
	}
	fmt.Fprintln(o.w)

	border := "   +" + strings.Repeat("---", b.Cols) + "+"
	fmt.Fprintln(o.w, border)

	for row, cells := range b.Cells {
		fmt.Fprintf(o.w, "%2d |", row)
		for _, cell := range cells {
			switch {
			case cell == nil:
				fmt.Fprint(o.w, " . ")
			case cell.Frozen:
				fmt.Fprintf(o.w, "[%s]", tileLabel(*cell))
			default:
				fmt.Fprintf(o.w, " %s ", tileLabel(*cell))
			}
		}
		fmt.Fprint(o.w, "|")
		if row < len(b.RowOwners) && b.RowOwners[row] != nil {
			fmt.Fprintf(o.w, " %s", playerName(players, b.RowOwners[row]))
		}
		fmt.Fprintln(o.w)
	}

	fmt.Fprintln(o.w, border)
}

func (o *Output) printWords(words []response.Word) {
	for _, w := range words {
		highlighted := ""
		if w.Highlighted > 0 {
			highlighted = fmt.Sprintf(", %d highlighted", w.Highlighted)
		}
		fmt.Fprintf(o.w, "  - %s (row %d, %d pts%s)\n", w.Text, w.Row, w.Score, highlighted)
	}
}

func (o *Output) printGameList(l response.GameList) {
	if len(l.Games) == 0 {
		fmt.Fprintln(o.w, "No games")
		return
	}
	fmt.Fprintf(o.w, "Games (%d):\n", len(l.Games))
	for _, id := range l.Games {
		fmt.Fprintf(o.w, "  - %s\n", id)
	}
}

func (o *Output) printScores(s response.Scores) {
	fmt.Fprintf(o.w, "Game: %s\n", s.GameID)
	fmt.Fprintf(o.w, "State: %s\n", s.State)
	fmt.Fprintf(o.w, "Total: %d\n", s.Total)

	players := make([]response.Player, len(s.Players))
	for i, p := range s.Players {
		players[i] = p.Player
	}
	if s.CurrentPlayer != nil {
		fmt.Fprintf(o.w, "Turn: %s\n", playerName(players, s.CurrentPlayer))
	}

	for _, p := range s.Players {
		fmt.Fprintf(o.w, "\n%s: %d points, %d complete\n", p.DisplayName, p.Score, p.CompleteWords)
		if p.Positions.All > 0 {
			fmt.Fprintf(o.w, "  Positions: %d (%d frozen, %d unfrozen)\n",
				p.Positions.All, p.Positions.Frozen, p.Positions.Unfrozen)
		}
		o.printWords(p.Words)
	}

	if s.State == "complete" {
		if s.Winner != nil {
			fmt.Fprintf(o.w, "\nWinner: %s\n", playerName(players, s.Winner))
		} else {
			fmt.Fprintln(o.w, "\nResult: tie")
		}
	}
}

func (o *Output) printSummary(s response.GameSummary) {
	fmt.Fprintf(o.w, "Game: %s (%s)\n", s.ID, s.Mode)
	fmt.Fprintf(o.w, "Completed: %s\n", s.CompletedAt.Format("2006-01-02 15:04:05"))
	for i, name := range s.Players {
		key := strconv.Itoa(i)
		fmt.Fprintf(o.w, "  %s: %d points, %d complete\n", name, s.FinalScores[key], s.CompleteWords[key])
	}
	if s.Winner != nil && *s.Winner < len(s.Players) {
		fmt.Fprintf(o.w, "Winner: %s\n", s.Players[*s.Winner])
	} else {
		fmt.Fprintln(o.w, "Result: tie")
	}
}

func (o *Output) printSummaryList(l response.SummaryList) {
	if len(l.Summaries) == 0 {
		fmt.Fprintln(o.w, "No completed games")
		return
	}
	for i, s := range l.Summaries {
		if i > 0 {
			fmt.Fprintln(o.w)
		}
		o.printSummary(s)
	}
}

func (o *Output) printDictionaryStatus(s response.DictionaryStatus) {
	if !s.Loaded {
		fmt.Fprintln(o.w, "Dictionary: loading")
		return
	}
	fmt.Fprintf(o.w, "Dictionary: %d words\n", s.WordCount)
}

func (o *Output) printWordCheck(c response.WordCheck) {
	verdict := "not a word"
	if c.Valid {
		verdict = "valid"
	}
	shown := c.Word
	if c.Normalized != c.Word {
		shown = fmt.Sprintf("%s (%s)", c.Word, c.Normalized)
	}
	fmt.Fprintf(o.w, "%s: %s\n", shown, verdict)
}

func (o *Output) printAutoPlay(a response.AutoPlay) {
	for _, action := range a.Actions {
		name := playerName(a.Game.Players, &action.Player)
		if action.Tile == nil {
			fmt.Fprintf(o.w, "%s: %s\n", name, action.Type)
			continue
		}
		fmt.Fprintf(o.w, "%s: %s tile %d at row %d col %d\n", name, action.Type, *action.Tile, *action.Row, *action.Col)
	}
	fmt.Fprintln(o.w)
	o.printGame(a.Game)
}

func (o *Output) printHealth(h response.Health) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	o.printDictionaryStatus(h.Dictionary)
}
