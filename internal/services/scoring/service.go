package scoring

import (
	"github.com/mcoot/trampoline/internal/model"
)

// HighlightPenalty is subtracted per letter shown on its highlight face
const HighlightPenalty = 5

// WordValidator reports dictionary membership
type WordValidator interface {
	IsValidWord(word string) bool
}

// WordExtractor reads the words currently laid out on a board
type WordExtractor interface {
	ExtractWordsWithOwner(b *model.Board, tiles model.TileSet) []model.Word
}

// Service scores boards from their full current content
type Service struct {
	dictionary WordValidator
	board      WordExtractor
}

// New creates a new ScoringService
func New(dictionary WordValidator, board WordExtractor) *Service {
	return &Service{
		dictionary: dictionary,
		board:      board,
	}
}

// WordScore is the triangular number of the length minus the highlight penalty.
// The result may be negative.
func WordScore(length, highlighted int) int {
	return length*(length+1)/2 - HighlightPenalty*highlighted
}

// ValidWords filters words down to those in the dictionary
func (s *Service) ValidWords(words []model.Word) []model.Word {
	var valid []model.Word
	for _, w := range words {
		if w.Length > 0 && s.dictionary.IsValidWord(w.Text) {
			valid = append(valid, w)
		}
	}
	return valid
}

// Score sums the contribution of every valid word
func (s *Service) Score(words []model.Word) int {
	total := 0
	for _, w := range s.ValidWords(words) {
		total += WordScore(w.Length, w.Highlighted)
	}
	return total
}

// ScoreBoard evaluates the whole board from scratch
func (s *Service) ScoreBoard(b *model.Board, tiles model.TileSet) model.BoardScore {
	words := s.board.ExtractWordsWithOwner(b, tiles)
	result := model.BoardScore{Words: words}
	for _, w := range s.ValidWords(words) {
		scored := model.ScoredWord{Word: w, Score: WordScore(w.Length, w.Highlighted)}
		result.ValidWords = append(result.ValidWords, scored)
		result.Total += scored.Score
	}
	return result
}

// IsComplete reports whether a valid word fills its whole row
func IsComplete(w model.ScoredWord, cols int) bool {
	return w.Length == cols
}

// CompleteWordCount counts valid words spanning the full row width
func CompleteWordCount(score model.BoardScore, cols int) int {
	count := 0
	for _, w := range score.ValidWords {
		if IsComplete(w, cols) {
			count++
		}
	}
	return count
}

// PlayerScores totals valid word scores by row owner. Unowned rows count for nobody.
func PlayerScores(score model.BoardScore, players int) []int {
	totals := make([]int, players)
	for _, w := range score.ValidWords {
		if w.Owner >= 0 && int(w.Owner) < players {
			totals[w.Owner] += w.Score
		}
	}
	return totals
}

// PlayerCompleteWordCounts counts complete words by row owner
func PlayerCompleteWordCounts(score model.BoardScore, players, cols int) []int {
	counts := make([]int, players)
	for _, w := range score.ValidWords {
		if IsComplete(w, cols) && w.Owner >= 0 && int(w.Owner) < players {
			counts[w.Owner]++
		}
	}
	return counts
}

// PlayerWords returns the valid words in rows owned by a player
func PlayerWords(score model.BoardScore, player model.PlayerID) []model.ScoredWord {
	var words []model.ScoredWord
	for _, w := range score.ValidWords {
		if w.Owner == player {
			words = append(words, w)
		}
	}
	return words
}

// DetermineWinner returns the highest scoring player, or NoPlayer on a tie
func DetermineWinner(states []model.PlayerState) model.PlayerID {
	if len(states) == 0 {
		return model.NoPlayer
	}

	winner := states[0]
	tie := false
	for _, st := range states[1:] {
		switch {
		case st.Score > winner.Score:
			winner = st
			tie = false
		case st.Score == winner.Score:
			tie = true
		}
	}

	if tie {
		return model.NoPlayer
	}
	return winner.ID
}

// Interface for dependency injection
type ServiceInterface interface {
	ValidWords(words []model.Word) []model.Word
	Score(words []model.Word) int
	ScoreBoard(b *model.Board, tiles model.TileSet) model.BoardScore
}

var _ ServiceInterface = (*Service)(nil)
