package ownership

import (
	"fmt"
	"log/slog"

	"github.com/mcoot/trampoline/internal/model"
)

// Service maintains the per-row position-score and freezing ledgers
type Service struct {
	logger *slog.Logger
}

// New creates a new OwnershipService
func New(logger *slog.Logger) *Service {
	return &Service{
		logger: logger.With(slog.String("component", "ownership")),
	}
}

// AssignPositionScores reconciles a row ledger with the tiles present in the row.
// Tracked tiles that left the row are dropped and lose their ownership tag.
// Present tiles without a score get the next sequential score, owned by player.
// A frozen tile missing from the row means the board and ledger have diverged.
func (s *Service) AssignPositionScores(l *model.RowLedger, present []model.TileID, player model.PlayerID, tiles model.TileSet) error {
	here := make(map[model.TileID]bool, len(present))
	for _, id := range present {
		here[id] = true
	}

	for _, e := range l.Entries {
		if e.Frozen && !here[e.Tile] {
			return fmt.Errorf("%w: frozen tile %d missing from its row", model.ErrInvariant, e.Tile)
		}
	}

	kept := l.Entries[:0]
	for _, e := range l.Entries {
		if here[e.Tile] {
			kept = append(kept, e)
			continue
		}
		if t := tiles.Get(e.Tile); t != nil {
			t.Owner = nil
		}
	}
	l.Entries = kept

	for _, id := range present {
		if _, ok := l.Entry(id); ok {
			continue
		}
		entry := model.LedgerEntry{Tile: id, PlayerID: player, PositionScore: l.NextScore}
		l.NextScore++
		l.Entries = append(l.Entries, entry)
		if t := tiles.Get(id); t != nil {
			t.Owner = &model.Ownership{PlayerID: player, PositionScore: entry.PositionScore}
		}
	}
	return nil
}

// FreezeWord locks a group of tracked tiles together under a new word id
func (s *Service) FreezeWord(l *model.RowLedger, word []model.TileID, tiles model.TileSet) (int, error) {
	if len(word) == 0 {
		return 0, nil
	}
	for _, id := range word {
		if _, ok := l.Entry(id); !ok {
			return 0, fmt.Errorf("%w: tile %d", model.ErrTileNotTracked, id)
		}
	}

	wordID := l.NextWordID
	l.NextWordID++
	for _, id := range word {
		e, _ := l.Entry(id)
		e.Frozen = true
		e.WordID = wordID
		if t := tiles.Get(id); t != nil && t.Owner != nil {
			t.Owner.Frozen = true
			t.Owner.FrozenWordID = wordID
		}
	}
	return wordID, nil
}

// CanRemove reports whether a tile may leave its row
func (s *Service) CanRemove(l *model.RowLedger, tile model.TileID) bool {
	e, ok := l.Entry(tile)
	return !ok || !e.Frozen
}

// RemoveTile drops a tile from the ledger. Untracked tiles are a no-op.
func (s *Service) RemoveTile(l *model.RowLedger, tile model.TileID, tiles model.TileSet) error {
	for i, e := range l.Entries {
		if e.Tile != tile {
			continue
		}
		if e.Frozen {
			return model.ErrTileFrozen
		}
		l.Entries = append(l.Entries[:i], l.Entries[i+1:]...)
		if t := tiles.Get(tile); t != nil {
			t.Owner = nil
		}
		return nil
	}
	return nil
}

// PlayerScore sums the position scores owned by a player in one row
func (s *Service) PlayerScore(l *model.RowLedger, player model.PlayerID) int {
	return sumScores(l, player, func(model.LedgerEntry) bool { return true })
}

// PlayerFrozenScore sums only the frozen position scores
func (s *Service) PlayerFrozenScore(l *model.RowLedger, player model.PlayerID) int {
	return sumScores(l, player, func(e model.LedgerEntry) bool { return e.Frozen })
}

// PlayerUnfrozenScore sums only the position scores still in progress
func (s *Service) PlayerUnfrozenScore(l *model.RowLedger, player model.PlayerID) int {
	return sumScores(l, player, func(e model.LedgerEntry) bool { return !e.Frozen })
}

func sumScores(l *model.RowLedger, player model.PlayerID, include func(model.LedgerEntry) bool) int {
	total := 0
	for _, e := range l.Entries {
		if e.PlayerID == player && include(e) {
			total += e.PositionScore
		}
	}
	return total
}

// Totals is a player's position score summed over a whole board
type Totals struct {
	All      int
	Frozen   int
	Unfrozen int
}

// PlayerTotals sums a player's position scores over the rows holding one of
// their valid words. Each row counts once however many words it holds.
func (s *Service) PlayerTotals(ledgers []model.RowLedger, player model.PlayerID, words []model.ScoredWord) Totals {
	var t Totals
	counted := make(map[int]bool, len(words))
	for _, w := range words {
		if w.Owner != player || w.Row < 0 || w.Row >= len(ledgers) || counted[w.Row] {
			continue
		}
		counted[w.Row] = true
		l := &ledgers[w.Row]
		t.All += s.PlayerScore(l, player)
		t.Frozen += s.PlayerFrozenScore(l, player)
		t.Unfrozen += s.PlayerUnfrozenScore(l, player)
	}
	return t
}

// ResizeRows matches the ledger to the board's row count.
// Only rows whose ledger is empty may be dropped.
func (s *Service) ResizeRows(ledgers []model.RowLedger, rows int) ([]model.RowLedger, error) {
	for len(ledgers) < rows {
		ledgers = append(ledgers, model.NewRowLedger())
	}
	for len(ledgers) > rows {
		last := ledgers[len(ledgers)-1]
		if len(last.Entries) > 0 {
			return ledgers, fmt.Errorf("%w: dropping row %d with %d tracked tiles", model.ErrInvariant, len(ledgers)-1, len(last.Entries))
		}
		ledgers = ledgers[:len(ledgers)-1]
	}
	return ledgers, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	AssignPositionScores(l *model.RowLedger, present []model.TileID, player model.PlayerID, tiles model.TileSet) error
	FreezeWord(l *model.RowLedger, word []model.TileID, tiles model.TileSet) (int, error)
	CanRemove(l *model.RowLedger, tile model.TileID) bool
	RemoveTile(l *model.RowLedger, tile model.TileID, tiles model.TileSet) error
	PlayerScore(l *model.RowLedger, player model.PlayerID) int
	PlayerFrozenScore(l *model.RowLedger, player model.PlayerID) int
	PlayerUnfrozenScore(l *model.RowLedger, player model.PlayerID) int
	PlayerTotals(ledgers []model.RowLedger, player model.PlayerID, words []model.ScoredWord) Totals
	ResizeRows(ledgers []model.RowLedger, rows int) ([]model.RowLedger, error)
}

var _ ServiceInterface = (*Service)(nil)
