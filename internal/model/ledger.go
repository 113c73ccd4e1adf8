package model

// LedgerEntry tracks one scored tile within a row
type LedgerEntry struct {
	Tile          TileID
	PlayerID      PlayerID
	PositionScore int
	Frozen        bool
	WordID        int
}

// RowLedger is the ownership ledger of a single row.
// Entries are kept in the order their position scores were assigned.
type RowLedger struct {
	Entries    []LedgerEntry
	NextScore  int
	NextWordID int
}

// NewRowLedger creates an empty ledger whose first position score is 1
func NewRowLedger() RowLedger {
	return RowLedger{NextScore: 1, NextWordID: 1}
}

// Entry returns the entry for a tile
func (l *RowLedger) Entry(tile TileID) (*LedgerEntry, bool) {
	for i := range l.Entries {
		if l.Entries[i].Tile == tile {
			return &l.Entries[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy
func (l RowLedger) Clone() RowLedger {
	l.Entries = append([]LedgerEntry(nil), l.Entries...)
	return l
}
