package model

// TurnState is the persisted state of the turn rotation
type TurnState struct {
	Current  PlayerID
	Finished []bool
	Started  bool
	Complete bool
}

// PlayerCount returns the number of seats in the rotation
func (t *TurnState) PlayerCount() int {
	return len(t.Finished)
}

// Clone returns a deep copy
func (t TurnState) Clone() TurnState {
	t.Finished = append([]bool(nil), t.Finished...)
	return t
}
