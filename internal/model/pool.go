package model

// PoolState is the shared off-board tile pool and each player's current hand
type PoolState struct {
	Queue []TileID              // draw order, front first
	Hands map[PlayerID][]TileID // tiles dealt but not yet placed
}

// Clone returns a deep copy
func (p PoolState) Clone() PoolState {
	cp := PoolState{
		Queue: append([]TileID(nil), p.Queue...),
		Hands: make(map[PlayerID][]TileID, len(p.Hands)),
	}
	for id, hand := range p.Hands {
		cp.Hands[id] = append([]TileID(nil), hand...)
	}
	return cp
}
