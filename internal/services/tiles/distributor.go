package tiles

import (
	"slices"

	"github.com/mcoot/trampoline/internal/dependencies/random"
	"github.com/mcoot/trampoline/internal/model"
)

// NewPool builds a shuffled pool over the given tiles with no hands dealt
func NewPool(ids []model.TileID, rnd random.Random) model.PoolState {
	queue := slices.Clone(ids)
	random.Shuffle(rnd, queue)
	return model.PoolState{
		Queue: queue,
		Hands: map[model.PlayerID][]model.TileID{},
	}
}

// Distributor deals tiles from a shared pool into player hands and takes them back.
// A tile is always in exactly one of: the queue, one hand, or the board.
type Distributor struct {
	pool *model.PoolState
}

// NewDistributor wraps a pool owned by the caller
func NewDistributor(pool *model.PoolState) *Distributor {
	if pool.Hands == nil {
		pool.Hands = map[model.PlayerID][]model.TileID{}
	}
	return &Distributor{pool: pool}
}

// Draw fills an empty hand with up to n tiles from the front of the queue.
// A player who still holds tiles gets their current hand back unchanged.
func (d *Distributor) Draw(player model.PlayerID, n int) []model.TileID {
	if hand := d.pool.Hands[player]; len(hand) > 0 {
		return slices.Clone(hand)
	}

	n = min(n, len(d.pool.Queue))
	hand := slices.Clone(d.pool.Queue[:n])
	d.pool.Queue = d.pool.Queue[n:]
	if len(hand) > 0 {
		d.pool.Hands[player] = hand
	}
	return slices.Clone(hand)
}

// Return puts a player's unplaced tiles at the back of the queue
func (d *Distributor) Return(player model.PlayerID) int {
	hand := d.pool.Hands[player]
	d.pool.Queue = append(d.pool.Queue, hand...)
	delete(d.pool.Hands, player)
	return len(hand)
}

// Take removes a tile from a player's hand, typically to place it
func (d *Distributor) Take(player model.PlayerID, tile model.TileID) error {
	hand := d.pool.Hands[player]
	i := slices.Index(hand, tile)
	if i < 0 {
		return model.ErrTileNotInHand
	}
	hand = slices.Delete(hand, i, i+1)
	if len(hand) == 0 {
		delete(d.pool.Hands, player)
	} else {
		d.pool.Hands[player] = hand
	}
	return nil
}

// Give adds a tile to a player's hand, typically after lifting it off the board
func (d *Distributor) Give(player model.PlayerID, tile model.TileID) {
	d.pool.Hands[player] = append(d.pool.Hands[player], tile)
}

// Hand returns a copy of a player's hand
func (d *Distributor) Hand(player model.PlayerID) []model.TileID {
	return slices.Clone(d.pool.Hands[player])
}

// InHand reports whether a player holds a tile
func (d *Distributor) InHand(player model.PlayerID, tile model.TileID) bool {
	return slices.Contains(d.pool.Hands[player], tile)
}

// Available returns the number of tiles left in the queue
func (d *Distributor) Available() int {
	return len(d.pool.Queue)
}

// CanDraw reports whether the queue can fill a hand of n tiles
func (d *Distributor) CanDraw(n int) bool {
	return len(d.pool.Queue) >= n
}
