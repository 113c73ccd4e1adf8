package game

// Config holds game rule parameters
type Config struct {
	// CompleteWordThreshold is the number of full-row words that finishes a player
	CompleteWordThreshold int

	// HandSize is the number of tiles dealt at the start of each turn
	HandSize int
}

// DefaultConfig returns the standard rules
func DefaultConfig() Config {
	return Config{
		CompleteWordThreshold: 13,
		HandSize:              9,
	}
}
