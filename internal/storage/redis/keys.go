package redis

import (
	"fmt"

	"github.com/mcoot/trampoline/internal/model"
)

// keys builds every Redis key under a single prefix
type keys struct {
	prefix string
}

func newKeys(prefix string) keys {
	if prefix == "" {
		prefix = DefaultConfig().KeyPrefix
	}
	return keys{prefix: prefix}
}

// game returns the key holding a game snapshot
func (k keys) game(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", k.prefix, id)
}

// gamesIndex returns the SET of known game IDs
func (k keys) gamesIndex() string {
	return fmt.Sprintf("%s:idx:games", k.prefix)
}

// summary returns the key holding a completed game summary
func (k keys) summary(id model.GameID) string {
	return fmt.Sprintf("%s:summary:%s", k.prefix, id)
}

// summariesIndex returns the ZSET of summary IDs scored by completion time
func (k keys) summariesIndex() string {
	return fmt.Sprintf("%s:idx:summaries", k.prefix)
}

// dictionary returns the key for the normalized dictionary word set
func (k keys) dictionary() string {
	return fmt.Sprintf("%s:dictionary", k.prefix)
}
