package factory

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/mcoot/trampoline/internal/dependencies/mocks"
	"github.com/mcoot/trampoline/internal/model"
	"github.com/mcoot/trampoline/internal/services/game"
	"github.com/mcoot/trampoline/internal/services/tiles"
	"github.com/mcoot/trampoline/internal/storage/memory"
	"github.com/mcoot/trampoline/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithConfig(game.DefaultConfig())
}

// NewTestAppWithConfig is NewTestApp with custom gameplay settings
func NewTestAppWithConfig(cfg game.Config) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, model.DefaultBoardConfig(), cfg, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestDictionary loads a small dictionary for testing
func (t *TestApp) LoadTestDictionary() error {
	words := []string{
		// short words
		"ami", "mer", "sel", "sol", "rue", "lit", "nez", "or", "os", "eau",
		"chat", "pain", "vent", "mot", "sac", "toit",
		// mid-length
		"maison", "abricot", "jardin", "orange", "soleil",
		// nine letters, one per complete row
		"croissant", "chocolats", "ordinaire", "terminale", "formation",
	}
	return t.DictionaryService.LoadWords(words)
}

// GiveHand replaces a player's hand with pool tiles whose front letters spell
// letters, returning the tile IDs in order
func (t *TestApp) GiveHand(ctx context.Context, id model.GameID, player model.PlayerID, letters string) ([]model.TileID, error) {
	g, err := t.Storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	tiles.NewDistributor(&g.Pool).Return(player)
	hand := make([]model.TileID, 0, len(letters))
	for _, ch := range letters {
		i := slices.IndexFunc(g.Pool.Queue, func(tile model.TileID) bool {
			return g.Tiles[tile].Faces[model.SideFront].Letter == ch
		})
		if i < 0 {
			return nil, fmt.Errorf("no %c tile left in pool", ch)
		}
		hand = append(hand, g.Pool.Queue[i])
		g.Pool.Queue = slices.Delete(g.Pool.Queue, i, i+1)
	}
	g.Pool.Hands[player] = hand

	if err := t.Storage.SaveGame(ctx, g); err != nil {
		return nil, err
	}
	return hand, nil
}
