package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/trampoline/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.Storage = New()
	s.Ctx = context.Background()
}

func (s *StorageSuite) TestGetGameReturnsCopy() {
	store := New()
	s.Require().NoError(store.SaveGame(s.Ctx, storagetest.SampleGame("game-1")))

	first, err := store.GetGame(s.Ctx, "game-1")
	s.Require().NoError(err)
	first.State = "mutated"

	second, err := store.GetGame(s.Ctx, "game-1")
	s.Require().NoError(err)
	s.NotEqual(first.State, second.State)
}
