package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/trampoline/internal/dependencies/clock"
	"github.com/mcoot/trampoline/internal/dependencies/random"
	"github.com/mcoot/trampoline/internal/model"
	"github.com/mcoot/trampoline/internal/services/board"
	"github.com/mcoot/trampoline/internal/services/bot"
	"github.com/mcoot/trampoline/internal/services/dictionary"
	"github.com/mcoot/trampoline/internal/services/game"
	"github.com/mcoot/trampoline/internal/services/ownership"
	"github.com/mcoot/trampoline/internal/services/scoring"
	"github.com/mcoot/trampoline/internal/sse"
	"github.com/mcoot/trampoline/internal/storage"
	"github.com/mcoot/trampoline/internal/storage/memory"
	redisstorage "github.com/mcoot/trampoline/internal/storage/redis"
	sqlitestorage "github.com/mcoot/trampoline/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	DictionaryService *dictionary.Service
	BoardService      *board.Service
	ScoringService    *scoring.Service
	OwnershipService  *ownership.Service
	GameController    *game.Controller
	BotService        *bot.Service
	HubManager        *sse.HubManager
	Broadcaster       *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// DictionaryPath is the path to the word list (optional).
	// If empty, the dictionary must be loaded manually.
	DictionaryPath string
	// DictionaryAsync loads the word list in the background; lookups report
	// invalid until it is ready
	DictionaryAsync bool
	// Game holds gameplay settings (optional)
	// If zero value, defaults to game.DefaultConfig()
	Game game.Config
	// Board bounds the board shape (optional)
	// If zero value, defaults to model.DefaultBoardConfig()
	Board model.BoardConfig
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLiteConfig holds database settings (required if StorageType is "sqlite")
	SQLiteConfig *sqlitestorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	gameCfg := cfg.Game
	if gameCfg.CompleteWordThreshold == 0 {
		gameCfg = game.DefaultConfig()
	}
	boardCfg := cfg.Board
	if boardCfg.Cols == 0 {
		boardCfg = model.DefaultBoardConfig()
	}

	app := newWithDependencies(store, clock.New(), random.New(), boardCfg, gameCfg, logger)

	if cfg.DictionaryPath != "" {
		if err := app.loadDictionary(cfg.DictionaryPath, cfg.DictionaryAsync, logger); err != nil {
			_ = app.Close()
			return nil, err
		}
	}

	return app, nil
}

func newStorage(cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypeSQLite:
		if cfg.SQLiteConfig == nil {
			return nil, errors.New("SQLiteConfig required when StorageType is sqlite")
		}
		return sqlitestorage.New(*cfg.SQLiteConfig)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis' or 'sqlite'", storageType)
	}
}

// loadDictionary reads the word list, falling back to the storage cache when
// the file is unavailable. In async mode the file is read up front so a missing
// source still fails startup; only parsing runs in the background.
func (a *App) loadDictionary(path string, async bool, logger *slog.Logger) error {
	ctx := context.Background()

	var err error
	if async {
		var raw string
		if raw, err = dictionary.ReadSource(path); err == nil {
			a.DictionaryService.LoadAsync(ctx, raw)
			return nil
		}
	} else {
		err = a.DictionaryService.LoadFromFile(ctx, path)
	}
	if err == nil || !errors.Is(err, model.ErrDictionarySourceMissing) {
		return err
	}

	logger.Warn("dictionary file missing, trying storage cache",
		slog.String("path", path))
	if cacheErr := a.DictionaryService.LoadFromStorage(ctx); cacheErr != nil {
		return err
	}
	return nil
}

// Close releases the storage backend and event hubs
func (a *App) Close() error {
	a.HubManager.Close()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	boardCfg model.BoardConfig,
	gameCfg game.Config,
	logger *slog.Logger,
) *App {
	dictService := dictionary.New(store, logger)
	boardService := board.New(boardCfg, logger)
	scoringService := scoring.New(dictService, boardService)
	ownershipService := ownership.New(logger)
	gameController := game.NewController(store, boardService, scoringService, ownershipService, clk, rnd, logger, gameCfg)
	gameController.SetDictionary(dictService)
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)
	gameController.SetPublisher(broadcaster)
	botService := bot.NewService(gameController, bot.DefaultStrategies(rnd, scoringService), logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		DictionaryService: dictService,
		BoardService:      boardService,
		ScoringService:    scoringService,
		OwnershipService:  ownershipService,
		GameController:    gameController,
		BotService:        botService,
		HubManager:        hubManager,
		Broadcaster:       broadcaster,
	}
}
