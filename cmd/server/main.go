package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mcoot/trampoline/internal/api"
	"github.com/mcoot/trampoline/internal/factory"
	"github.com/mcoot/trampoline/internal/services/game"
	redisstorage "github.com/mcoot/trampoline/internal/storage/redis"
	sqlitestorage "github.com/mcoot/trampoline/internal/storage/sqlite"
)

func main() {
	// A missing .env is fine; real environment variables still apply
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(os.Getenv("LOG_LEVEL")),
	}))
	slog.SetDefault(logger)

	cfg := factory.Config{
		DictionaryPath:  getEnvOrDefault("DICTIONARY_PATH", "data/words.txt"),
		DictionaryAsync: os.Getenv("DICTIONARY_ASYNC") == "true",
		Game:            gameConfigFromEnv(logger),
		Logger:          logger,
		StorageType:     os.Getenv("STORAGE_TYPE"),
	}

	switch cfg.StorageType {
	case factory.StorageTypeRedis:
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	case factory.StorageTypeSQLite:
		sqliteCfg := sqlitestorage.DefaultConfig()
		sqliteCfg.Path = getEnvOrDefault("SQLITE_PATH", sqliteCfg.Path)
		cfg.SQLiteConfig = &sqliteCfg
	}

	// The dictionary loads here; a missing or empty word list is fatal
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close application", slog.String("error", err.Error()))
		}
	}()

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		Dictionary:     app.DictionaryService,
		Bots:           app.BotService,
		HubManager:     app.HubManager,
	})

	serverConfig := api.DefaultServerConfig()
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		serverConfig.Port = port
	}
	serverConfig.Host = os.Getenv("HOST")
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

func gameConfigFromEnv(logger *slog.Logger) game.Config {
	cfg := game.DefaultConfig()
	if raw := os.Getenv("COMPLETE_WORD_THRESHOLD"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			logger.Warn("ignoring invalid COMPLETE_WORD_THRESHOLD", slog.String("value", raw))
		} else {
			cfg.CompleteWordThreshold = n
		}
	}
	return cfg
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
