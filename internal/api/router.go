package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/trampoline/internal/api/handler"
	"github.com/mcoot/trampoline/internal/api/middleware"
	"github.com/mcoot/trampoline/internal/services/bot"
	"github.com/mcoot/trampoline/internal/services/dictionary"
	"github.com/mcoot/trampoline/internal/services/game"
	"github.com/mcoot/trampoline/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController game.ControllerInterface
	Dictionary     dictionary.ServiceInterface
	Bots           bot.ServiceInterface // optional; autoplay routes are skipped without it
	HubManager     *sse.HubManager // optional; events endpoint is disabled without it
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.HubManager)
	summaryHandler := handler.NewSummaryHandler(cfg.GameController)
	dictionaryHandler := handler.NewDictionaryHandler(cfg.Dictionary)
	healthHandler := handler.NewHealthHandler(cfg.Dictionary)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Logging(cfg.Logger))
	api.Use(middleware.Recovery(cfg.Logger))

	// Game routes
	api.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/games/{id}/place", gameHandler.Place).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/remove", gameHandler.Remove).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/flip", gameHandler.Flip).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/end-turn", gameHandler.EndTurn).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/force-turn", gameHandler.ForceTurn).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/scores", gameHandler.Scores).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/events", gameHandler.Events).Methods(http.MethodGet)

	if cfg.Bots != nil {
		autoPlayHandler := handler.NewAutoPlayHandler(cfg.Bots)
		api.HandleFunc("/games/{id}/autoplay", autoPlayHandler.Play).Methods(http.MethodPost)
		api.HandleFunc("/autoplay/strategies", autoPlayHandler.Strategies).Methods(http.MethodGet)
	}

	// Completed games
	api.HandleFunc("/summaries", summaryHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/summaries/{id}", summaryHandler.Get).Methods(http.MethodGet)

	// Dictionary
	api.HandleFunc("/dictionary", dictionaryHandler.Status).Methods(http.MethodGet)
	api.HandleFunc("/dictionary/{word}", dictionaryHandler.Check).Methods(http.MethodGet)

	api.HandleFunc("/health", healthHandler.Check).Methods(http.MethodGet)

	return r
}
