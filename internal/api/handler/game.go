package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/trampoline/internal/api/request"
	"github.com/mcoot/trampoline/internal/api/response"
	"github.com/mcoot/trampoline/internal/model"
	"github.com/mcoot/trampoline/internal/services/game"
	"github.com/mcoot/trampoline/internal/sse"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController game.ControllerInterface
	hubManager     *sse.HubManager
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController game.ControllerInterface, hubManager *sse.HubManager) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		hubManager:     hubManager,
	}
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return NewInvalidRequestError("invalid request body")
	}
	return nil
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.CreateGame(r.Context(), model.GameMode(req.Mode), req.Players)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(g))
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := h.gameController.ListGames(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameListFromIDs(ids))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.GetGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	if err := h.gameController.DeleteGame(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	if h.hubManager != nil {
		h.hubManager.RemoveHub(id)
	}
	response.NoContent(w)
}

// Place handles POST /api/v1/games/{id}/place
func (h *GameHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req request.PlaceRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	pos := model.Position{Row: req.Row, Col: req.Col}
	g, err := h.gameController.PlaceTile(r.Context(), gameID(r), model.PlayerID(req.Player), model.TileID(req.Tile), pos)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Remove handles POST /api/v1/games/{id}/remove
func (h *GameHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req request.RemoveRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	pos := model.Position{Row: req.Row, Col: req.Col}
	g, err := h.gameController.RemoveTile(r.Context(), gameID(r), model.PlayerID(req.Player), pos)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Flip handles POST /api/v1/games/{id}/flip
func (h *GameHandler) Flip(w http.ResponseWriter, r *http.Request) {
	var req request.FlipRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.FlipTile(r.Context(), gameID(r), model.PlayerID(req.Player), model.TileID(req.Tile))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// EndTurn handles POST /api/v1/games/{id}/end-turn
func (h *GameHandler) EndTurn(w http.ResponseWriter, r *http.Request) {
	var req request.PlayerRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.EndTurn(r.Context(), gameID(r), model.PlayerID(req.Player))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// ForceTurn handles POST /api/v1/games/{id}/force-turn
func (h *GameHandler) ForceTurn(w http.ResponseWriter, r *http.Request) {
	var req request.PlayerRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.ForceTurn(r.Context(), gameID(r), model.PlayerID(req.Player))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Scores handles GET /api/v1/games/{id}/scores
func (h *GameHandler) Scores(w http.ResponseWriter, r *http.Request) {
	report, err := h.gameController.Scores(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ScoresFromReport(report))
}

// Events handles GET /api/v1/games/{id}/events
// An optional ?player= names the seat the client plays; spectators omit it.
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	if h.hubManager == nil {
		WriteError(w, NewInternalError())
		return
	}

	g, err := h.gameController.GetGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	viewer := model.NoPlayer
	if raw := r.URL.Query().Get("player"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			WriteError(w, NewInvalidRequestError("player must be an integer"))
			return
		}
		if !g.IsValidPlayer(model.PlayerID(n)) {
			WriteError(w, model.ErrPlayerNotFound)
			return
		}
		viewer = model.PlayerID(n)
	}

	hub := h.hubManager.GetOrCreateHub(g.ID)
	sse.ServeSSE(w, r, hub, viewer)
}
