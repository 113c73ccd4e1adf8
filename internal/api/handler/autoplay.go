package handler

import (
	"net/http"

	"github.com/mcoot/trampoline/internal/api/request"
	"github.com/mcoot/trampoline/internal/api/response"
	"github.com/mcoot/trampoline/internal/model"
	"github.com/mcoot/trampoline/internal/services/bot"
)

// AutoPlayHandler lets a strategy play a seat's turn
type AutoPlayHandler struct {
	bots bot.ServiceInterface
}

// NewAutoPlayHandler creates a new autoplay handler
func NewAutoPlayHandler(bots bot.ServiceInterface) *AutoPlayHandler {
	return &AutoPlayHandler{bots: bots}
}

// Play handles POST /api/v1/games/{id}/autoplay
func (h *AutoPlayHandler) Play(w http.ResponseWriter, r *http.Request) {
	var req request.AutoPlayRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.Moves < 0 || req.Moves > bot.MaxMoves {
		WriteError(w, NewInvalidRequestError("moves out of range"))
		return
	}

	res, err := h.bots.PlayTurn(r.Context(), gameID(r), model.PlayerID(req.Player), req.Strategy, req.Moves)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AutoPlayFromResult(res))
}

// Strategies handles GET /api/v1/autoplay/strategies
func (h *AutoPlayHandler) Strategies(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Strategies{Strategies: h.bots.Strategies(), Default: bot.DefaultStrategy})
}
