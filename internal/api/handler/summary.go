package handler

import (
	"net/http"
	"strconv"

	"github.com/mcoot/trampoline/internal/api/response"
	"github.com/mcoot/trampoline/internal/services/game"
)

const defaultSummaryLimit = 20

// SummaryHandler handles completed-game history endpoints
type SummaryHandler struct {
	gameController game.ControllerInterface
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(gameController game.ControllerInterface) *SummaryHandler {
	return &SummaryHandler{gameController: gameController}
}

// List handles GET /api/v1/summaries
func (h *SummaryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultSummaryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			WriteError(w, NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		limit = n
	}

	summaries, err := h.gameController.ListSummaries(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.SummaryList{Summaries: make([]response.GameSummary, len(summaries))}
	for i, s := range summaries {
		resp.Summaries[i] = response.GameSummaryFromModel(s)
	}
	response.JSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/summaries/{id}
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.gameController.GetSummary(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameSummaryFromModel(s))
}
