package handler

import (
	"net/http"

	"github.com/mcoot/trampoline/internal/api/response"
	"github.com/mcoot/trampoline/internal/services/dictionary"
)

const (
	HealthOK      = "ok"
	HealthLoading = "loading"
	HealthFailed  = "failed"
)

// HealthHandler reports liveness along with dictionary readiness
type HealthHandler struct {
	dictionary dictionary.ServiceInterface
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(dict dictionary.ServiceInterface) *HealthHandler {
	return &HealthHandler{dictionary: dict}
}

// Check handles GET /api/v1/health. The server is live while the dictionary
// loads; a failed load answers 503.
func (h *HealthHandler) Check(w http.ResponseWriter, _ *http.Request) {
	health := response.Health{Status: HealthOK, Dictionary: dictionaryStatus(h.dictionary)}
	code := http.StatusOK
	switch {
	case health.Dictionary.Error != "":
		health.Status = HealthFailed
		code = http.StatusServiceUnavailable
	case !health.Dictionary.Loaded:
		health.Status = HealthLoading
	}
	response.JSON(w, code, health)
}
