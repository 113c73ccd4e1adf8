package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/trampoline/internal/api/apierr"
	"github.com/mcoot/trampoline/internal/middleware"
)

// Recovery answers a panicking handler with the JSON INTERNAL_ERROR body
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger.With(slog.String("component", "api")), func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
