package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/gamevault/internal/api/apierr"
	"github.com/mcoot/gamevault/internal/middleware"
)

// Recovery creates panic recovery middleware for the API
// Returns JSON error responses on panic
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`{"message":"Internal server error","error":{"code":"` + apierr.CodeInternalError + `","message":"Internal server error"}}` + "\n"))
}
