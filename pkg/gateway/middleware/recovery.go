package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"firegate-hq/firegate/pkg/gateway/types"
	"firegate-hq/firegate/pkg/telemetry/logging"
)

// Recovery converts handler panics into a 500 response in the standard
// error shape. The panic value and stack stay in the logs; the client
// sees a generic message.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic in handler",
						"request_id", logging.RequestID(r.Context()),
						"method", r.Method,
						"path", r.URL.Path,
						"panic", rec,
						"stack", string(debug.Stack()),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(
						types.NewServerError("internal error"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
