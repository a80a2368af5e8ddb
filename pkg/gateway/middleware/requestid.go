package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"firegate-hq/firegate/pkg/telemetry/logging"
)

// RequestIDHeader carries the request ID on requests and responses.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns a UUID to every request and echoes it in the
// response header. A client-supplied X-Request-ID is honored so callers
// can correlate across hops.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		ctx := logging.WithRequestID(r.Context(), id)
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
