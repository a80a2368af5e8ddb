package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"firegate-hq/firegate/pkg/config"
)

// corsMethods is the method set advertised on preflight. The gateway
// proxies POST-shaped API traffic only.
var corsMethods = []string{"GET", "POST", "OPTIONS"}

// CORS emits cross-origin headers and answers OPTIONS preflight
// requests locally. Preflights never reach the upstream.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			origin := r.Header.Get("Origin")
			switch {
			case origin != "" && originAllowed(origin, cfg.AllowedOrigins):
				w.Header().Set("Access-Control-Allow-Origin", origin)
			case originAllowed("*", cfg.AllowedOrigins):
				w.Header().Set("Access-Control-Allow-Origin", "*")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(corsMethods, ", "))
				if len(cfg.AllowedHeaders) > 0 {
					w.Header().Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowedHeaders, ", "))
				}
				if cfg.MaxAge > 0 {
					w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed []string) bool {
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}
