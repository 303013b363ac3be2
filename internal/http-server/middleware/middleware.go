package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/wb-go/wbf/zlog"

	"image-resizer/internal/config"
)

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		zlog.Logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request started")

		next.ServeHTTP(w, r)

		zlog.Logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("Request completed")
	})
}

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				zlog.Logger.Error().
					Interface("error", err).
					Msg("Panic recovered")

				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// AllowOrigin builds the CORS origin check: requests without an Origin
// header never reach it (they are not CORS requests); outside production
// any localhost origin is allowed; otherwise only the configured frontend
// origin passes.
func AllowOrigin(cfg *config.Config) func(r *http.Request, origin string) bool {
	return func(r *http.Request, origin string) bool {
		if origin == "" {
			return true
		}
		if !cfg.IsProduction() && strings.Contains(origin, "localhost") {
			return true
		}
		return origin == cfg.FrontendURL
	}
}
