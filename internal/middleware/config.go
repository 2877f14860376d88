package middleware

import (
	"net/http"

	"github.com/flavorconnect/flavorconnect/internal/config"
	"github.com/flavorconnect/flavorconnect/internal/ctxkeys"
)

// Config adds the sanitized app configuration to the request context.
// Secrets such as JWTSecret and the database connection are left out.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	sanitized := cfg.Sanitized()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithConfig(r.Context(), sanitized)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
