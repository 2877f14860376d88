package middleware

import (
	"net/http"

	"github.com/flavorconnect/flavorconnect/internal/ctxkeys"
)

// WithURLPath adds the current URL's path to the context
func WithURLPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxWithPath := ctxkeys.WithURLPath(r.Context(), r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctxWithPath))
	})
}

// WithRoutes makes named route lookups available to components
func WithRoutes(routes ctxkeys.URLBuilder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithRoutes(r.Context(), routes)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
