package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/flavorconnect/flavorconnect/internal/ctxkeys"
)

// SecurityHeaders sets the CSP and related headers. It must run after
// NonceMiddleware and Config so the nonce and S3 endpoint are known.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		imgSrc := []string{"'self'", "data:"}
		if cfg := ctxkeys.Config(r.Context()); cfg != nil && cfg.S3Endpoint != "" {
			imgSrc = append(imgSrc, cfg.S3Endpoint)
		} else {
			imgSrc = append(imgSrc, "https://*.amazonaws.com")
		}

		scriptSrc := "'self' https://unpkg.com"
		if nonce := GetNonce(r.Context()); nonce != "" {
			scriptSrc += fmt.Sprintf(" 'nonce-%s'", nonce)
		}

		csp := strings.Join([]string{
			"default-src 'self'",
			"script-src " + scriptSrc,
			"style-src 'self' 'unsafe-inline'",
			"img-src " + strings.Join(imgSrc, " "),
			"object-src 'none'",
			"base-uri 'self'",
			"form-action 'self'",
			"frame-ancestors 'none'",
		}, "; ")

		h := w.Header()
		h.Set("Content-Security-Policy", csp)
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}
