package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimit limits requests per client IP within window
func RateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(limit, window,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return getClientIP(r), nil
		}),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			slog.Warn("rate limit exceeded",
				"ip", getClientIP(r),
				"path", r.URL.Path,
			)
			http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
		}),
	)
}

// RateLimitAuth guards login and registration: 10 requests per 15 minutes per IP
func RateLimitAuth() func(http.Handler) http.Handler {
	return RateLimit(10, 15*time.Minute)
}

// RateLimitAPI guards the JSON API: 60 requests per minute per IP
func RateLimitAPI() func(http.Handler) http.Handler {
	return RateLimit(60, time.Minute)
}

// getClientIP extracts the client IP, honoring proxy headers
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
