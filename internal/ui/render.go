package ui

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/flavorconnect/flavorconnect/internal/session"
)

type flashKey struct{}

// Flash returns the flash message taken from the session for this render
func Flash(ctx context.Context) string {
	msg, _ := ctx.Value(flashKey{}).(string)
	return msg
}

// Render writes a full page with status 200
func Render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	RenderStatus(w, r, http.StatusOK, c)
}

// RenderStatus consumes the flash message before any byte is written so the
// cookie clearing header still reaches the client
func RenderStatus(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	msg := session.FromContext(r.Context()).Message(w)
	ctx := context.WithValue(r.Context(), flashKey{}, msg)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	err := c.Render(ctx, w)
	if err != nil {
		slog.Error("render failed", "error", err, "path", r.URL.Path)
	}
}

// RenderFragment renders a partial for htmx requests; the flash stays for the next full page
func RenderFragment(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	err := c.Render(r.Context(), w)
	if err != nil {
		slog.Error("render fragment failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
