package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/flavorconnect/flavorconnect/internal/repository"
	"github.com/flavorconnect/flavorconnect/internal/service"
	"github.com/flavorconnect/flavorconnect/internal/session"
	"github.com/flavorconnect/flavorconnect/internal/ui"
	"github.com/flavorconnect/flavorconnect/internal/ui/pages"
)

// maxFormSize bounds multipart bodies: a 10 MB image plus the text fields
const maxFormSize = 12 << 20

// actor builds the service caller from the request session
func actor(r *http.Request) service.Actor {
	sess := session.FromContext(r.Context())
	if !sess.IsLoggedIn() {
		return service.Actor{}
	}
	return service.Actor{UserID: sess.UserID, Level: sess.Level}
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrRecipeNotFound) ||
		errors.Is(err, repository.ErrUserNotFound) ||
		errors.Is(err, repository.ErrAttributeNotFound) ||
		errors.Is(err, repository.ErrMeasurementNotFound) ||
		errors.Is(err, service.ErrPageNotFound)
}

// renderError maps service errors to the 403, 404 and 500 pages
func renderError(w http.ResponseWriter, r *http.Request, err error, msg string, attrs ...any) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		ui.RenderStatus(w, r, http.StatusForbidden, pages.Forbidden())
	case isNotFound(err):
		ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound())
	default:
		slog.Error(msg, append(attrs, "error", err)...)
		ui.RenderStatus(w, r, http.StatusInternalServerError, pages.ServerError())
	}
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound())
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	ui.RenderStatus(w, r, http.StatusMethodNotAllowed, pages.MethodNotAllowed())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode json response", "error", err)
	}
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// pageParam reads ?page=, defaulting to 1
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// safeNext only allows local absolute paths as post-login targets
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return "/"
	}
	return next
}
