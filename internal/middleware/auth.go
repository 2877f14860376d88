package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/flavorconnect/flavorconnect/internal/repository"
	"github.com/flavorconnect/flavorconnect/internal/session"
	"github.com/flavorconnect/flavorconnect/internal/ui"
	"github.com/flavorconnect/flavorconnect/internal/ui/pages"
)

// Session loads the cookie session and checks the account behind it still
// exists and is active. Level and username are refreshed from the database
// so a role change takes effect on the next request.
func Session(manager *session.Manager, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := manager.Load(r)

			if sess.IsLoggedIn() {
				user, err := users.ByID(sess.UserID)
				switch {
				case errors.Is(err, repository.ErrUserNotFound):
					sess.Logout(w)
				case err != nil:
					slog.Error("failed to load session user", "user_id", sess.UserID, "error", err)
					sess.Logout(w)
				case !user.IsActive:
					sess.Logout(w)
					sess.SetMessage(w, "Your account has been deactivated.")
				default:
					sess.Username = user.Username
					sess.Level = user.Level
				}
			}

			ctx := session.WithSession(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// redirect sends a full page redirect, using HX-Redirect for htmx requests
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// RequireLogin sends anonymous visitors to the login page, remembering where
// they were headed for GET requests
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session.FromContext(r.Context()).IsLoggedIn() {
			next.ServeHTTP(w, r)
			return
		}

		target := "/login"
		if r.Method == http.MethodGet {
			target += "?next=" + url.QueryEscape(r.URL.RequestURI())
		}
		redirect(w, r, target)
	})
}

// RequireAdmin requires an admin or super-admin
func RequireAdmin(next http.Handler) http.Handler {
	return requireLevel(next, (*session.Session).IsAdmin)
}

// RequireSuperAdmin requires a super-admin
func RequireSuperAdmin(next http.Handler) http.Handler {
	return requireLevel(next, (*session.Session).IsSuperAdmin)
}

func requireLevel(next http.Handler, allowed func(*session.Session) bool) http.Handler {
	return RequireLogin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		if !allowed(sess) {
			slog.Warn("forbidden", "path", r.URL.Path, "user_id", sess.UserID)
			ui.RenderStatus(w, r, http.StatusForbidden, pages.Forbidden())
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// RequireGuest keeps logged-in users away from the login and register pages
func RequireGuest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session.FromContext(r.Context()).IsLoggedIn() {
			redirect(w, r, "/")
			return
		}
		next.ServeHTTP(w, r)
	})
}
