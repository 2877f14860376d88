package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/flavorconnect/flavorconnect/internal/service"
	"github.com/flavorconnect/flavorconnect/internal/session"
	"github.com/flavorconnect/flavorconnect/internal/ui"
	"github.com/flavorconnect/flavorconnect/internal/ui/pages"
	"github.com/flavorconnect/flavorconnect/internal/validation"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Register(pages.RegisterProps{}))
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	in := service.RegisterInput{
		Username:        r.FormValue("username"),
		Email:           r.FormValue("email"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}

	user, err := h.authService.Register(in)
	var errs validation.Errors
	if errors.As(err, &errs) {
		ui.RenderStatus(w, r, http.StatusUnprocessableEntity, pages.Register(pages.RegisterProps{Input: in, Errors: errs}))
		return
	}
	if err != nil {
		renderError(w, r, err, "failed to register user")
		return
	}

	sess := session.FromContext(r.Context())
	err = sess.Login(w, user)
	if err != nil {
		renderError(w, r, err, "failed to start session", "user_id", user.ID)
		return
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	sess.SetMessage(w, "Welcome, "+user.Username+"! Your account is ready.")
	redirect(w, r, "/")
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Login(pages.LoginProps{Next: r.URL.Query().Get("next")}))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	identifier := r.FormValue("identifier")
	password := r.FormValue("password")
	next := r.FormValue("next")

	fail := func(msg string) {
		ui.RenderStatus(w, r, http.StatusUnauthorized, pages.Login(pages.LoginProps{
			Identifier: identifier,
			Next:       next,
			Errors:     validation.Errors{"form": msg},
		}))
	}

	if identifier == "" || password == "" {
		fail("Username and password are required")
		return
	}

	user, err := h.authService.Login(identifier, password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		slog.Warn("login failed", "identifier", identifier)
		fail("Invalid username or password")
		return
	case errors.Is(err, service.ErrAccountInactive):
		slog.Warn("inactive account login attempt", "identifier", identifier)
		fail("This account has been deactivated")
		return
	case err != nil:
		renderError(w, r, err, "failed to log in")
		return
	}

	sess := session.FromContext(r.Context())
	err = sess.Login(w, user)
	if err != nil {
		renderError(w, r, err, "failed to start session", "user_id", user.ID)
		return
	}

	slog.Info("user logged in", "user_id", user.ID)
	sess.SetMessage(w, "Welcome back, "+user.Username+"!")
	redirect(w, r, safeNext(next))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	sess.Logout(w)
	sess.SetMessage(w, "You have been logged out.")
	redirect(w, r, "/")
}
