// Package session keeps the logged-in user and one-shot flash messages in cookies.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/flavorconnect/flavorconnect/internal/model"
)

const (
	AuthCookie  = "auth_token"
	FlashCookie = "flash"

	flashMaxAge = 5 * time.Minute
	flashType   = "flash"
)

// Manager signs and reads session cookies
type Manager struct {
	secret []byte
	expiry time.Duration
	secure bool
}

func NewManager(secret string, expiry time.Duration, secure bool) *Manager {
	return &Manager{secret: []byte(secret), expiry: expiry, secure: secure}
}

// Session is the per-request view of who is logged in plus the flash message
type Session struct {
	UserID   string
	Username string
	Level    model.UserLevel

	manager *Manager

	incoming  string // flash read from the request cookie
	pending   string // flash set during this request
	flashUsed bool
}

// Load restores the session from the request cookies. Invalid or expired
// tokens produce an anonymous session.
func (m *Manager) Load(r *http.Request) *Session {
	s := &Session{manager: m}

	if c, err := r.Cookie(AuthCookie); err == nil && c.Value != "" {
		claims, err := m.verify(c.Value)
		if err == nil && claims["typ"] == nil {
			s.UserID, _ = claims["user_id"].(string)
			s.Username, _ = claims["username"].(string)
			level, _ := claims["level"].(string)
			s.Level = model.UserLevel(level)
		}
	}
	if !s.Level.Valid() {
		s.Level = model.UserLevelUser
	}

	if c, err := r.Cookie(FlashCookie); err == nil && c.Value != "" {
		claims, err := m.verify(c.Value)
		if err == nil && claims["typ"] == flashType {
			s.incoming, _ = claims["msg"].(string)
		}
	}

	return s
}

func (s *Session) IsLoggedIn() bool {
	return s != nil && s.UserID != ""
}

func (s *Session) IsAdmin() bool {
	return s.IsLoggedIn() && (s.Level == model.UserLevelAdmin || s.Level == model.UserLevelSuperAdmin)
}

func (s *Session) IsSuperAdmin() bool {
	return s.IsLoggedIn() && s.Level == model.UserLevelSuperAdmin
}

// CanEdit reports whether the current user owns the record or is an admin
func (s *Session) CanEdit(ownerID string) bool {
	return s.IsLoggedIn() && (s.UserID == ownerID || s.IsAdmin())
}

// Login issues a signed auth cookie for user
func (s *Session) Login(w http.ResponseWriter, user *model.User) error {
	expiry := time.Now().Add(s.manager.expiry)

	token, err := s.manager.sign(user, expiry)
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}

	s.manager.setCookie(w, AuthCookie, token, expiry)
	s.UserID = user.ID
	s.Username = user.Username
	s.Level = user.Level
	return nil
}

func (s *Session) Logout(w http.ResponseWriter) {
	s.manager.clearCookie(w, AuthCookie)
	s.UserID = ""
	s.Username = ""
	s.Level = model.UserLevelUser
}

// SetMessage stores a flash shown on the next rendered page
func (s *Session) SetMessage(w http.ResponseWriter, msg string) {
	s.pending = msg
	s.flashUsed = false

	expiry := time.Now().Add(flashMaxAge)
	token, err := s.manager.signFlash(msg, expiry)
	if err != nil {
		slog.Error("failed to sign flash message", "error", err)
		return
	}
	s.manager.setCookie(w, FlashCookie, token, expiry)
}

// Message returns the flash and clears it. Later calls return "".
func (s *Session) Message(w http.ResponseWriter) string {
	if s == nil || s.flashUsed {
		return ""
	}

	msg := s.pending
	if msg == "" {
		msg = s.incoming
	}
	if msg == "" {
		return ""
	}

	s.flashUsed = true
	s.pending = ""
	s.incoming = ""
	s.manager.clearCookie(w, FlashCookie)
	return msg
}

func (m *Manager) sign(user *model.User, expiry time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"level":    string(user.Level),
		"exp":      expiry.Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// signFlash wraps msg in a short-lived HS256 token
func (m *Manager) signFlash(msg string, expiry time.Time) (string, error) {
	claims := jwt.MapClaims{
		"typ": flashType,
		"msg": msg,
		"exp": expiry.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) verify(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func (m *Manager) setCookie(w http.ResponseWriter, name, value string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

type contextKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the request session, or an anonymous one when none was loaded
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(contextKey{}).(*Session); ok && s != nil {
		return s
	}
	return &Session{manager: &Manager{}, Level: model.UserLevelUser}
}
