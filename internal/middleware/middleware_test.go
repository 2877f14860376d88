package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flavorconnect/flavorconnect/internal/db/dbtest"
	"github.com/flavorconnect/flavorconnect/internal/model"
	"github.com/flavorconnect/flavorconnect/internal/repository"
	"github.com/flavorconnect/flavorconnect/internal/session"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func withSession(r *http.Request, userID string, level model.UserLevel) *http.Request {
	sess := session.NewManager("secret", time.Hour, false).Load(r)
	sess.UserID = userID
	sess.Level = level
	return r.WithContext(session.WithSession(r.Context(), sess))
}

func TestRequireLogin(t *testing.T) {
	t.Run("anonymous get redirects with next", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireLogin(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/favorites?page=2", nil))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login?next="+url.QueryEscape("/favorites?page=2"), rec.Header().Get("Location"))
	})

	t.Run("htmx uses HX-Redirect", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/recipes/1/favorite", nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		RequireLogin(ok).ServeHTTP(rec, req)

		assert.Equal(t, "/login", rec.Header().Get("HX-Redirect"))
	})

	t.Run("logged in passes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := withSession(httptest.NewRequest(http.MethodGet, "/favorites", nil), "u1", model.UserLevelUser)
		RequireLogin(ok).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	rec := httptest.NewRecorder()
	req := withSession(httptest.NewRequest(http.MethodGet, "/admin", nil), "u1", model.UserLevelUser)
	RequireAdmin(ok).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not allowed")

	rec = httptest.NewRecorder()
	req = withSession(httptest.NewRequest(http.MethodGet, "/admin", nil), "u1", model.UserLevelAdmin)
	RequireAdmin(ok).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	RequireSuperAdmin(ok).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	RequireAdmin(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestRequireGuest(t *testing.T) {
	rec := httptest.NewRecorder()
	req := withSession(httptest.NewRequest(http.MethodGet, "/login", nil), "u1", model.UserLevelUser)
	RequireGuest(ok).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestSession(t *testing.T) {
	conn := dbtest.New(t)
	users := repository.NewUserRepository(conn)
	manager := session.NewManager("secret", time.Hour, false)

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     "maria",
		Email:        "maria@example.com",
		PasswordHash: "hash",
		Level:        model.UserLevelUser,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, users.Create(user))

	login := httptest.NewRecorder()
	require.NoError(t, manager.Load(httptest.NewRequest(http.MethodGet, "/", nil)).Login(login, user))

	request := func() (*session.Session, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range login.Result().Cookies() {
			req.AddCookie(c)
		}
		var got *session.Session
		rec := httptest.NewRecorder()
		Session(manager, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = session.FromContext(r.Context())
		})).ServeHTTP(rec, req)
		return got, rec
	}

	sess, _ := request()
	assert.True(t, sess.IsLoggedIn())
	assert.Equal(t, "maria", sess.Username)

	// promotion is picked up without a new login
	user.Level = model.UserLevelAdmin
	require.NoError(t, users.Update(user))
	sess, _ = request()
	assert.True(t, sess.IsAdmin())

	user.IsActive = false
	require.NoError(t, users.Update(user))
	sess, rec := request()
	assert.False(t, sess.IsLoggedIn())

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.AuthCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestCSRFProtection(t *testing.T) {
	handler := CSRFProtection(ok)

	get := httptest.NewRecorder()
	handler.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, get.Code)

	var token *http.Cookie
	for _, c := range get.Result().Cookies() {
		if c.Name == csrfCookieName {
			token = c
		}
	}
	require.NotNil(t, token)

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/recipes", strings.NewReader("title=x"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("form field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/recipes", strings.NewReader("csrf_token="+token.Value))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/recipes/1/favorite", nil)
		req.Header.Set(csrfHeader, token.Value)
		req.AddCookie(token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	Chain(ok, NonceMiddleware, SecurityHeaders).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	csp := rec.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "'nonce-")
	assert.Contains(t, csp, "frame-ancestors 'none'")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRateLimit(t *testing.T) {
	handler := RateLimit(2, time.Minute)(ok)

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/api/recipes", nil)
		req.RemoteAddr = "203.0.113.7:5000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/api/recipes", nil)
	req.RemoteAddr = "203.0.113.8:5000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	assert.Equal(t, "198.51.100.1", getClientIP(req))
}
