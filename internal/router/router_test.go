package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL(t *testing.T) {
	r := New()
	noop := func(w http.ResponseWriter, req *http.Request) {}
	r.Get("/recipes", "recipes.index", noop)
	r.Get("/recipes/{id}", "recipes.show", noop)
	r.Post("/admin/categories/{kind}/{id}", "admin.categories.update", noop)

	u, err := r.URL("recipes.index", nil)
	require.NoError(t, err)
	assert.Equal(t, "/recipes", u)

	u, err = r.URL("recipes.show", map[string]string{"id": "abc-123"})
	require.NoError(t, err)
	assert.Equal(t, "/recipes/abc-123", u)

	u, err = r.URL("recipes.show", map[string]string{"id": "a b/c"})
	require.NoError(t, err)
	assert.Equal(t, "/recipes/a%20b%2Fc", u)

	u, err = r.URL("admin.categories.update", map[string]string{"kind": "style", "id": "1", "extra": "x"})
	require.NoError(t, err)
	assert.Equal(t, "/admin/categories/style/1", u)

	_, err = r.URL("admin.categories.update", map[string]string{"kind": "style"})
	assert.ErrorContains(t, err, "missing params: id")

	_, err = r.URL("nope", nil)
	assert.ErrorContains(t, err, `no route named "nope"`)
}

func TestHandleDispatchesWithParams(t *testing.T) {
	r := New()
	r.Get("/recipes/{id}", "recipes.show", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte("recipe " + Param(req, "id")))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recipes/42", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "recipe 42", rec.Body.String())
}

func TestMiddlewareOrderFirstListedRunsFirst(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, req)
			})
		}
	}

	r := New()
	r.Get("/", "home", func(w http.ResponseWriter, req *http.Request) {
		order = append(order, "handler")
	}, mark("first"), mark("second"))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "first,second,handler", strings.Join(order, ","))
}

func TestNotFoundAndMethodNotAllowedHooks(t *testing.T) {
	r := New()
	r.Get("/only-get", "only", func(w http.ResponseWriter, req *http.Request) {})
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("custom 404"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte("custom 405"))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, "custom 404", rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/only-get", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "custom 405", rec.Body.String())
}
