// Package router wraps chi with named routes and reverse URL generation.
package router

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// paramPattern matches {name} and {name:regex} segments
var paramPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)(?::[^}]*)?\}`)

type Router struct {
	mux chi.Router

	mu    sync.RWMutex
	names map[string]string // route name -> pattern
}

func New() *Router {
	return &Router{
		mux:   chi.NewRouter(),
		names: make(map[string]string),
	}
}

// Use adds global middleware; must be called before any route is registered
func (r *Router) Use(mws ...func(http.Handler) http.Handler) {
	r.mux.Use(mws...)
}

// Handle registers handler for method and pattern. Middlewares wrap the handler
// with the first listed running first. A non-empty name enables URL lookups.
func (r *Router) Handle(method, pattern, name string, handler http.Handler, mws ...func(http.Handler) http.Handler) {
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}
	r.mux.Method(method, pattern, handler)

	if name != "" {
		r.mu.Lock()
		r.names[name] = pattern
		r.mu.Unlock()
	}
}

func (r *Router) Get(pattern, name string, h http.HandlerFunc, mws ...func(http.Handler) http.Handler) {
	r.Handle(http.MethodGet, pattern, name, h, mws...)
}

func (r *Router) Post(pattern, name string, h http.HandlerFunc, mws ...func(http.Handler) http.Handler) {
	r.Handle(http.MethodPost, pattern, name, h, mws...)
}

// Mount attaches a sub-handler (file servers, metrics) under pattern
func (r *Router) Mount(pattern string, h http.Handler) {
	r.mux.Mount(pattern, h)
}

func (r *Router) NotFound(h http.HandlerFunc) {
	r.mux.NotFound(h)
}

func (r *Router) MethodNotAllowed(h http.HandlerFunc) {
	r.mux.MethodNotAllowed(h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// URL builds the path of a named route, substituting and escaping params.
// Params that are not part of the pattern are ignored.
func (r *Router) URL(name string, params map[string]string) (string, error) {
	r.mu.RLock()
	pattern, ok := r.names[name]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("router: no route named %q", name)
	}

	var missing []string
	path := paramPattern.ReplaceAllStringFunc(pattern, func(segment string) string {
		key := paramPattern.FindStringSubmatch(segment)[1]
		value, ok := params[key]
		if !ok || value == "" {
			missing = append(missing, key)
			return segment
		}
		return url.PathEscape(value)
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("router: route %q missing params: %s", name, strings.Join(missing, ", "))
	}

	return path, nil
}

// Param returns the named path parameter of the current request
func Param(req *http.Request, name string) string {
	return chi.URLParam(req, name)
}
