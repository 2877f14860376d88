package middleware

import "net/http"

// Chain applies middleware in the order given, the first one running first
//
// Example:
//
//	handler := Chain(mux,
//	    RequestLogging,   // Executes first
//	    Config(cfg),      // Executes second
//	    Session(mgr, ur), // Executes third
//	)
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
