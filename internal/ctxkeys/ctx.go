package ctxkeys

import (
	"context"
	"log/slog"

	"github.com/flavorconnect/flavorconnect/internal/config"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	URLPathKey   contextKey = "url_path"
	ConfigKey    contextKey = "config"
	CSRFTokenKey contextKey = "csrf_token"
	RoutesKey    contextKey = "routes"
)

// URLBuilder resolves named routes
type URLBuilder interface {
	URL(name string, params map[string]string) (string, error)
}

func URLPath(ctx context.Context) string {
	path, _ := ctx.Value(URLPathKey).(string)
	return path
}

func WithURLPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, URLPathKey, path)
}

func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ConfigKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}

func CSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(CSRFTokenKey).(string)
	return token
}

func WithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, CSRFTokenKey, token)
}

func Routes(ctx context.Context) URLBuilder {
	routes, _ := ctx.Value(RoutesKey).(URLBuilder)
	return routes
}

func WithRoutes(ctx context.Context, routes URLBuilder) context.Context {
	return context.WithValue(ctx, RoutesKey, routes)
}

// URL resolves a named route from the request's router. Unknown names and
// missing params log an error and yield "#" so a page still renders.
func URL(ctx context.Context, name string, params ...string) string {
	routes := Routes(ctx)
	if routes == nil {
		return "#"
	}

	var p map[string]string
	if len(params) > 0 {
		p = make(map[string]string, len(params)/2)
		for i := 0; i+1 < len(params); i += 2 {
			p[params[i]] = params[i+1]
		}
	}

	url, err := routes.URL(name, p)
	if err != nil {
		slog.Error("failed to build url", "route", name, "error", err)
		return "#"
	}
	return url
}
