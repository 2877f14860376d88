package routes

import (
	"net/http"

	"github.com/flavorconnect/flavorconnect/assets"
	"github.com/flavorconnect/flavorconnect/internal/app"
	"github.com/flavorconnect/flavorconnect/internal/handler"
	"github.com/flavorconnect/flavorconnect/internal/metrics"
	"github.com/flavorconnect/flavorconnect/internal/middleware"
	"github.com/flavorconnect/flavorconnect/internal/router"
	"github.com/flavorconnect/flavorconnect/internal/storage"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler(app.RecipeService, app.ImageService)
	health := handler.NewHealthHandler(app.DB)
	seo := handler.NewSEOHandler(app.SitemapService, app.Cfg.AppURL)
	page := handler.NewPageHandler(app.PageService)
	auth := handler.NewAuthHandler(app.AuthService)
	recipe := handler.NewRecipeHandler(
		app.RecipeService,
		app.AttributeService,
		app.ReviewService,
		app.FavoriteService,
		app.ImageService,
		app.Cfg.RecipesPerPage,
	)
	admin := handler.NewAdminHandler(app.UserService, app.RecipeService, app.AttributeService)
	api := handler.NewAPIHandler(app.RecipeService, app.ImageService, app.Cfg.RecipesPerPage)

	r := router.New()
	r.Use(
		middleware.RequestLogging,
		middleware.NonceMiddleware,
		middleware.Config(app.Cfg),
		middleware.SecurityHeaders,
		middleware.WithURLPath,
		middleware.WithRoutes(r),
		middleware.Session(app.Sessions, app.UserRepository),
		middleware.CSRFProtection,
	)
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	// ============================================================================
	// STATIC + OPERATIONS
	// ============================================================================

	r.Mount("/assets", http.StripPrefix("/assets", http.FileServer(http.FS(assets.AssetsFS))))
	if local, ok := app.Storage.(*storage.LocalStorage); ok {
		r.Mount(app.Cfg.UploadURL, local.Handler())
	}
	r.Mount("/metrics", metrics.Handler())
	r.Get("/healthz", "", health.Health)
	r.Get("/robots.txt", "", seo.Robots)
	r.Get("/sitemap.xml", "", seo.Sitemap)

	// ============================================================================
	// PUBLIC
	// ============================================================================

	r.Get("/", "home", home.HomePage)
	r.Get("/recipes", "recipes.index", recipe.Index)
	r.Get("/pages/{slug}", "pages.show", page.Show)

	// Auth (rate limited)
	authLimit := middleware.RateLimitAuth()
	r.Get("/register", "register", auth.RegisterPage, middleware.RequireGuest)
	r.Post("/register", "", auth.Register, authLimit, middleware.RequireGuest)
	r.Get("/login", "login", auth.LoginPage, middleware.RequireGuest)
	r.Post("/login", "", auth.Login, authLimit, middleware.RequireGuest)
	r.Post("/logout", "logout", auth.Logout)

	// JSON API
	apiLimit := middleware.RateLimitAPI()
	r.Get("/api/recipes", "api.recipes", api.Recipes, apiLimit)
	r.Get("/api/recipes/{id}", "api.recipes.show", api.Recipe, apiLimit)

	// ============================================================================
	// MEMBERS
	// ============================================================================

	r.Get("/recipes/new", "recipes.new", recipe.New, middleware.RequireLogin)
	r.Post("/recipes", "recipes.create", recipe.Create, middleware.RequireLogin)
	r.Get("/recipes/{id}", "recipes.show", recipe.Show)
	r.Get("/recipes/{id}/edit", "recipes.edit", recipe.Edit, middleware.RequireLogin)
	r.Post("/recipes/{id}", "recipes.update", recipe.Update, middleware.RequireLogin)
	r.Post("/recipes/{id}/delete", "recipes.delete", recipe.Delete, middleware.RequireLogin)
	r.Post("/recipes/{id}/favorite", "recipes.favorite", recipe.Favorite, middleware.RequireLogin)
	r.Post("/recipes/{id}/reviews", "recipes.reviews", recipe.Review, middleware.RequireLogin)
	r.Get("/favorites", "favorites", recipe.Favorites, middleware.RequireLogin)

	// ============================================================================
	// ADMIN
	// ============================================================================

	r.Post("/recipes/{id}/feature", "recipes.feature", recipe.Feature, middleware.RequireAdmin)

	r.Get("/admin", "admin.dashboard", admin.Dashboard, middleware.RequireAdmin)
	r.Get("/admin/categories", "admin.categories", admin.Categories, middleware.RequireAdmin)
	r.Post("/admin/categories/{kind}", "admin.categories.create", admin.SaveCategory, middleware.RequireAdmin)
	r.Post("/admin/categories/{kind}/{id}", "admin.categories.update", admin.SaveCategory, middleware.RequireAdmin)
	r.Post("/admin/categories/{kind}/{id}/delete", "admin.categories.delete", admin.DeleteCategory, middleware.RequireAdmin)
	r.Get("/admin/users", "admin.users", admin.Users, middleware.RequireAdmin)
	r.Post("/admin/users/{id}/toggle", "admin.users.toggle", admin.ToggleUser, middleware.RequireAdmin)
	r.Post("/admin/users/{id}/level", "admin.users.level", admin.SetUserLevel, middleware.RequireSuperAdmin)
	r.Post("/admin/users/{id}/delete", "admin.users.delete", admin.DeleteUser, middleware.RequireAdmin)

	return r
}
