package app

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/flavorconnect/flavorconnect/internal/config"
	"github.com/flavorconnect/flavorconnect/internal/db"
	"github.com/flavorconnect/flavorconnect/internal/repository"
	"github.com/flavorconnect/flavorconnect/internal/service"
	"github.com/flavorconnect/flavorconnect/internal/session"
	"github.com/flavorconnect/flavorconnect/internal/storage"
)

type App struct {
	Cfg            *config.Config
	DB             *sqlx.DB
	Storage        storage.Storage
	Sessions       *session.Manager
	UserRepository repository.UserRepository

	AuthService      *service.AuthService
	UserService      *service.UserService
	EmailService     *service.EmailService
	ImageService     *service.ImageService
	AttributeService *service.AttributeService
	RecipeService    *service.RecipeService
	ReviewService    *service.ReviewService
	FavoriteService  *service.FavoriteService
	PageService      *service.PageService
	SitemapService   *service.SitemapService
}

func New(cfg *config.Config) (*App, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	recipeRepository := repository.NewRecipeRepository(database)
	ingredientRepository := repository.NewIngredientRepository(database)
	stepRepository := repository.NewStepRepository(database)
	reviewRepository := repository.NewReviewRepository(database)
	favoriteRepository := repository.NewFavoriteRepository(database)
	attributeRepository := repository.NewAttributeRepository(database)
	measurementRepository := repository.NewMeasurementRepository(database)

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	imageService := service.NewImageService(fileStorage, cfg.ImageMagickPath, cfg.ImageTimeout)
	attributeService := service.NewAttributeService(attributeRepository, measurementRepository)
	authService := service.NewAuthService(userRepository, emailService)
	userService := service.NewUserService(userRepository, recipeRepository, imageService, emailService)
	recipeService := service.NewRecipeService(
		database,
		recipeRepository,
		ingredientRepository,
		stepRepository,
		reviewRepository,
		favoriteRepository,
		attributeService,
		imageService,
	)
	reviewService := service.NewReviewService(database, reviewRepository, recipeRepository, userRepository, emailService)
	favoriteService := service.NewFavoriteService(favoriteRepository, recipeRepository)

	pageService := service.NewPageService(cfg.ContentPath, cfg.IsDevelopment())
	err = pageService.LoadPages()
	if err != nil {
		return nil, fmt.Errorf("failed to load content pages: %w", err)
	}
	sitemapService := service.NewSitemapService(recipeRepository, pageService, cfg.AppURL)

	admin, err := authService.EnsureSuperAdmin(cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to seed super admin: %w", err)
	}
	if admin != nil {
		slog.Info("super admin ready", "username", admin.Username)
	}

	return &App{
		Cfg:            cfg,
		DB:             database,
		Storage:        fileStorage,
		Sessions:       session.NewManager(cfg.JWTSecret, cfg.JWTExpiry, cfg.IsProduction()),
		UserRepository: userRepository,

		AuthService:      authService,
		UserService:      userService,
		EmailService:     emailService,
		ImageService:     imageService,
		AttributeService: attributeService,
		RecipeService:    recipeService,
		ReviewService:    reviewService,
		FavoriteService:  favoriteService,
		PageService:      pageService,
		SitemapService:   sitemapService,
	}, nil
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
