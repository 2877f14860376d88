package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName      string
	AppEnv       string
	AppURL       string
	Port         string
	AppTagline   string
	SupportEmail string
	ContentPath  string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret string
	JWTExpiry time.Duration

	// Seeded super-admin (created on startup when missing)
	AdminUsername string
	AdminEmail    string
	AdminPassword string

	// Recipes
	RecipesPerPage int

	// Images
	ImageMagickPath string // Empty: resolved by OS ("magick" on Windows, "convert" elsewhere)
	ImageTimeout    time.Duration

	// Email
	EmailFrom    string
	ResendAPIKey string

	// Observability (optional)
	SentryDSN string

	// Storage: "local" (default) writes under UploadPath and serves from UploadURL,
	// "s3" uses any S3-compatible bucket
	StorageDriver string
	UploadPath    string
	UploadURL     string

	S3Region              string
	S3Bucket              string
	S3AccessKey           string
	S3SecretKey           string
	S3Endpoint            string        // Optional: for S3-compatible services (MinIO, DO Spaces, R2, etc.)
	S3PresignExpiryPublic time.Duration // Expiry for recipe images - default: 7 days
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:      envString("APP_NAME", "FlavorConnect"),
		AppEnv:       envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:       envRequired("APP_URL"),
		Port:         envString("PORT", "8090"),
		AppTagline:   envString("APP_TAGLINE", "Share the recipes you love"),
		SupportEmail: envString("SUPPORT_EMAIL", "hello@example.com"),
		ContentPath:  envString("CONTENT_PATH", "content"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/flavorconnect.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret: envRequired("JWT_SECRET"),
		JWTExpiry: envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days

		AdminUsername: envString("ADMIN_USERNAME", ""),
		AdminEmail:    envString("ADMIN_EMAIL", ""),
		AdminPassword: envString("ADMIN_PASSWORD", ""),

		RecipesPerPage: envInt("RECIPES_PER_PAGE", 12),

		ImageMagickPath: envString("IMAGEMAGICK_PATH", ""),
		ImageTimeout:    envDuration("IMAGE_TIMEOUT", 30*time.Second),

		// Email (RESEND_API_KEY optional in development, required in production)
		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage
		StorageDriver: envString("STORAGE_DRIVER", "local"),
		UploadPath:    envString("UPLOAD_PATH", "public/assets/uploads"),
		UploadURL:     envString("UPLOAD_URL", "/uploads"),

		S3Region:              envString("S3_REGION", ""),
		S3Bucket:              envString("S3_BUCKET", ""),
		S3AccessKey:           envString("S3_ACCESS_KEY", ""),
		S3SecretKey:           envString("S3_SECRET_KEY", ""),
		S3Endpoint:            envString("S3_ENDPOINT", ""),
		S3PresignExpiryPublic: envDuration("S3_PRESIGN_EXPIRY_PUBLIC", 168*time.Hour),
	}

	if cfg.StorageDriver == "s3" {
		validateS3(cfg)
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures all required services are configured for production deployments.
// Development allows email to run in log mode for easier local testing.
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
}

func validateS3(cfg *Config) {
	for key, value := range map[string]string{
		"S3_REGION":     cfg.S3Region,
		"S3_BUCKET":     cfg.S3Bucket,
		"S3_ACCESS_KEY": cfg.S3AccessKey,
		"S3_SECRET_KEY": cfg.S3SecretKey,
	} {
		if value == "" {
			slog.Error("config required env var missing for s3 storage", "key", key)
			os.Exit(1)
		}
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy of the config with only public/safe fields.
// Safe to expose in ctx, templates and client-facing contexts.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:        c.AppName,
		AppEnv:         c.AppEnv,
		AppURL:         c.AppURL,
		Port:           c.Port,
		AppTagline:     c.AppTagline,
		SupportEmail:   c.SupportEmail,
		RecipesPerPage: c.RecipesPerPage,
		UploadURL:      c.UploadURL,

		S3Endpoint: c.S3Endpoint, // Needed for CSP policies
	}
}
