package cmd

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/flavorconnect/flavorconnect/internal/config"
	"github.com/flavorconnect/flavorconnect/internal/db"
	"github.com/flavorconnect/flavorconnect/internal/logger"
	"github.com/flavorconnect/flavorconnect/internal/repository"
	"github.com/flavorconnect/flavorconnect/internal/service"
)

// openDB loads config from the environment and connects to the app database
func openDB() (*config.Config, *sqlx.DB, error) {
	cfg := config.Load()
	logger.Init(cfg.AppEnv, "")

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return cfg, database, nil
}

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}

	steps := map[string]struct {
		short string
		run   func(cfg *config.Config, database *sqlx.DB) error
	}{
		"up": {"Apply all pending migrations", func(cfg *config.Config, database *sqlx.DB) error {
			return db.RunMigrations(database.DB, cfg.DBDriver)
		}},
		"down": {"Roll back the most recent migration", func(cfg *config.Config, database *sqlx.DB) error {
			return db.MigrateDown(database.DB, cfg.DBDriver)
		}},
		"status": {"Print the state of every migration", func(cfg *config.Config, database *sqlx.DB) error {
			return db.MigrationStatus(database.DB, cfg.DBDriver)
		}},
	}

	for _, name := range []string{"up", "down", "status"} {
		step := steps[name]
		cmd.AddCommand(&cobra.Command{
			Use:   name,
			Short: step.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, database, err := openDB()
				if err != nil {
					return err
				}
				defer db.Close(database)
				return step.run(cfg, database)
			},
		})
	}

	return cmd
}

func CreateAdminCmd() *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a super admin account if the username is free",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close(database)

			if err := db.RunMigrations(database.DB, cfg.DBDriver); err != nil {
				return err
			}

			emailService := service.NewEmailService(cfg.ResendAPIKey, cfg.EmailFrom, cfg.AppURL, cfg.AppName, cfg.IsDevelopment())
			authService := service.NewAuthService(repository.NewUserRepository(database), emailService)

			user, err := authService.EnsureSuperAdmin(username, email, password)
			if err != nil {
				return err
			}
			if user == nil {
				return fmt.Errorf("username, email and password are all required")
			}

			fmt.Printf("super admin %q ready (id %s)\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username")
	cmd.Flags().StringVarP(&email, "email", "e", "", "admin email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
