package commands

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yukikurage/company-task-api/internal/auth"
	"github.com/yukikurage/company-task-api/internal/database"
	"github.com/yukikurage/company-task-api/internal/events"
	"github.com/yukikurage/company-task-api/internal/server"
)

var serveSkipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		gin.SetMode(cfg.GinMode)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		db, err := database.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer database.Close(db)

		if !serveSkipMigrate {
			if err := database.Migrate(db); err != nil {
				return err
			}
		}

		tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTokenTTL)
		if err != nil {
			return err
		}

		publisher, err := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return fmt.Errorf("failed to create event publisher: %w", err)
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				slog.Warn("failed to close event publisher", "error", err)
			}
		}()

		logger := slog.Default()
		router := server.NewRouter(server.Deps{
			DB:        db,
			Tokens:    tokens,
			Publisher: publisher,
			Logger:    logger,
		})

		return server.New(":"+cfg.Port, router, logger).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveSkipMigrate, "skip-migrate", false, "do not run migrations on start")
}
