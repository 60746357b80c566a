package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "gig-marketplace.com/gig-marketplace/internal/configs"
	httpapi "gig-marketplace.com/gig-marketplace/internal/http"
	repository "gig-marketplace.com/gig-marketplace/internal/repositories"
	"gig-marketplace.com/gig-marketplace/internal/search"
	"gig-marketplace.com/gig-marketplace/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the gig marketplace HTTP API and the maintenance loop that flushes views and expires stale gigs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		database, err := config.NewDatabaseClient(cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		gigRepo := repository.NewGigRepository(database, cfg.StoreTimeout())

		views, closeViews, err := newViewCounter(cfg)
		if err != nil {
			return err
		}
		defer closeViews()

		gigService := services.NewGigService(gigRepo, views, logger)
		applicationService := services.NewApplicationService(gigRepo, cfg.MutationRetries, logger)
		searchService := search.NewService(gigRepo, logger)
		maintenance := services.NewMaintenanceService(gigRepo, views, logger, cfg.MaintenanceWorkers, cfg.SweepInterval())

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true

		handler := httpapi.NewHandler(gigService, applicationService, searchService, logger)
		httpapi.Register(e, handler, cfg.RateLimit)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.AppURL(), "view_counter", cfg.ViewCounter)
			if err := e.Start(cfg.AppURL()); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server stopped", "err", err)
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Warn("HTTP shutdown incomplete", "err", err)
		}
		maintenance.Shutdown(shutdownCtx)

		logger.Info("HTTP server and maintenance loop shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
