package cmd

import (
	"github.com/spf13/cobra"

	config "gig-marketplace.com/gig-marketplace/internal/configs"
	repository "gig-marketplace.com/gig-marketplace/internal/repositories"
	"gig-marketplace.com/gig-marketplace/internal/services"
)

var expireCmd = &cobra.Command{
	Use:   "expire",
	Short: "Run one maintenance sweep and exit",
	Long:  "Flushes buffered view counts and marks posted gigs past their expiry as expired",
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

		maintenance := services.NewMaintenanceService(gigRepo, views, logger, 0, 0)
		ctx := cmd.Context()

		flushed, err := maintenance.FlushViews(ctx)
		if err != nil {
			return err
		}
		expired, err := maintenance.ExpireStale(ctx)
		if err != nil {
			return err
		}

		logger.Info("maintenance sweep finished", "gigs_with_views", flushed, "expired", expired)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(expireCmd)
}
