package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "gig-marketplace.com/gig-marketplace/internal/configs"
	"gig-marketplace.com/gig-marketplace/internal/queue"
	"gig-marketplace.com/gig-marketplace/pkg/logging"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "gig-marketplace",
	Short:         "Location-aware gig marketplace service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "optional YAML config file; environment variables override it")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// loadConfig reads .env, the optional config file and the environment, and
// builds the logger at the configured level.
func loadConfig() (config.Config, *logging.Logger, error) {
	envErr := godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}

	logger := logging.New(cfg.LogLevel)
	if envErr != nil {
		logger.Debug(".env file not found, using environment variables")
	}
	return cfg, logger, nil
}

func newViewCounter(cfg config.Config) (queue.ViewCounter, func(), error) {
	if cfg.ViewCounter != "redis" {
		return queue.NewMemoryViewCounter(), func() {}, nil
	}

	client, err := config.NewRedisClient(cfg.RedisAddr())
	if err != nil {
		return nil, nil, err
	}
	return queue.NewRedisViewCounter(client, cfg.RedisViewsKey), client.Close, nil
}
