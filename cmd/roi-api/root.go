package main

import (
	"github.com/ap-automation/roi-planner/internal/config"
	"github.com/ap-automation/roi-planner/pkg/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	migrationsFolder string
)

var rootCmd = &cobra.Command{
	Use:   "roi-api",
	Short: "Invoice automation ROI planner API",
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(runCmd)

	rootCmd.PersistentFlags().StringVar(&migrationsFolder, "migrations-folder", "", "Folder with the sql migrations. The embedded migrations are used when empty")
}

// setup loads the configuration and installs the global zap logger. The returned func restores it.
func setup() (*config.Config, func(), error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}

	logger := log.InitLog(log.ParseLevel(cfg.Service.LogLevel), cfg.Service.LogFormat)
	undo := zap.ReplaceGlobals(logger)

	return cfg, func() {
		_ = logger.Sync()
		undo()
	}, nil
}
