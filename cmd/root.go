package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pable/go-floorball-stats/internal/config"
)

var (
	cfg      config.Config
	dbPath   string
	logLevel string
	workers  int
)

var rootCmd = &cobra.Command{
	Use:   "flstats",
	Short: "Floorball career statistics",
	Long: `Import floorball match protocols and secretariat uploads, replay their
events and compute per-player season and career statistics, including
power-play and short-handed scoring.`,
	SilenceUsage:      true,
	PersistentPreRunE: applyConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cfg = config.Load()

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.DBPath, "path to SQLite database (env "+config.EnvDB+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel.String(), "debug, info, warn or error (env "+config.EnvLogLevel+")")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", cfg.Workers, "worker pool size for multi-player commands (env "+config.EnvWorkers+")")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(careerCmd)
	rootCmd.AddCommand(leadersCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(shellCmd)
}

// applyConfig folds flag values over the loaded configuration.
func applyConfig(cmd *cobra.Command, _ []string) error {
	log.SetOutput(os.Stderr)

	lvl, err := config.ParseLevel(logLevel)
	if err != nil {
		log.Warn("invalid --log-level, using configured level", "value", logLevel, "level", cfg.LogLevel)
		lvl = cfg.LogLevel
	}
	log.SetLevel(lvl)
	cfg.LogLevel = lvl

	if workers < 1 {
		log.Warn("invalid --workers, using configured value", "value", workers, "workers", cfg.Workers)
		workers = cfg.Workers
	}
	cfg.Workers = workers
	cfg.DBPath = dbPath

	log.Debug("configuration", "db", cfg.DBPath, "workers", cfg.Workers, "command", cmd.Name())
	return nil
}
