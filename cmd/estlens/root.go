package main

import (
	"estlens/internal/config"
	"estlens/internal/logging"
	"estlens/internal/version"

	"github.com/spf13/cobra"
)

var (
	// rootFlag is the CLI --root flag value: the directory holding .estlens/
	rootFlag string
)

var rootCmd = &cobra.Command{
	Use:   "estlens",
	Short: "estlens - event estimate analytics precompute",
	Long: `estlens turns the extraction pipeline's historical estimate records into the
denormalized report artifacts consumed by the cost dashboard: executive summary,
cost analysis, bid/recap variance, manager performance, rate card digest, and
the AI estimation context.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("estlens version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", ".",
		"Project root containing the .estlens directory")
}

// newLogger builds the run logger from the loaded configuration.
func newLogger(cfg *config.Config) *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.LogLevel(cfg.Logging.Level),
	})
}
