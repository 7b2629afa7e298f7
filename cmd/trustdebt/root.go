package main

import (
	"os"

	"github.com/spf13/cobra"

	"trustdebt/internal/config"
	"trustdebt/internal/logging"
	"trustdebt/internal/version"
)

var (
	repoFlag      string
	logLevelFlag  string
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "trustdebt",
	Short: "trustdebt - intent vs reality drift analysis",
	Long: `trustdebt quantifies the drift between what a project's documentation
promises and what its commit history actually delivers. It scores both
signals against a category taxonomy, builds an asymmetric drift matrix,
and grades the aggregate trust debt.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("trustdebt version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", "", "Repository root (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format: human, json")
}

// mustGetRepoRoot resolves the repository root from the flag or cwd.
func mustGetRepoRoot() string {
	if repoFlag != "" {
		return repoFlag
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

// newLogger builds a logger from config defaults overridden by flags.
func newLogger(cfg *config.Config) *logging.Logger {
	format := cfg.Logging.Format
	if logFormatFlag != "" {
		format = logFormatFlag
	}
	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	return logging.NewLogger(logging.Config{
		Format: logging.Format(format),
		Level:  logging.ParseLevel(level),
	})
}
