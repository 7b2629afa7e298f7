package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trustdebt/internal/analyzer"
	"trustdebt/internal/config"
	"trustdebt/internal/storage"
)

var (
	analyzeFormat     string
	analyzeStrict     bool
	analyzeWindow     int
	analyzeBranch     string
	analyzePathFilter string
	analyzeNoPersist  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze intent/reality drift and grade the trust debt",
	Long: `Run a full trust-debt analysis: score the commit window and the
documentation sources against the category taxonomy, build the drift
matrix, and grade the aggregate debt.

Examples:
  trustdebt analyze
  trustdebt analyze --window=30
  trustdebt analyze --strict
  trustdebt analyze --branch=main --path-filter=internal/
  trustdebt analyze --format=human`,
	Run: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "json", "Output format (json, human)")
	analyzeCmd.Flags().BoolVar(&analyzeStrict, "strict", false, "Abort on orthogonality violations instead of warning")
	analyzeCmd.Flags().IntVar(&analyzeWindow, "window", 0, "Commit window in days (overrides config)")
	analyzeCmd.Flags().StringVar(&analyzeBranch, "branch", "", "Restrict history to a branch")
	analyzeCmd.Flags().StringVar(&analyzePathFilter, "path-filter", "", "Restrict history to a path prefix")
	analyzeCmd.Flags().BoolVar(&analyzeNoPersist, "no-persist", false, "Skip writing the run to the history store")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) {
	repoRoot := mustGetRepoRoot()

	cfg, err := config.LoadConfig(repoRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyAnalyzeFlags(cfg)

	logger := newLogger(cfg)

	report, err := analyzer.New(cfg, logger).Run(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !analyzeNoPersist {
		persistRun(repoRoot, cfg, report)
	}

	out, err := FormatResponse(report, OutputFormat(analyzeFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)
}

func applyAnalyzeFlags(cfg *config.Config) {
	if analyzeStrict {
		cfg.Validation.StrictMode = true
	}
	if analyzeWindow > 0 {
		cfg.Analysis.WindowDays = analyzeWindow
	}
	if analyzeBranch != "" {
		cfg.Analysis.Branch = analyzeBranch
	}
	if analyzePathFilter != "" {
		cfg.Analysis.PathFilter = analyzePathFilter
	}
}

// persistRun saves the run to the history store. Persistence failures
// never fail the analysis; the report already exists.
func persistRun(repoRoot string, cfg *config.Config, report *analyzer.Report) {
	logger := newLogger(cfg)

	history, err := storage.Open(repoRoot, logger)
	if err != nil {
		logger.Warn("History store unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	defer func() { _ = history.Close() }()

	if err := history.SaveRun(report); err != nil {
		logger.Warn("Failed to persist run", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
