package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trustdebt/internal/analyzer"
	"trustdebt/internal/config"
	"trustdebt/internal/output"
)

var (
	ciThreshold float64
	ciFormat    string
)

var ciCmd = &cobra.Command{
	Use:   "ci",
	Short: "Run analysis and fail when total debt exceeds a threshold",
	Long: `Run a trust-debt analysis and exit non-zero when the total debt
exceeds the given threshold. Intended for CI gates.

Exit codes:
  0  total debt within threshold
  1  analysis failed
  3  total debt exceeds threshold

Examples:
  trustdebt ci --threshold=1000
  trustdebt ci --threshold=500 --format=human`,
	Run: runCI,
}

func init() {
	ciCmd.Flags().Float64Var(&ciThreshold, "threshold", 0, "Maximum acceptable total debt (required)")
	ciCmd.Flags().StringVar(&ciFormat, "format", "human", "Output format (json, human)")
	_ = ciCmd.MarkFlagRequired("threshold")
	rootCmd.AddCommand(ciCmd)
}

func runCI(cmd *cobra.Command, args []string) {
	repoRoot := mustGetRepoRoot()

	cfg, err := config.LoadConfig(repoRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)

	report, err := analyzer.New(cfg, logger).Run(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, err := FormatResponse(report, OutputFormat(ciFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)

	if report.TotalDebt > ciThreshold {
		fmt.Fprintf(os.Stderr, "FAIL: total debt %s exceeds threshold %s\n",
			output.FormatFloat(report.TotalDebt), output.FormatFloat(ciThreshold))
		os.Exit(3)
	}

	fmt.Fprintf(os.Stderr, "OK: total debt %s within threshold %s\n",
		output.FormatFloat(report.TotalDebt), output.FormatFloat(ciThreshold))
}
