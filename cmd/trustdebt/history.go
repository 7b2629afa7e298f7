package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trustdebt/internal/config"
	"trustdebt/internal/storage"
)

var (
	historyFormat string
	historyLimit  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past analysis runs",
	Long: `List the most recent analysis runs recorded in the history store.

Examples:
  trustdebt history
  trustdebt history --limit=50
  trustdebt history --format=json`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyFormat, "format", "human", "Output format (json, human)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum runs to list")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	repoRoot := mustGetRepoRoot()

	cfg, err := config.LoadConfig(repoRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	history, err := storage.Open(repoRoot, newLogger(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = history.Close() }()

	runs, err := history.ListRuns(historyLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, err := FormatResponse(runs, OutputFormat(historyFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)
}
