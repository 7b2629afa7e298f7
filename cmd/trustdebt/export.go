package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"trustdebt/internal/config"
	"trustdebt/internal/storage"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the latest analysis report as compressed JSON",
	Long: `Write the most recent analysis report as zstd-compressed JSON, for
downstream report renderers and badge generators.

Examples:
  trustdebt export --out=report.json.zst`,
	Run: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "trustdebt-report.json.zst", "Output file path")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) {
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

	report, err := history.LatestReport()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if report == nil {
		fmt.Fprintln(os.Stderr, "No runs recorded yet. Run `trustdebt analyze` first.")
		os.Exit(1)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(exportOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", exportOut, err)
		os.Exit(1)
	}
	defer func() { _ = f.Close() }()

	enc, err := zstd.NewWriter(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if _, err := enc.Write(data); err != nil {
		_ = enc.Close()
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", exportOut, err)
		os.Exit(1)
	}
	if err := enc.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error finalizing %s: %v\n", exportOut, err)
		os.Exit(1)
	}

	fmt.Printf("Exported run %s to %s (%d bytes raw)\n", report.RunID, exportOut, len(data))
}
