package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"trustdebt/internal/config"
	"trustdebt/internal/taxonomy"
)

var (
	categoriesFormat  string
	categoriesSuggest bool
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Validate the category taxonomy and show pairwise independence",
	Long: `Load the category taxonomy, compute the orthogonality matrix, and
report pairs that fall below the independence threshold.

Examples:
  trustdebt categories
  trustdebt categories --suggest
  trustdebt categories --format=human`,
	Run: runCategories,
}

func init() {
	categoriesCmd.Flags().StringVar(&categoriesFormat, "format", "json", "Output format (json, human)")
	categoriesCmd.Flags().BoolVar(&categoriesSuggest, "suggest", false, "Propose keyword refinements for failing pairs")
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) {
	repoRoot := mustGetRepoRoot()

	cfg, err := config.LoadConfig(repoRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	catalogPath := cfg.Analysis.CategoryFile
	if !filepath.IsAbs(catalogPath) {
		catalogPath = filepath.Join(repoRoot, catalogPath)
	}

	catalog, err := taxonomy.LoadCatalog(catalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	orthoMatrix, validation := taxonomy.ComputeOrthogonality(
		catalog.Categories, cfg.Validation.OrthogonalityThreshold)

	resp := &categoriesResponse{
		Catalog:    catalog,
		Matrix:     orthoMatrix,
		Validation: validation,
	}
	if categoriesSuggest && !validation.Passed {
		resp.Suggestions = taxonomy.SuggestRefinements(catalog, validation)
	}

	out, err := FormatResponse(resp, OutputFormat(categoriesFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)

	if !validation.Passed {
		os.Exit(2)
	}
}
