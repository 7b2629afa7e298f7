package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"trustdebt/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration and starter taxonomy",
	Long: `Write .trustdebt/config.json with defaults and a starter
.trustdebt/categories.yaml to edit. Refuses to overwrite existing files
unless --force is given.`,
	Run: runInit,
}

// starterCatalog is a deliberately orthogonal starting point; projects
// are expected to replace it with their own vocabulary.
const starterCatalog = `version: 1
categories:
  - id: performance
    name: Performance
    keywords: [latency, throughput, cache, optimize, benchmark]
    weight: 1.0
  - id: security
    name: Security
    keywords: [auth, token, encryption, vulnerability, sanitize]
    weight: 1.0
  - id: reliability
    name: Reliability
    keywords: [retry, timeout, crash, recover, failover]
    weight: 1.0
  - id: usability
    name: Usability
    keywords: [cli, prompt, help, readable, ergonomics]
    weight: 1.0
`

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) {
	repoRoot := mustGetRepoRoot()
	dir := filepath.Join(repoRoot, ".trustdebt")

	configPath := filepath.Join(dir, "config.json")
	catalogPath := filepath.Join(dir, "categories.yaml")

	if !initForce {
		for _, path := range []string{configPath, catalogPath} {
			if _, err := os.Stat(path); err == nil {
				fmt.Fprintf(os.Stderr, "%s already exists (use --force to overwrite)\n", path)
				os.Exit(1)
			}
		}
	}

	cfg := config.DefaultConfig()
	cfg.RepoRoot = repoRoot
	if err := cfg.Save(repoRoot); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(catalogPath, []byte(starterCatalog), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing starter taxonomy: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Initialized %s\n", dir)
	fmt.Println("Edit .trustdebt/categories.yaml to match your project's vocabulary,")
	fmt.Println("then run `trustdebt categories` to check orthogonality.")
}
