package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"trustdebt/internal/errors"
)

// Config represents the complete trustdebt configuration
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	RepoRoot string `json:"repoRoot" mapstructure:"repoRoot"`

	Analysis    AnalysisConfig    `json:"analysis" mapstructure:"analysis"`
	Documents   DocumentsConfig   `json:"documents" mapstructure:"documents"`
	Validation  ValidationConfig  `json:"validation" mapstructure:"validation"`
	Calibration CalibrationConfig `json:"calibration" mapstructure:"calibration"`
	Grading     GradingConfig     `json:"grading" mapstructure:"grading"`
	Logging     LoggingConfig     `json:"logging" mapstructure:"logging"`
}

// AnalysisConfig controls commit-history extraction
type AnalysisConfig struct {
	// CategoryFile is the taxonomy file, repo-relative (.yaml, .yml, or .toml)
	CategoryFile string `json:"categoryFile" mapstructure:"categoryFile"`
	// WindowDays is the commit-history window for the Reality corpus
	WindowDays int `json:"windowDays" mapstructure:"windowDays"`
	// Branch restricts history to one branch (empty = current HEAD)
	Branch string `json:"branch,omitempty" mapstructure:"branch"`
	// PathFilter restricts history to commits touching this path prefix
	PathFilter string `json:"pathFilter,omitempty" mapstructure:"pathFilter"`
	// GitTimeoutMs bounds each git invocation
	GitTimeoutMs int `json:"gitTimeoutMs" mapstructure:"gitTimeoutMs"`
}

// DocumentSourceConfig is one weighted documentation source
type DocumentSourceConfig struct {
	Path   string  `json:"path" mapstructure:"path"`
	Weight float64 `json:"weight" mapstructure:"weight"`
}

// DocumentsConfig controls Intent-corpus extraction
type DocumentsConfig struct {
	Sources []DocumentSourceConfig `json:"sources" mapstructure:"sources"`
	// MaxContentLength caps each document, truncated from the start of
	// the file so runs are reproducible
	MaxContentLength int `json:"maxContentLength" mapstructure:"maxContentLength"`
}

// ValidationConfig controls orthogonality gating
type ValidationConfig struct {
	// OrthogonalityThreshold is the minimum allowed pairwise independence
	OrthogonalityThreshold float64 `json:"orthogonalityThreshold" mapstructure:"orthogonalityThreshold"`
	// StrictMode aborts the run on a failed pair instead of warning
	StrictMode bool `json:"strictMode" mapstructure:"strictMode"`
	// CoherenceThreshold is the mean diagonal alignment below which
	// diagonal health is reported as "warning"
	CoherenceThreshold float64 `json:"coherenceThreshold" mapstructure:"coherenceThreshold"`
}

// CalibrationConfig holds the final-score calibration factors.
//
// Both defaults are acknowledged placeholders, not derived constants;
// they exist as named configuration precisely because their values
// materially change the grade.
type CalibrationConfig struct {
	// SophisticationDiscount is subtracted proportionally from raw debt (0-1)
	SophisticationDiscount float64 `json:"sophisticationDiscount" mapstructure:"sophisticationDiscount"`
	// ProcessHealthFactor divides the discounted debt (> 0)
	ProcessHealthFactor float64 `json:"processHealthFactor" mapstructure:"processHealthFactor"`
}

// GradeBoundary maps a grade to its exclusive upper debt bound
type GradeBoundary struct {
	Grade    string  `json:"grade" mapstructure:"grade"`
	MaxDebt  float64 `json:"maxDebt" mapstructure:"maxDebt"`
	Terminal bool    `json:"terminal,omitempty" mapstructure:"terminal"` // grade for everything above the last bound
}

// GradingConfig holds the ordinal grade table.
//
// The boundary table is configuration, not a constant: upstream sources
// disagree on the tiering (a five-tier AAA..D table and a four-tier
// variant), so the canonical default below is the five-tier table and
// deployments that want the other one override it here.
type GradingConfig struct {
	Boundaries []GradeBoundary `json:"boundaries" mapstructure:"boundaries"`
	// AsymmetryHealthyMin/Max bound the healthy build/document band
	AsymmetryHealthyMin float64 `json:"asymmetryHealthyMin" mapstructure:"asymmetryHealthyMin"`
	AsymmetryHealthyMax float64 `json:"asymmetryHealthyMax" mapstructure:"asymmetryHealthyMax"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		RepoRoot: ".",
		Analysis: AnalysisConfig{
			CategoryFile: ".trustdebt/categories.yaml",
			WindowDays:   7,
			GitTimeoutMs: 5000,
		},
		Documents: DocumentsConfig{
			Sources: []DocumentSourceConfig{
				{Path: "README.md", Weight: 0.4},
				{Path: "ARCHITECTURE.md", Weight: 0.35},
				{Path: "docs/README.md", Weight: 0.25},
			},
			MaxContentLength: 50000,
		},
		Validation: ValidationConfig{
			OrthogonalityThreshold: 0.75,
			StrictMode:             false,
			CoherenceThreshold:     0.7,
		},
		Calibration: CalibrationConfig{
			SophisticationDiscount: 0.30,
			ProcessHealthFactor:    1.0,
		},
		Grading: GradingConfig{
			Boundaries: []GradeBoundary{
				{Grade: "AAA", MaxDebt: 100},
				{Grade: "A", MaxDebt: 500},
				{Grade: "B", MaxDebt: 1000},
				{Grade: "C", MaxDebt: 5000},
				{Grade: "D", Terminal: true},
			},
			AsymmetryHealthyMin: 1.2,
			AsymmetryHealthyMax: 2.0,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .trustdebt/config.json under repoRoot.
// A missing config file yields the defaults; a malformed one is a
// ConfigInvalid error.
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("repoRoot", ".")

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ".trustdebt"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			cfg := DefaultConfig()
			cfg.RepoRoot = repoRoot
			return cfg, nil
		}
		return nil, errors.New(errors.ConfigInvalid, "Failed to read config file", err)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.New(errors.ConfigInvalid, "Failed to parse config file", err)
	}
	cfg.RepoRoot = repoRoot

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to .trustdebt/config.json
func (c *Config) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, ".trustdebt")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Analysis.WindowDays <= 0 {
		return errors.New(errors.ConfigInvalid,
			fmt.Sprintf("analysis.windowDays must be positive, got %d", c.Analysis.WindowDays), nil)
	}
	if c.Documents.MaxContentLength <= 0 {
		return errors.New(errors.ConfigInvalid,
			fmt.Sprintf("documents.maxContentLength must be positive, got %d", c.Documents.MaxContentLength), nil)
	}
	for _, src := range c.Documents.Sources {
		if src.Path == "" {
			return errors.New(errors.ConfigInvalid, "documents.sources entries require a path", nil)
		}
		if src.Weight <= 0 {
			return errors.New(errors.ConfigInvalid,
				fmt.Sprintf("document source %q must have positive weight, got %v", src.Path, src.Weight), nil)
		}
	}
	if t := c.Validation.OrthogonalityThreshold; t < 0 || t > 1 {
		return errors.New(errors.ConfigInvalid,
			fmt.Sprintf("validation.orthogonalityThreshold must be in [0,1], got %v", t), nil)
	}
	if t := c.Validation.CoherenceThreshold; t < 0 || t > 1 {
		return errors.New(errors.ConfigInvalid,
			fmt.Sprintf("validation.coherenceThreshold must be in [0,1], got %v", t), nil)
	}
	if d := c.Calibration.SophisticationDiscount; d < 0 || d >= 1 {
		return errors.New(errors.ConfigInvalid,
			fmt.Sprintf("calibration.sophisticationDiscount must be in [0,1), got %v", d), nil)
	}
	if f := c.Calibration.ProcessHealthFactor; f <= 0 {
		return errors.New(errors.ConfigInvalid,
			fmt.Sprintf("calibration.processHealthFactor must be positive, got %v", f), nil)
	}
	if err := c.validateGrading(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateGrading() error {
	bounds := c.Grading.Boundaries
	if len(bounds) < 2 {
		return errors.New(errors.ConfigInvalid, "grading.boundaries requires at least two grades", nil)
	}
	last := bounds[len(bounds)-1]
	if !last.Terminal {
		return errors.New(errors.ConfigInvalid, "the last grade boundary must be terminal", nil)
	}
	prev := -1.0
	for i, b := range bounds {
		if b.Grade == "" {
			return errors.New(errors.ConfigInvalid, "grade boundaries require a grade label", nil)
		}
		if b.Terminal {
			if i != len(bounds)-1 {
				return errors.New(errors.ConfigInvalid, "only the last grade boundary may be terminal", nil)
			}
			continue
		}
		if b.MaxDebt <= prev {
			return errors.New(errors.ConfigInvalid,
				fmt.Sprintf("grade boundaries must ascend strictly: %q at %v follows %v", b.Grade, b.MaxDebt, prev), nil)
		}
		prev = b.MaxDebt
	}
	if c.Grading.AsymmetryHealthyMin <= 0 || c.Grading.AsymmetryHealthyMax <= c.Grading.AsymmetryHealthyMin {
		return errors.New(errors.ConfigInvalid, "grading asymmetry band must satisfy 0 < min < max", nil)
	}
	return nil
}
