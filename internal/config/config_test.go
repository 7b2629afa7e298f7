package config

import (
	"os"
	"path/filepath"
	"testing"

	"trustdebt/internal/errors"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig should validate: %v", err)
	}
	if cfg.Analysis.WindowDays != 7 {
		t.Errorf("default window = %d, want 7", cfg.Analysis.WindowDays)
	}
	if cfg.Validation.OrthogonalityThreshold != 0.75 {
		t.Errorf("default orthogonality threshold = %v, want 0.75", cfg.Validation.OrthogonalityThreshold)
	}
	if cfg.Documents.MaxContentLength != 50000 {
		t.Errorf("default content cap = %d, want 50000", cfg.Documents.MaxContentLength)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig on empty dir: %v", err)
	}
	if cfg.RepoRoot != dir {
		t.Errorf("RepoRoot = %q, want %q", cfg.RepoRoot, dir)
	}
	if len(cfg.Grading.Boundaries) != 5 {
		t.Errorf("default grade table has %d tiers, want 5", len(cfg.Grading.Boundaries))
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".trustdebt"), 0755); err != nil {
		t.Fatal(err)
	}
	content := `{
  "analysis": {"windowDays": 30},
  "validation": {"strictMode": true}
}`
	if err := os.WriteFile(filepath.Join(dir, ".trustdebt", "config.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Analysis.WindowDays != 30 {
		t.Errorf("windowDays = %d, want 30", cfg.Analysis.WindowDays)
	}
	if !cfg.Validation.StrictMode {
		t.Error("strictMode should be true")
	}
	// Untouched sections keep defaults
	if cfg.Calibration.SophisticationDiscount != 0.30 {
		t.Errorf("sophisticationDiscount = %v, want default 0.30", cfg.Calibration.SophisticationDiscount)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".trustdebt"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".trustdebt", "config.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(dir)
	if err == nil {
		t.Fatal("malformed config should fail")
	}
	if errors.CodeOf(err) != errors.ConfigInvalid {
		t.Errorf("error code = %v, want ConfigInvalid", errors.CodeOf(err))
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero window", func(c *Config) { c.Analysis.WindowDays = 0 }},
		{"negative content cap", func(c *Config) { c.Documents.MaxContentLength = -1 }},
		{"zero-weight source", func(c *Config) { c.Documents.Sources[0].Weight = 0 }},
		{"threshold above one", func(c *Config) { c.Validation.OrthogonalityThreshold = 1.5 }},
		{"full discount", func(c *Config) { c.Calibration.SophisticationDiscount = 1.0 }},
		{"zero health factor", func(c *Config) { c.Calibration.ProcessHealthFactor = 0 }},
		{"non-ascending grades", func(c *Config) { c.Grading.Boundaries[1].MaxDebt = 50 }},
		{"missing terminal grade", func(c *Config) {
			c.Grading.Boundaries = []GradeBoundary{{Grade: "A", MaxDebt: 100}, {Grade: "B", MaxDebt: 500}}
		}},
		{"inverted asymmetry band", func(c *Config) { c.Grading.AsymmetryHealthyMax = 0.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate should reject")
			}
			if errors.CodeOf(err) != errors.ConfigInvalid {
				t.Errorf("error code = %v, want ConfigInvalid", errors.CodeOf(err))
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Analysis.WindowDays = 14

	if err := cfg.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig after Save: %v", err)
	}
	if loaded.Analysis.WindowDays != 14 {
		t.Errorf("round-tripped windowDays = %d, want 14", loaded.Analysis.WindowDays)
	}
}
