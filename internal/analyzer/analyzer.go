// Package analyzer orchestrates one trust-debt analysis run: extract,
// validate, score, build, aggregate. Each run is self-contained; no
// state survives between invocations.
package analyzer

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"trustdebt/internal/config"
	"trustdebt/internal/debt"
	"trustdebt/internal/errors"
	"trustdebt/internal/logging"
	"trustdebt/internal/matrix"
	"trustdebt/internal/signals"
	"trustdebt/internal/taxonomy"
)

// Report is the terminal output of the core: the debt assessment plus
// run provenance and accumulated warnings. It either exists complete or
// the run failed with a typed error; there is no partial in-between.
type Report struct {
	RunID       string    `json:"runId"`
	GeneratedAt time.Time `json:"generatedAt"`
	RepoRoot    string    `json:"repoRoot"`
	DurationMs  int64     `json:"durationMs"`

	Window      signals.Window `json:"window"`
	CommitCount int            `json:"commitCount"`
	DocCount    int            `json:"docCount"`

	TotalDebt         float64                    `json:"totalDebt"`
	FinalDebt         float64                    `json:"finalDebt"`
	Grade             string                     `json:"grade"`
	DiagonalHealth    string                     `json:"diagonalHealth"`
	Asymmetry         debt.AsymmetryRatio        `json:"asymmetry"`
	CategoryBreakdown map[string]float64         `json:"categoryBreakdown"`
	WorstDrifts       []debt.DriftEntry          `json:"worstDrifts"`
	Orthogonality     float64                    `json:"orthogonality"`
	Validation        *taxonomy.ValidationResult `json:"validation"`

	Warnings []signals.Warning `json:"warnings,omitempty"`
}

// Analyzer runs the pipeline for one repository.
type Analyzer struct {
	cfg    *config.Config
	logger *logging.Logger
}

// New creates an Analyzer.
func New(cfg *config.Config, logger *logging.Logger) *Analyzer {
	return &Analyzer{cfg: cfg, logger: logger}
}

// Run executes one full analysis. Validation failures short-circuit
// only in strict mode; extraction problems accumulate as warnings so a
// single missing document never prevents a best-effort score.
func (a *Analyzer) Run(ctx context.Context) (*Report, error) {
	start := time.Now()

	catalogPath := a.cfg.Analysis.CategoryFile
	if !filepath.IsAbs(catalogPath) {
		catalogPath = filepath.Join(a.cfg.RepoRoot, catalogPath)
	}

	catalog, err := taxonomy.LoadCatalog(catalogPath)
	if err != nil {
		return nil, err
	}

	orthoMatrix, validation := taxonomy.ComputeOrthogonality(
		catalog.Categories, a.cfg.Validation.OrthogonalityThreshold)

	var warnings []signals.Warning
	if !validation.Passed {
		if a.cfg.Validation.StrictMode {
			return nil, errors.New(errors.OrthogonalityViolation,
				fmt.Sprintf("%d category pairs fall below the %.2f independence threshold",
					len(validation.FailedPairs), validation.Threshold), nil).
				WithDetails(validation.FailedPairs)
		}
		for _, pair := range validation.FailedPairs {
			warnings = append(warnings, signals.Warning{
				Code:    string(errors.OrthogonalityViolation),
				Message: fmt.Sprintf("Categories %s and %s overlap (orthogonality %.3f)", pair.CategoryA, pair.CategoryB, pair.Orthogonality),
				Subject: pair.CategoryA + "/" + pair.CategoryB,
			})
		}
		a.logger.Warn("Category set failed orthogonality validation; continuing", map[string]interface{}{
			"failedPairs": len(validation.FailedPairs),
		})
	}

	extractor, err := signals.NewExtractor(a.cfg, a.logger)
	if err != nil {
		return nil, err
	}

	window := signals.WindowFromDays(a.cfg.Analysis.WindowDays, time.Now())
	reality, err := extractor.ExtractReality(ctx, window, a.cfg.Analysis.Branch, a.cfg.Analysis.PathFilter)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, reality.Warnings...)

	intent := extractor.ExtractIntent(a.cfg.Documents.Sources, a.cfg.Documents.MaxContentLength)
	warnings = append(warnings, intent.Warnings...)

	driftMatrix, err := matrix.NewBuilder(a.logger).Build(catalog, intent, reality)
	if err != nil {
		return nil, err
	}

	result := debt.NewCalculator(a.cfg, a.logger).Calculate(driftMatrix)

	report := &Report{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now(),
		RepoRoot:    a.cfg.RepoRoot,
		DurationMs:  time.Since(start).Milliseconds(),

		Window:      window,
		CommitCount: len(reality.Commits),
		DocCount:    len(intent.Documents),

		TotalDebt:         result.TotalRawDebt,
		FinalDebt:         result.FinalDebt,
		Grade:             result.Grade,
		DiagonalHealth:    result.DiagonalHealth,
		Asymmetry:         result.Asymmetry,
		CategoryBreakdown: result.CategoryBreakdown,
		WorstDrifts:       result.WorstDrifts,
		Orthogonality:     orthoMatrix.Mean(),
		Validation:        validation,

		Warnings: warnings,
	}

	a.logger.Info("Analysis complete", map[string]interface{}{
		"runId":     report.RunID,
		"totalDebt": report.TotalDebt,
		"grade":     report.Grade,
		"warnings":  len(report.Warnings),
		"duration":  report.DurationMs,
	})

	return report, nil
}
