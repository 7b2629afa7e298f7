package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"trustdebt/internal/analyzer"
	"trustdebt/internal/output"
	"trustdebt/internal/storage"
	"trustdebt/internal/taxonomy"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *analyzer.Report:
		return formatReportHuman(v), nil
	case *categoriesResponse:
		return formatCategoriesHuman(v), nil
	case []storage.RunSummary:
		return formatHistoryHuman(v), nil
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatReportHuman(r *analyzer.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Trust Debt Analysis (%s)\n", r.RunID)
	fmt.Fprintf(&b, "  Grade:            %s\n", r.Grade)
	fmt.Fprintf(&b, "  Total debt:       %s units\n", output.FormatFloat(r.TotalDebt))
	fmt.Fprintf(&b, "  Calibrated debt:  %s units\n", output.FormatFloat(r.FinalDebt))
	fmt.Fprintf(&b, "  Diagonal health:  %s\n", r.DiagonalHealth)
	fmt.Fprintf(&b, "  Orthogonality:    %s\n", output.FormatFloat(r.Orthogonality))
	if r.Asymmetry.Defined {
		fmt.Fprintf(&b, "  Asymmetry:        %s (%s)\n", output.FormatFloat(r.Asymmetry.Value), r.Asymmetry.Band)
	} else {
		fmt.Fprintf(&b, "  Asymmetry:        undefined (no intent-dominant drift)\n")
	}
	fmt.Fprintf(&b, "  Commits scanned:  %d\n", r.CommitCount)
	fmt.Fprintf(&b, "  Docs read:        %d\n", r.DocCount)

	if len(r.CategoryBreakdown) > 0 {
		fmt.Fprintf(&b, "\nPer-category debt:\n")
		for _, id := range sortedKeys(r.CategoryBreakdown) {
			fmt.Fprintf(&b, "  %-20s %s\n", id, output.FormatFloat(r.CategoryBreakdown[id]))
		}
	}

	if len(r.WorstDrifts) > 0 {
		fmt.Fprintf(&b, "\nWorst drifts:\n")
		limit := 5
		if len(r.WorstDrifts) < limit {
			limit = len(r.WorstDrifts)
		}
		for _, d := range r.WorstDrifts[:limit] {
			kind := "pair"
			if d.IsDiagonal {
				kind = "self"
			}
			fmt.Fprintf(&b, "  %s -> %s  %s units (%s, %s-dominant)\n",
				d.From, d.To, output.FormatFloat(d.Debt), kind, d.DominantSide)
		}
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(&b, "\nWarnings:\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "  [%s] %s", w.Code, w.Message)
			if w.Subject != "" {
				fmt.Fprintf(&b, " (%s)", w.Subject)
			}
			fmt.Fprintln(&b)
		}
	}

	return b.String()
}

func formatCategoriesHuman(resp *categoriesResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Categories (%d):\n", len(resp.Catalog.Categories))
	for _, c := range resp.Catalog.Categories {
		fmt.Fprintf(&b, "  %-16s weight=%s keywords=%d depth=%d\n",
			c.ID, output.FormatFloat(c.Weight), len(c.Keywords), c.Depth)
	}

	fmt.Fprintf(&b, "\nOrthogonality: min=%s mean=%s threshold=%s\n",
		output.FormatFloat(resp.Validation.MinScore),
		output.FormatFloat(resp.Validation.MeanScore),
		output.FormatFloat(resp.Validation.Threshold))

	if resp.Validation.Passed {
		fmt.Fprintf(&b, "Validation: passed\n")
	} else {
		fmt.Fprintf(&b, "Validation: %d failed pairs\n", len(resp.Validation.FailedPairs))
		for _, pair := range resp.Validation.FailedPairs {
			fmt.Fprintf(&b, "  %s / %s: %s (shared: %s)\n",
				pair.CategoryA, pair.CategoryB,
				output.FormatFloat(pair.Orthogonality),
				strings.Join(pair.Overlap, ", "))
		}
	}

	if len(resp.Suggestions) > 0 {
		fmt.Fprintf(&b, "\nRefinement suggestions:\n")
		for _, s := range resp.Suggestions {
			fmt.Fprintf(&b, "  [%s] %s\n", s.Action, s.Rationale)
		}
	}

	return b.String()
}

func formatHistoryHuman(runs []storage.RunSummary) string {
	if len(runs) == 0 {
		return "No runs recorded yet. Run `trustdebt analyze` first.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-38s %-22s %8s %8s %6s %s\n",
		"RUN", "WHEN", "RAW", "FINAL", "GRADE", "WARN")
	for _, r := range runs {
		fmt.Fprintf(&b, "%-38s %-22s %8s %8s %6s %d\n",
			r.RunID,
			r.GeneratedAt.Local().Format("2006-01-02 15:04:05"),
			output.FormatFloat(r.TotalDebt),
			output.FormatFloat(r.FinalDebt),
			r.Grade,
			r.Warnings)
	}
	return b.String()
}

// categoriesResponse is the CLI payload for the categories command.
type categoriesResponse struct {
	Catalog     *taxonomy.Catalog             `json:"catalog"`
	Matrix      *taxonomy.OrthogonalityMatrix `json:"matrix"`
	Validation  *taxonomy.ValidationResult    `json:"validation"`
	Suggestions []taxonomy.Suggestion         `json:"suggestions,omitempty"`
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
