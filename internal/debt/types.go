// Package debt aggregates the drift matrix into a graded trust-debt
// assessment.
package debt

import "trustdebt/internal/matrix"

// DriftEntry is one ranked cell in the worst-drift list.
type DriftEntry struct {
	From         string      `json:"from"`
	To           string      `json:"to"`
	Debt         float64     `json:"debt"`
	Intent       float64     `json:"intent"`
	Reality      float64     `json:"reality"`
	IsDiagonal   bool        `json:"isDiagonal"`
	DominantSide matrix.Side `json:"dominantSide"`
}

// AsymmetryRatio reports upperSum/lowerSum with an explicit sentinel for
// the degenerate lowerSum = 0 case. The ratio is never NaN or Inf.
type AsymmetryRatio struct {
	Defined bool    `json:"defined"`
	Value   float64 `json:"value,omitempty"`
	Band    string  `json:"band"`
}

// Asymmetry band labels.
const (
	BandHealthy         = "healthy"
	BandOverDocumented  = "over-documentation"
	BandUnderDocumented = "under-documentation"
	BandUndefined       = "undefined"
)

// Diagonal health labels.
const (
	DiagonalHealthy = "healthy"
	DiagonalWarning = "warning"
)

// Result is the aggregate assessment of one drift matrix. It is the
// core's terminal output, handed to report collaborators, and must stay
// serializable.
type Result struct {
	TotalRawDebt float64 `json:"totalRawDebt"`
	FinalDebt    float64 `json:"finalDebt"`

	DiagonalSum float64 `json:"diagonalSum"`
	UpperSum    float64 `json:"upperSum"`
	LowerSum    float64 `json:"lowerSum"`

	Asymmetry AsymmetryRatio `json:"asymmetry"`

	// CategoryBreakdown assigns every cell to its row category, so the
	// values sum exactly to TotalRawDebt
	CategoryBreakdown map[string]float64 `json:"categoryBreakdown"`

	WorstDrifts []DriftEntry `json:"worstDrifts"`

	DiagonalHealth string `json:"diagonalHealth"`
	Grade          string `json:"grade"`
}
