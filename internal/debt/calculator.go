package debt

import (
	"math"
	"sort"

	"trustdebt/internal/config"
	"trustdebt/internal/logging"
	"trustdebt/internal/matrix"
)

// Calculator aggregates a drift matrix into a graded Result.
type Calculator struct {
	cfg    *config.Config
	logger *logging.Logger
}

// NewCalculator creates a Calculator.
func NewCalculator(cfg *config.Config, logger *logging.Logger) *Calculator {
	return &Calculator{cfg: cfg, logger: logger}
}

// Calculate sums the matrix triangles independently, derives the
// asymmetry ratio, applies the calibration factors, and grades the
// result. Every cell is counted exactly once: off-diagonal pairs belong
// to their designated triangle only, never both.
func (c *Calculator) Calculate(m *matrix.Matrix) *Result {
	result := &Result{
		CategoryBreakdown: make(map[string]float64, m.Size()),
	}

	var entries []DriftEntry

	m.ForEach(func(i, j int, cell matrix.Cell) {
		switch {
		case i == j:
			result.DiagonalSum += cell.TrustDebtUnits
		case i < j:
			result.UpperSum += cell.TrustDebtUnits
		default:
			result.LowerSum += cell.TrustDebtUnits
		}

		// Each cell is charged to its row category
		result.CategoryBreakdown[cell.RowCategory] += cell.TrustDebtUnits

		entries = append(entries, DriftEntry{
			From:         cell.RowCategory,
			To:           cell.ColCategory,
			Debt:         cell.TrustDebtUnits,
			Intent:       cell.IntentValue,
			Reality:      cell.RealityValue,
			IsDiagonal:   cell.IsDiagonal,
			DominantSide: cell.DominantSide,
		})
	})

	result.TotalRawDebt = result.DiagonalSum + result.UpperSum + result.LowerSum

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Debt > entries[b].Debt
	})
	result.WorstDrifts = entries

	result.Asymmetry = c.asymmetry(result.UpperSum, result.LowerSum)
	result.DiagonalHealth = c.diagonalHealth(m)

	// Calibration factors are explicit configuration, not constants:
	// their values materially change the grade
	cal := c.cfg.Calibration
	result.FinalDebt = result.TotalRawDebt * (1 - cal.SophisticationDiscount) / cal.ProcessHealthFactor

	result.Grade = c.grade(result.FinalDebt)

	c.logger.Debug("Aggregated trust debt", map[string]interface{}{
		"totalRawDebt": result.TotalRawDebt,
		"finalDebt":    result.FinalDebt,
		"grade":        result.Grade,
	})

	return result
}

// asymmetry classifies the build/document balance. lowerSum = 0 is an
// explicit degenerate case reported as undefined, never a division.
func (c *Calculator) asymmetry(upperSum, lowerSum float64) AsymmetryRatio {
	if lowerSum == 0 {
		return AsymmetryRatio{Defined: false, Band: BandUndefined}
	}

	ratio := upperSum / lowerSum
	band := BandHealthy
	switch {
	case ratio < c.cfg.Grading.AsymmetryHealthyMin:
		band = BandOverDocumented
	case ratio > c.cfg.Grading.AsymmetryHealthyMax:
		band = BandUnderDocumented
	}

	return AsymmetryRatio{Defined: true, Value: ratio, Band: band}
}

// diagonalHealth labels the mean self-alignment of all categories.
// Alignment per category is 1 − |intent − reality|.
func (c *Calculator) diagonalHealth(m *matrix.Matrix) string {
	diagonal := m.Diagonal()
	if len(diagonal) == 0 {
		return DiagonalWarning
	}

	sum := 0.0
	for _, cell := range diagonal {
		sum += 1 - math.Abs(cell.IntentValue-cell.RealityValue)
	}
	mean := sum / float64(len(diagonal))

	if mean >= c.cfg.Validation.CoherenceThreshold {
		return DiagonalHealthy
	}
	return DiagonalWarning
}

// grade maps finalDebt onto the configured ascending boundary table.
func (c *Calculator) grade(finalDebt float64) string {
	bounds := c.cfg.Grading.Boundaries
	for _, b := range bounds {
		if b.Terminal {
			return b.Grade
		}
		if finalDebt < b.MaxDebt {
			return b.Grade
		}
	}
	// Unreachable with a validated config; the last boundary is terminal
	return bounds[len(bounds)-1].Grade
}
