package debt

import (
	"math"
	"testing"

	"trustdebt/internal/config"
	"trustdebt/internal/logging"
	"trustdebt/internal/matrix"
)

// syntheticMatrix builds a 3-category matrix with known per-cell values.
// Diagonal cells carry 10/20/30, upper cells 1/2/3, lower cells 4/5/6.
func syntheticMatrix() *matrix.Matrix {
	order := []string{"a", "b", "c"}
	m := &matrix.Matrix{
		Order:  order,
		Cells:  make([][]matrix.Cell, 3),
		Scores: map[string]matrix.CategoryScores{},
	}

	diagonal := []float64{10, 20, 30}
	upper := map[[2]int]float64{{0, 1}: 1, {0, 2}: 2, {1, 2}: 3}
	lower := map[[2]int]float64{{1, 0}: 4, {2, 0}: 5, {2, 1}: 6}

	for i := range m.Cells {
		m.Cells[i] = make([]matrix.Cell, 3)
		for j := range m.Cells[i] {
			cell := matrix.Cell{
				RowCategory: order[i],
				ColCategory: order[j],
			}
			switch {
			case i == j:
				cell.IsDiagonal = true
				cell.TrustDebtUnits = diagonal[i]
				cell.IntentValue = 0.8
				cell.RealityValue = 0.6
				cell.DominantSide = matrix.SideIntent
			case i < j:
				cell.TrustDebtUnits = upper[[2]int{i, j}]
				cell.DominantSide = matrix.SideReality
			default:
				cell.TrustDebtUnits = lower[[2]int{i, j}]
				cell.DominantSide = matrix.SideIntent
			}
			m.Cells[i][j] = cell
		}
	}
	return m
}

func testCalculator(mutate func(*config.Config)) *Calculator {
	cfg := config.DefaultConfig()
	// Neutral calibration so sums are easy to check
	cfg.Calibration.SophisticationDiscount = 0
	cfg.Calibration.ProcessHealthFactor = 1
	if mutate != nil {
		mutate(cfg)
	}
	return NewCalculator(cfg, logging.NewDiscardLogger())
}

func TestCalculateSums(t *testing.T) {
	calc := testCalculator(nil)
	result := calc.Calculate(syntheticMatrix())

	if result.DiagonalSum != 60 {
		t.Errorf("diagonalSum = %v, want 60", result.DiagonalSum)
	}
	if result.UpperSum != 6 {
		t.Errorf("upperSum = %v, want 6", result.UpperSum)
	}
	if result.LowerSum != 15 {
		t.Errorf("lowerSum = %v, want 15", result.LowerSum)
	}
	if result.TotalRawDebt != 81 {
		t.Errorf("totalRawDebt = %v, want exactly diagonal+upper+lower = 81", result.TotalRawDebt)
	}

	// Row attribution partitions the matrix: breakdown sums to the total
	breakdownSum := 0.0
	for _, v := range result.CategoryBreakdown {
		breakdownSum += v
	}
	if math.Abs(breakdownSum-result.TotalRawDebt) > 1e-9 {
		t.Errorf("breakdown sum = %v, want %v", breakdownSum, result.TotalRawDebt)
	}
	// Row a: diagonal 10 + upper 1 + 2
	if result.CategoryBreakdown["a"] != 13 {
		t.Errorf("breakdown[a] = %v, want 13", result.CategoryBreakdown["a"])
	}
}

func TestCalibrationAffectsFinalDebt(t *testing.T) {
	calc := testCalculator(func(cfg *config.Config) {
		cfg.Calibration.SophisticationDiscount = 0.30
		cfg.Calibration.ProcessHealthFactor = 2.0
	})
	result := calc.Calculate(syntheticMatrix())

	want := 81 * 0.7 / 2.0
	if math.Abs(result.FinalDebt-want) > 1e-9 {
		t.Errorf("finalDebt = %v, want %v", result.FinalDebt, want)
	}
}

func TestAsymmetryRatio(t *testing.T) {
	calc := testCalculator(nil)
	result := calc.Calculate(syntheticMatrix())

	if !result.Asymmetry.Defined {
		t.Fatal("asymmetry should be defined when lowerSum > 0")
	}
	want := 6.0 / 15.0
	if math.Abs(result.Asymmetry.Value-want) > 1e-9 {
		t.Errorf("asymmetry = %v, want %v", result.Asymmetry.Value, want)
	}
	if result.Asymmetry.Band != BandOverDocumented {
		t.Errorf("band = %v, want over-documentation for ratio 0.4", result.Asymmetry.Band)
	}
}

func TestAsymmetryUndefinedWhenLowerSumZero(t *testing.T) {
	m := syntheticMatrix()
	for i := range m.Cells {
		for j := range m.Cells[i] {
			if i > j {
				m.Cells[i][j].TrustDebtUnits = 0
			}
		}
	}

	calc := testCalculator(nil)
	result := calc.Calculate(m)

	if result.Asymmetry.Defined {
		t.Error("asymmetry must be reported undefined, never divided")
	}
	if result.Asymmetry.Band != BandUndefined {
		t.Errorf("band = %v, want undefined", result.Asymmetry.Band)
	}
	if math.IsNaN(result.Asymmetry.Value) || math.IsInf(result.Asymmetry.Value, 0) {
		t.Error("sentinel value must not be NaN or Inf")
	}
	if result.Grade == "" {
		t.Error("grading must still proceed with an undefined ratio")
	}
}

func TestWorstDriftsRanking(t *testing.T) {
	calc := testCalculator(nil)
	result := calc.Calculate(syntheticMatrix())

	if len(result.WorstDrifts) != 9 {
		t.Fatalf("worstDrifts = %d entries, want all 9 cells", len(result.WorstDrifts))
	}
	for i := 1; i < len(result.WorstDrifts); i++ {
		if result.WorstDrifts[i].Debt > result.WorstDrifts[i-1].Debt {
			t.Fatalf("worstDrifts not sorted descending at %d", i)
		}
	}

	top := result.WorstDrifts[0]
	if top.From != "c" || top.To != "c" || !top.IsDiagonal {
		t.Errorf("top drift = %+v, want diagonal c/c with debt 30", top)
	}
	if top.DominantSide == "" {
		t.Error("drift entries must be annotated with the dominant side")
	}
}

func TestGradeBoundaries(t *testing.T) {
	tests := []struct {
		finalDebt float64
		want      string
	}{
		{0, "AAA"},
		{99.9, "AAA"},
		{100, "A"},
		{499.9, "A"},
		{500, "B"},
		{999.9, "B"},
		{1000, "C"},
		{4999.9, "C"},
		{5000, "D"},
		{125000, "D"},
	}

	calc := testCalculator(nil)
	prevIdx := -1
	gradeOrder := map[string]int{"AAA": 0, "A": 1, "B": 2, "C": 3, "D": 4}

	for _, tt := range tests {
		got := calc.grade(tt.finalDebt)
		if got != tt.want {
			t.Errorf("grade(%v) = %q, want %q", tt.finalDebt, got, tt.want)
		}
		// Monotonic: increasing debt never improves the grade
		if gradeOrder[got] < prevIdx {
			t.Errorf("grade regressed to %q at debt %v", got, tt.finalDebt)
		}
		prevIdx = gradeOrder[got]
	}
}

func TestDiagonalHealth(t *testing.T) {
	// Synthetic diagonal: intent 0.8, reality 0.6, alignment 0.8 ≥ 0.7
	calc := testCalculator(nil)
	result := calc.Calculate(syntheticMatrix())
	if result.DiagonalHealth != DiagonalHealthy {
		t.Errorf("diagonalHealth = %v, want healthy for alignment 0.8", result.DiagonalHealth)
	}

	// Widen the gap: alignment 0.3 < 0.7
	m := syntheticMatrix()
	for i := range m.Cells {
		m.Cells[i][i].IntentValue = 0.9
		m.Cells[i][i].RealityValue = 0.2
	}
	result = calc.Calculate(m)
	if result.DiagonalHealth != DiagonalWarning {
		t.Errorf("diagonalHealth = %v, want warning for alignment 0.3", result.DiagonalHealth)
	}
}
