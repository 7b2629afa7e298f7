// Package matrix builds the asymmetric intent/reality drift matrix.
//
// Rows carry implementation activity, columns carry documentation
// promises. The upper triangle measures building without documenting,
// the lower triangle documenting without building. Keeping the two
// directions apart is the point: a symmetric matrix would collapse
// over-building and over-promising into one undirected difference.
package matrix

// Side names which signal dominates a cell.
type Side string

const (
	// SideReality marks reality-dominant drift (built but not documented)
	SideReality Side = "reality"
	// SideIntent marks intent-dominant drift (documented but not built)
	SideIntent Side = "intent"
	// SideBalanced marks a diagonal cell with no meaningful gap
	SideBalanced Side = "balanced"
)

// Cell is one matrix entry. Intent and reality values are retained
// alongside the scalar debt so consumers can explain why a cell scored
// as it did, not just its magnitude.
type Cell struct {
	RowCategory    string  `json:"rowCategory"`
	ColCategory    string  `json:"colCategory"`
	IntentValue    float64 `json:"intentValue"`
	RealityValue   float64 `json:"realityValue"`
	TrustDebtUnits float64 `json:"trustDebtUnits"`
	IsDiagonal     bool    `json:"isDiagonal"`
	DominantSide   Side    `json:"dominantSide"`
}

// CategoryScores holds the per-category corpus scores the matrix is
// derived from.
type CategoryScores struct {
	Intent  float64 `json:"intent"`
	Reality float64 `json:"reality"`
}

// Matrix is the full N² cell grid over a fixed category ordering.
// Built once per run and consumed read-only.
type Matrix struct {
	Order  []string                  `json:"order"`
	Cells  [][]Cell                  `json:"cells"`
	Scores map[string]CategoryScores `json:"scores"`
}

// Size returns N, the category count.
func (m *Matrix) Size() int {
	return len(m.Order)
}

// Diagonal returns the diagonal cells in category order.
func (m *Matrix) Diagonal() []Cell {
	out := make([]Cell, 0, len(m.Order))
	for i := range m.Cells {
		out = append(out, m.Cells[i][i])
	}
	return out
}

// ForEach visits every cell in row-major order.
func (m *Matrix) ForEach(fn func(i, j int, cell Cell)) {
	for i := range m.Cells {
		for j := range m.Cells[i] {
			fn(i, j, m.Cells[i][j])
		}
	}
}
