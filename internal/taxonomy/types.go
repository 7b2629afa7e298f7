// Package taxonomy models the category taxonomy used to classify intent
// and reality signals, and validates that categories stay vocabulary-
// independent of each other.
package taxonomy

import "time"

// Category is a named, keyword-defined semantic bucket. Categories are
// loaded once per analysis run and immutable afterwards.
type Category struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	ParentID string   `json:"parentId,omitempty"`
	Keywords []string `json:"keywords"`
	Weight   float64  `json:"weight"`
	Depth    int      `json:"depth"`

	// normalized is the stemmed, stop-word-free keyword set used for
	// orthogonality math. Populated by Normalize.
	normalized map[string]bool
}

// NormalizedKeywords returns the normalized keyword set, computing it on
// first use.
func (c *Category) NormalizedKeywords() map[string]bool {
	if c.normalized == nil {
		c.normalized = NormalizeKeywords(c.Keywords)
	}
	return c.normalized
}

// Catalog is the validated, ordered category set for one run.
type Catalog struct {
	Categories []Category `json:"categories"`
	LoadedAt   time.Time  `json:"loadedAt"`
	SourcePath string     `json:"sourcePath"`
}

// ByID returns the category with the given id, or nil.
func (c *Catalog) ByID(id string) *Category {
	for i := range c.Categories {
		if c.Categories[i].ID == id {
			return &c.Categories[i]
		}
	}
	return nil
}

// OrthogonalityMatrix is a symmetric N×N independence matrix over a
// fixed category ordering. The diagonal is 1.0 by construction.
type OrthogonalityMatrix struct {
	Order  []string    `json:"order"`
	Values [][]float64 `json:"values"`
}

// At returns the orthogonality between categories at positions i and j.
func (m *OrthogonalityMatrix) At(i, j int) float64 {
	return m.Values[i][j]
}

// Min returns the smallest off-diagonal entry, or 1.0 for fewer than
// two categories.
func (m *OrthogonalityMatrix) Min() float64 {
	min := 1.0
	for i := range m.Values {
		for j := range m.Values[i] {
			if i != j && m.Values[i][j] < min {
				min = m.Values[i][j]
			}
		}
	}
	return min
}

// Mean returns the mean off-diagonal orthogonality, or 1.0 for fewer
// than two categories.
func (m *OrthogonalityMatrix) Mean() float64 {
	n := len(m.Values)
	if n < 2 {
		return 1.0
	}
	sum := 0.0
	count := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				sum += m.Values[i][j]
				count++
			}
		}
	}
	return sum / float64(count)
}

// FailedPair records one category pair below the independence threshold.
type FailedPair struct {
	CategoryA     string   `json:"categoryA"`
	CategoryB     string   `json:"categoryB"`
	Orthogonality float64  `json:"orthogonality"`
	Overlap       []string `json:"overlap"`
}

// ValidationResult is the outcome of orthogonality validation. Failed
// pairs are collected, never thrown; the caller decides whether to
// reject or warn.
type ValidationResult struct {
	Threshold   float64      `json:"threshold"`
	Passed      bool         `json:"passed"`
	FailedPairs []FailedPair `json:"failedPairs,omitempty"`
	MinScore    float64      `json:"minScore"`
	MeanScore   float64      `json:"meanScore"`
}
