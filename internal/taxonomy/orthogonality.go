package taxonomy

import (
	"sort"
)

// ComputeOrthogonality builds the pairwise independence matrix for a
// category set and validates every off-diagonal entry against the
// threshold.
//
// Orthogonality between two categories is the Jaccard complement of
// their normalized keyword sets: 1 − |A ∩ B| / |A ∪ B|. Disjoint sets
// score 1.0, identical sets 0.0. An empty union also scores 1.0: two
// categories with no normalized vocabulary give no evidence of overlap.
func ComputeOrthogonality(categories []Category, threshold float64) (*OrthogonalityMatrix, *ValidationResult) {
	n := len(categories)

	matrix := &OrthogonalityMatrix{
		Order:  make([]string, n),
		Values: make([][]float64, n),
	}
	for i := range categories {
		matrix.Order[i] = categories[i].ID
		matrix.Values[i] = make([]float64, n)
	}

	result := &ValidationResult{
		Threshold: threshold,
		Passed:    true,
	}

	for i := 0; i < n; i++ {
		matrix.Values[i][i] = 1.0
		setA := categories[i].NormalizedKeywords()

		for j := i + 1; j < n; j++ {
			setB := categories[j].NormalizedKeywords()
			score := jaccardComplement(setA, setB)
			matrix.Values[i][j] = score
			matrix.Values[j][i] = score

			if score < threshold {
				result.Passed = false
				result.FailedPairs = append(result.FailedPairs, FailedPair{
					CategoryA:     categories[i].ID,
					CategoryB:     categories[j].ID,
					Orthogonality: score,
					Overlap:       intersection(setA, setB),
				})
			}
		}
	}

	result.MinScore = matrix.Min()
	result.MeanScore = matrix.Mean()

	return matrix, result
}

func jaccardComplement(a, b map[string]bool) float64 {
	shared := 0
	for kw := range a {
		if b[kw] {
			shared++
		}
	}
	union := len(a) + len(b) - shared
	if union == 0 {
		return 1.0
	}
	return 1.0 - float64(shared)/float64(union)
}

// intersection returns the sorted shared keywords of two sets.
func intersection(a, b map[string]bool) []string {
	var shared []string
	for kw := range a {
		if b[kw] {
			shared = append(shared, kw)
		}
	}
	sort.Strings(shared)
	return shared
}
