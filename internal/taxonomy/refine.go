package taxonomy

import (
	"fmt"
	"sort"
)

// RefinementAction classifies a keyword suggestion.
type RefinementAction string

const (
	// ActionRemove proposes dropping a shared keyword from one category
	ActionRemove RefinementAction = "remove"
	// ActionSplit proposes moving a shared keyword into a new child category
	ActionSplit RefinementAction = "split"
)

// Suggestion is one advisory refinement for a failing category pair.
// Suggestions never mutate the catalog; applying them is the user's call.
type Suggestion struct {
	CategoryA    string           `json:"categoryA"`
	CategoryB    string           `json:"categoryB"`
	Keyword      string           `json:"keyword"`
	Action       RefinementAction `json:"action"`
	FromCategory string           `json:"fromCategory,omitempty"`
	// Current and Estimated are the pair orthogonality before and after
	// applying the suggestion
	Current   float64 `json:"current"`
	Estimated float64 `json:"estimated"`
	Rationale string  `json:"rationale"`
}

// SuggestRefinements proposes keyword changes for every failed pair in a
// validation result, ranked by estimated orthogonality improvement.
func SuggestRefinements(catalog *Catalog, result *ValidationResult) []Suggestion {
	var suggestions []Suggestion

	for _, pair := range result.FailedPairs {
		catA := catalog.ByID(pair.CategoryA)
		catB := catalog.ByID(pair.CategoryB)
		if catA == nil || catB == nil {
			continue
		}

		setA := catA.NormalizedKeywords()
		setB := catB.NormalizedKeywords()

		for _, kw := range pair.Overlap {
			// Removing from the larger vocabulary costs less coverage;
			// break ties toward the lower-weighted category.
			from := catA
			if len(setB) > len(setA) || (len(setB) == len(setA) && catB.Weight < catA.Weight) {
				from = catB
			}

			estimated := estimateWithoutKeyword(setA, setB, kw, from.ID == catA.ID)
			action := ActionRemove
			rationale := fmt.Sprintf("%q appears in both %s and %s; dropping it from %s raises their independence from %.3f to %.3f",
				kw, catA.ID, catB.ID, from.ID, pair.Orthogonality, estimated)
			if estimated < result.Threshold {
				// A single removal will not clear the bar; the shared
				// vocabulary is broad enough to deserve its own bucket.
				action = ActionSplit
				rationale = fmt.Sprintf("%q is one of %d shared terms between %s and %s; consider a dedicated child category for the shared concept",
					kw, len(pair.Overlap), catA.ID, catB.ID)
			}

			suggestions = append(suggestions, Suggestion{
				CategoryA:    pair.CategoryA,
				CategoryB:    pair.CategoryB,
				Keyword:      kw,
				Action:       action,
				FromCategory: from.ID,
				Current:      pair.Orthogonality,
				Estimated:    estimated,
				Rationale:    rationale,
			})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		gainI := suggestions[i].Estimated - suggestions[i].Current
		gainJ := suggestions[j].Estimated - suggestions[j].Current
		return gainI > gainJ
	})

	return suggestions
}

// estimateWithoutKeyword recomputes pair orthogonality with kw removed
// from one side.
func estimateWithoutKeyword(setA, setB map[string]bool, kw string, fromA bool) float64 {
	a := copySetWithout(setA, kw, fromA)
	b := copySetWithout(setB, kw, !fromA)
	return jaccardComplement(a, b)
}

func copySetWithout(set map[string]bool, kw string, drop bool) map[string]bool {
	out := make(map[string]bool, len(set))
	for k := range set {
		if drop && k == kw {
			continue
		}
		out[k] = true
	}
	return out
}
