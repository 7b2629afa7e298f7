package matrix

import (
	"trustdebt/internal/logging"
	"trustdebt/internal/scoring"
	"trustdebt/internal/signals"
	"trustdebt/internal/taxonomy"
)

// UnitScale converts [0,1]-range drift magnitudes into debt units so
// grade thresholds operate in the hundreds-to-thousands range.
const UnitScale = 1000.0

// Builder constructs the drift matrix from scored corpora.
type Builder struct {
	scorer *scoring.Scorer
	logger *logging.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(logger *logging.Logger) *Builder {
	return &Builder{
		scorer: scoring.NewScorer(),
		logger: logger,
	}
}

// Build scores every category against both corpora and fills the N²
// cell grid.
//
// Cell rules over the ordered category list:
//   - Diagonal (i = j): weight_i × (intent_i − reality_i)², the
//     category's own documentation/implementation agreement.
//   - Upper triangle (i < j): reality co-activity of the pair, charged
//     where the column's build signal outruns the row's documented
//     intent.
//   - Lower triangle (i > j): the mirror from the documentation side,
//     charging promises unmatched by implementation.
func (b *Builder) Build(catalog *taxonomy.Catalog, intent *signals.IntentCorpus, reality *signals.RealityCorpus) (*Matrix, error) {
	categories := catalog.Categories
	n := len(categories)

	m := &Matrix{
		Order:  make([]string, n),
		Cells:  make([][]Cell, n),
		Scores: make(map[string]CategoryScores, n),
	}

	realityText := reality.Text()

	intentScores := make([]float64, n)
	realityScores := make([]float64, n)

	for i, cat := range categories {
		m.Order[i] = cat.ID
		m.Cells[i] = make([]Cell, n)

		intentScore, err := b.scoreIntent(intent, cat.Keywords)
		if err != nil {
			return nil, err
		}
		realityResult, err := b.scorer.Score(realityText, cat.Keywords)
		if err != nil {
			return nil, err
		}

		intentScores[i] = intentScore
		realityScores[i] = realityResult.Similarity
		m.Scores[cat.ID] = CategoryScores{
			Intent:  intentScore,
			Reality: realityResult.Similarity,
		}

		b.logger.Debug("Scored category", map[string]interface{}{
			"categoryId": cat.ID,
			"intent":     intentScore,
			"reality":    realityResult.Similarity,
		})
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m.Cells[i][j] = buildCell(categories, intentScores, realityScores, i, j)
		}
	}

	return m, nil
}

// scoreIntent blends per-document similarity by source weight. A corpus
// with no readable documents scores zero intent for every category.
func (b *Builder) scoreIntent(intent *signals.IntentCorpus, keywords []string) (float64, error) {
	totalWeight := intent.TotalWeight()
	if totalWeight == 0 {
		// Still validate the keyword set so an empty corpus cannot mask
		// a configuration bug
		if _, err := b.scorer.Score("", keywords); err != nil {
			return 0, err
		}
		return 0, nil
	}

	weighted := 0.0
	for _, doc := range intent.Documents {
		result, err := b.scorer.Score(doc.Content, keywords)
		if err != nil {
			return 0, err
		}
		weighted += doc.Weight * result.Similarity
	}
	return weighted / totalWeight, nil
}

func buildCell(categories []taxonomy.Category, intentScores, realityScores []float64, i, j int) Cell {
	cell := Cell{
		RowCategory: categories[i].ID,
		ColCategory: categories[j].ID,
	}

	switch {
	case i == j:
		gap := intentScores[i] - realityScores[i]
		cell.IsDiagonal = true
		cell.IntentValue = intentScores[i]
		cell.RealityValue = realityScores[i]
		cell.TrustDebtUnits = categories[i].Weight * gap * gap * UnitScale
		switch {
		case gap > 0:
			cell.DominantSide = SideIntent
		case gap < 0:
			cell.DominantSide = SideReality
		default:
			cell.DominantSide = SideBalanced
		}

	case i < j:
		// Reality-dominant: co-activity of the pair's build signals,
		// charged where column reality outruns row intent
		coActivity := realityScores[i] * realityScores[j]
		excess := realityScores[j] - intentScores[i]
		if excess < 0 {
			excess = 0
		}
		cell.IntentValue = intentScores[i]
		cell.RealityValue = coActivity
		cell.TrustDebtUnits = pairWeight(categories, i, j) * coActivity * excess * UnitScale
		cell.DominantSide = SideReality

	default:
		// Intent-dominant mirror: co-activity of the pair's documented
		// promises, charged where column intent outruns row reality
		coPromise := intentScores[i] * intentScores[j]
		excess := intentScores[j] - realityScores[i]
		if excess < 0 {
			excess = 0
		}
		cell.IntentValue = coPromise
		cell.RealityValue = realityScores[i]
		cell.TrustDebtUnits = pairWeight(categories, i, j) * coPromise * excess * UnitScale
		cell.DominantSide = SideIntent
	}

	return cell
}

func pairWeight(categories []taxonomy.Category, i, j int) float64 {
	return (categories[i].Weight + categories[j].Weight) / 2
}
