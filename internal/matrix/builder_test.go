package matrix

import (
	"testing"

	"trustdebt/internal/logging"
	"trustdebt/internal/signals"
	"trustdebt/internal/taxonomy"
)

func testCatalog() *taxonomy.Catalog {
	return &taxonomy.Catalog{Categories: []taxonomy.Category{
		{ID: "perf", Name: "Performance", Keywords: []string{"latency", "cache", "throughput"}, Weight: 1.0},
		{ID: "security", Name: "Security", Keywords: []string{"auth", "token", "encryption"}, Weight: 2.0},
		{ID: "docs", Name: "Documentation", Keywords: []string{"readme", "guide", "tutorial"}, Weight: 0.5},
	}}
}

func intentCorpus(content string) *signals.IntentCorpus {
	return &signals.IntentCorpus{Documents: []signals.DocumentSource{
		{Path: "README.md", Weight: 1.0, Content: content},
	}}
}

func realityCorpus(messages ...string) *signals.RealityCorpus {
	corpus := &signals.RealityCorpus{}
	for _, msg := range messages {
		corpus.Commits = append(corpus.Commits, signals.CommitRecord{Message: msg})
	}
	return corpus
}

func TestBuildDimensions(t *testing.T) {
	builder := NewBuilder(logging.NewDiscardLogger())
	catalog := testCatalog()

	m, err := builder.Build(catalog,
		intentCorpus("we promise low latency auth"),
		realityCorpus("reduce cache latency", "rotate auth token"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	n := len(catalog.Categories)
	if m.Size() != n {
		t.Fatalf("Size = %d, want %d", m.Size(), n)
	}

	total, diagonal, upper, lower := 0, 0, 0, 0
	m.ForEach(func(i, j int, cell Cell) {
		total++
		switch {
		case i == j:
			diagonal++
			if !cell.IsDiagonal {
				t.Errorf("cell [%d][%d] should be marked diagonal", i, j)
			}
		case i < j:
			upper++
			if cell.DominantSide != SideReality {
				t.Errorf("upper cell [%d][%d] side = %v, want reality", i, j, cell.DominantSide)
			}
		default:
			lower++
			if cell.DominantSide != SideIntent {
				t.Errorf("lower cell [%d][%d] side = %v, want intent", i, j, cell.DominantSide)
			}
		}
		if cell.RowCategory != m.Order[i] || cell.ColCategory != m.Order[j] {
			t.Errorf("cell [%d][%d] categories = (%s,%s), want (%s,%s)",
				i, j, cell.RowCategory, cell.ColCategory, m.Order[i], m.Order[j])
		}
	})

	if total != n*n {
		t.Errorf("total cells = %d, want %d", total, n*n)
	}
	if diagonal != n {
		t.Errorf("diagonal cells = %d, want %d", diagonal, n)
	}
	expectedTriangle := n * (n - 1) / 2
	if upper != expectedTriangle || lower != expectedTriangle {
		t.Errorf("triangles = (%d, %d), want %d each", upper, lower, expectedTriangle)
	}
}

func TestDiagonalMeasuresSelfConsistency(t *testing.T) {
	builder := NewBuilder(logging.NewDiscardLogger())
	catalog := testCatalog()

	// Perf documented and built identically: same single keyword hit on
	// both sides gives a zero diagonal gap.
	m, err := builder.Build(catalog,
		intentCorpus("latency matters"),
		realityCorpus("improve latency"))
	if err != nil {
		t.Fatal(err)
	}

	perf := m.Cells[0][0]
	if perf.TrustDebtUnits != 0 {
		t.Errorf("aligned category diagonal debt = %v, want 0", perf.TrustDebtUnits)
	}
	if perf.DominantSide != SideBalanced {
		t.Errorf("aligned diagonal side = %v, want balanced", perf.DominantSide)
	}

	// Security is promised but never built: intent-dominant diagonal debt
	m, err = builder.Build(catalog,
		intentCorpus("auth token encryption everywhere"),
		realityCorpus("unrelated refactor"))
	if err != nil {
		t.Fatal(err)
	}

	security := m.Cells[1][1]
	if security.TrustDebtUnits <= 0 {
		t.Errorf("promised-only category diagonal debt = %v, want positive", security.TrustDebtUnits)
	}
	if security.DominantSide != SideIntent {
		t.Errorf("promised-only diagonal side = %v, want intent", security.DominantSide)
	}

	// Weight scales the diagonal: security (weight 2) must owe more than
	// an identically-scored weight-1 category would
	gap := security.IntentValue - security.RealityValue
	expected := 2.0 * gap * gap * UnitScale
	if diff := security.TrustDebtUnits - expected; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("diagonal debt = %v, want weight*gap²*scale = %v", security.TrustDebtUnits, expected)
	}
}

func TestTrianglesSeparateFailureModes(t *testing.T) {
	builder := NewBuilder(logging.NewDiscardLogger())
	catalog := testCatalog()

	// Heavy building with no documentation: upper triangle carries debt,
	// lower stays quiet.
	m, err := builder.Build(catalog,
		intentCorpus("nothing specific promised"),
		realityCorpus("tune cache latency throughput", "rotate auth token encryption"))
	if err != nil {
		t.Fatal(err)
	}

	upperSum, lowerSum := 0.0, 0.0
	m.ForEach(func(i, j int, cell Cell) {
		if i < j {
			upperSum += cell.TrustDebtUnits
		} else if i > j {
			lowerSum += cell.TrustDebtUnits
		}
	})

	if upperSum <= 0 {
		t.Errorf("under-documentation should charge the upper triangle, got %v", upperSum)
	}
	if lowerSum != 0 {
		t.Errorf("no promises were made; lower triangle = %v, want 0", lowerSum)
	}

	// The mirror scenario: all promises, no building.
	m, err = builder.Build(catalog,
		intentCorpus("low latency cache, strong auth token encryption, full guide and tutorial"),
		realityCorpus("bump version"))
	if err != nil {
		t.Fatal(err)
	}

	upperSum, lowerSum = 0.0, 0.0
	m.ForEach(func(i, j int, cell Cell) {
		if i < j {
			upperSum += cell.TrustDebtUnits
		} else if i > j {
			lowerSum += cell.TrustDebtUnits
		}
	})

	if lowerSum <= 0 {
		t.Errorf("over-promising should charge the lower triangle, got %v", lowerSum)
	}
	if upperSum != 0 {
		t.Errorf("nothing was built; upper triangle = %v, want 0", upperSum)
	}
}

func TestCellsRetainExplanatoryValues(t *testing.T) {
	builder := NewBuilder(logging.NewDiscardLogger())
	catalog := testCatalog()

	m, err := builder.Build(catalog,
		intentCorpus("latency auth readme"),
		realityCorpus("cache auth work"))
	if err != nil {
		t.Fatal(err)
	}

	if len(m.Scores) != 3 {
		t.Fatalf("scores = %d entries, want 3", len(m.Scores))
	}
	for id, scores := range m.Scores {
		if scores.Intent < 0 || scores.Intent > 1 || scores.Reality < 0 || scores.Reality > 1 {
			t.Errorf("scores for %s out of range: %+v", id, scores)
		}
	}

	diag := m.Cells[0][0]
	if diag.IntentValue != m.Scores["perf"].Intent || diag.RealityValue != m.Scores["perf"].Reality {
		t.Error("diagonal cell should carry the category's own corpus scores")
	}
}

func TestBuildEmptyKeywordsFatal(t *testing.T) {
	builder := NewBuilder(logging.NewDiscardLogger())
	catalog := &taxonomy.Catalog{Categories: []taxonomy.Category{
		{ID: "broken", Name: "Broken", Keywords: nil, Weight: 1.0},
	}}

	_, err := builder.Build(catalog, intentCorpus("text"), realityCorpus("msg"))
	if err == nil {
		t.Fatal("empty keyword set must abort the build")
	}
}
