// Package scoring converts a text corpus into a per-category alignment
// score from its keyword set.
package scoring

import (
	"fmt"
	"regexp"
	"strings"

	"trustdebt/internal/errors"
)

// Result explains one similarity score: how many distinct keywords were
// found, how often keywords occurred overall, and the two blended
// components.
type Result struct {
	Found          int     `json:"found"`
	Total          int     `json:"total"`
	Coverage       float64 `json:"coverage"`
	FrequencyBoost float64 `json:"frequencyBoost"`
	Similarity     float64 `json:"similarity"`
}

// coverageWeight and frequencyWeight blend conceptual breadth against
// repetition depth. Breadth dominates: a text touching many distinct
// concepts once is more aligned than one repeating a single concept.
const (
	coverageWeight  = 0.7
	frequencyWeight = 0.3
)

// Scorer computes keyword-similarity scores. Compiled keyword patterns
// are cached per keyword, so one Scorer can be reused across corpora
// within a run.
type Scorer struct {
	patterns map[string]*regexp.Regexp
}

// NewScorer creates a Scorer.
func NewScorer() *Scorer {
	return &Scorer{patterns: make(map[string]*regexp.Regexp)}
}

// Score measures how strongly text reflects a keyword set, in [0,1].
//
// Each keyword is counted case-insensitively at word boundaries. With
// found = distinct keywords present, total = occurrences across all
// keywords, and K = len(keywords):
//
//	coverage       = found / K
//	frequencyBoost = min(1, total / (K * 2))
//	similarity     = 0.7*coverage + 0.3*frequencyBoost
//
// An empty keyword set is a configuration bug, reported as a fatal
// ScoringInvalid error rather than scored as 0 or 1.
func (s *Scorer) Score(text string, keywords []string) (*Result, error) {
	if len(keywords) == 0 {
		return nil, errors.New(errors.ScoringInvalid,
			"Cannot score against an empty keyword set", nil)
	}

	k := len(keywords)
	found := 0
	total := 0

	for _, kw := range keywords {
		pattern, err := s.pattern(kw)
		if err != nil {
			return nil, err
		}
		count := len(pattern.FindAllStringIndex(text, -1))
		if count > 0 {
			found++
			total += count
		}
	}

	coverage := float64(found) / float64(k)
	frequencyBoost := float64(total) / float64(k*2)
	if frequencyBoost > 1 {
		frequencyBoost = 1
	}

	similarity := coverageWeight*coverage + frequencyWeight*frequencyBoost
	if similarity > 1 {
		similarity = 1
	}
	if similarity < 0 {
		similarity = 0
	}

	return &Result{
		Found:          found,
		Total:          total,
		Coverage:       coverage,
		FrequencyBoost: frequencyBoost,
		Similarity:     similarity,
	}, nil
}

func (s *Scorer) pattern(keyword string) (*regexp.Regexp, error) {
	if p, ok := s.patterns[keyword]; ok {
		return p, nil
	}

	trimmed := strings.TrimSpace(keyword)
	if trimmed == "" {
		return nil, errors.New(errors.ScoringInvalid, "Blank keyword in keyword set", nil)
	}

	// Multi-word keywords match with flexible whitespace between terms.
	// \b anchors apply only at word-character edges; keywords like "c++"
	// end on symbols where \b can never match.
	terms := strings.Fields(trimmed)
	for i, term := range terms {
		terms[i] = regexp.QuoteMeta(term)
	}
	prefix := ""
	if isWordChar(rune(trimmed[0])) {
		prefix = `\b`
	}
	suffix := ""
	if isWordChar(rune(trimmed[len(trimmed)-1])) {
		suffix = `\b`
	}
	expr := fmt.Sprintf(`(?i)%s%s%s`, prefix, strings.Join(terms, `\s+`), suffix)

	p, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.New(errors.ScoringInvalid,
			fmt.Sprintf("Keyword %q does not compile to a pattern", keyword), err)
	}
	s.patterns[keyword] = p
	return p, nil
}

func isWordChar(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
