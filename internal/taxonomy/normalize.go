package taxonomy

import (
	"strings"

	"github.com/kljensen/snowball/english"
)

// stopWords are dropped during keyword normalization. Keeping the list
// short is deliberate: category keywords are curated vocabulary, not
// free text, so only the most generic fillers are excluded.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true,
	"at": true, "be": true, "by": true, "for": true, "from": true,
	"in": true, "is": true, "it": true, "of": true, "on": true,
	"or": true, "that": true, "the": true, "to": true, "with": true,
}

// NormalizeKeyword lowercases, trims, and stems a single keyword.
// Returns the empty string for stop-words and blank input.
func NormalizeKeyword(raw string) string {
	word := strings.ToLower(strings.TrimSpace(raw))
	if word == "" || stopWords[word] {
		return ""
	}
	return english.Stem(word, false)
}

// NormalizeKeywords converts a raw keyword list into a normalized,
// de-duplicated set. Multi-word keywords are normalized term by term
// and rejoined so "error handling" and "errors handled" collide.
func NormalizeKeywords(raw []string) map[string]bool {
	set := make(map[string]bool, len(raw))
	for _, kw := range raw {
		terms := strings.Fields(kw)
		normalized := make([]string, 0, len(terms))
		for _, term := range terms {
			if n := NormalizeKeyword(term); n != "" {
				normalized = append(normalized, n)
			}
		}
		if len(normalized) > 0 {
			set[strings.Join(normalized, " ")] = true
		}
	}
	return set
}
