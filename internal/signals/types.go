// Package signals extracts the two raw corpora a trust-debt analysis
// compares: Reality (commit history over a time window) and Intent
// (weighted documentation sources). Extraction is read-only.
package signals

import (
	"strings"
	"time"
)

// CommitRecord is one commit in the analysis window. Immutable once read.
type CommitRecord struct {
	Hash      string    `json:"hash"`
	Message   string    `json:"message"` // Original casing, for audit and ranking
	Timestamp time.Time `json:"timestamp"`
}

// DocumentSource is one weighted documentation input. Content is capped
// at a configured length, truncated deterministically from the start of
// the file.
type DocumentSource struct {
	Path         string    `json:"path"`
	Weight       float64   `json:"weight"`
	Content      string    `json:"content"`
	LastModified time.Time `json:"lastModified"`
}

// Warning records a recoverable extraction problem. The run continues
// with reduced input.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Subject string `json:"subject,omitempty"`
}

const (
	// WarnDocMissing marks a documentation source that could not be read
	WarnDocMissing = "DOC_MISSING"
	// WarnEmptyHistory marks a commit window with no commits
	WarnEmptyHistory = "EMPTY_HISTORY"
)

// RealityCorpus is the extracted implementation signal.
type RealityCorpus struct {
	Commits  []CommitRecord `json:"commits"`
	Window   Window         `json:"window"`
	Warnings []Warning      `json:"warnings,omitempty"`
}

// Text returns the lowercased concatenation of all commit messages, the
// form the similarity scorer matches against.
func (r *RealityCorpus) Text() string {
	var b strings.Builder
	for i, c := range r.Commits {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.ToLower(c.Message))
	}
	return b.String()
}

// IntentCorpus is the extracted documentation signal.
type IntentCorpus struct {
	Documents []DocumentSource `json:"documents"`
	Warnings  []Warning        `json:"warnings,omitempty"`
}

// TotalWeight sums the weights of the documents that were actually read.
func (c *IntentCorpus) TotalWeight() float64 {
	total := 0.0
	for _, d := range c.Documents {
		total += d.Weight
	}
	return total
}

// Window bounds the commit-history query.
type Window struct {
	Since time.Time `json:"since"`
	Until time.Time `json:"until"`
}

// WindowFromDays builds a window covering the last n days.
func WindowFromDays(days int, now time.Time) Window {
	return Window{
		Since: now.AddDate(0, 0, -days),
		Until: now,
	}
}
