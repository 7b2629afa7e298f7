package signals

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"trustdebt/internal/config"
	"trustdebt/internal/errors"
	"trustdebt/internal/logging"
)

// DefaultGitTimeout bounds each git invocation when the config gives none.
const DefaultGitTimeout = 5000 * time.Millisecond

// Extractor reads commit history and documentation sources for one
// repository. All access is read-only.
type Extractor struct {
	repoRoot   string
	gitTimeout time.Duration
	logger     *logging.Logger
}

// NewExtractor creates an Extractor for the repository at repoRoot.
func NewExtractor(cfg *config.Config, logger *logging.Logger) (*Extractor, error) {
	if logger == nil {
		return nil, errors.New(errors.InternalError, "Logger is required for Extractor", nil)
	}

	timeout := DefaultGitTimeout
	if cfg.Analysis.GitTimeoutMs > 0 {
		timeout = time.Duration(cfg.Analysis.GitTimeoutMs) * time.Millisecond
	}

	e := &Extractor{
		repoRoot:   cfg.RepoRoot,
		gitTimeout: timeout,
		logger:     logger,
	}

	if !e.isGitRepository() {
		return nil, errors.New(errors.RepoUnavailable,
			"Not a git repository", nil).WithDetails(map[string]interface{}{
			"repoRoot": cfg.RepoRoot,
		})
	}

	return e, nil
}

// ExtractReality queries commit history constrained to the window,
// optionally filtered by branch and path prefix. An empty window is a
// warning on the corpus, not an error.
func (e *Extractor) ExtractReality(ctx context.Context, window Window, branch, pathFilter string) (*RealityCorpus, error) {
	// Format: hash|author date ISO 8601|subject
	args := []string{
		"log",
		"--format=%H|%aI|%s",
		fmt.Sprintf("--since=%s", window.Since.Format(time.RFC3339)),
		fmt.Sprintf("--until=%s", window.Until.Format(time.RFC3339)),
	}
	if branch != "" {
		args = append(args, branch)
	}
	if pathFilter != "" {
		args = append(args, "--", pathFilter)
	}

	e.logger.Debug("Extracting commit history", map[string]interface{}{
		"since":  window.Since.Format(time.RFC3339),
		"until":  window.Until.Format(time.RFC3339),
		"branch": branch,
	})

	lines, err := e.gitLines(ctx, args...)
	if err != nil {
		return nil, err
	}

	corpus := &RealityCorpus{Window: window}
	for _, line := range lines {
		parts := strings.SplitN(line, "|", 3)
		if len(parts) != 3 {
			e.logger.Warn("Skipping malformed git log line", map[string]interface{}{
				"line": line,
			})
			continue
		}

		ts, err := time.Parse(time.RFC3339, parts[1])
		if err != nil {
			e.logger.Warn("Skipping commit with unparseable timestamp", map[string]interface{}{
				"hash": parts[0],
			})
			continue
		}

		corpus.Commits = append(corpus.Commits, CommitRecord{
			Hash:      parts[0],
			Message:   parts[2],
			Timestamp: ts,
		})
	}

	if len(corpus.Commits) == 0 {
		corpus.Warnings = append(corpus.Warnings, Warning{
			Code:    WarnEmptyHistory,
			Message: fmt.Sprintf("No commits in the last %d days", int(window.Until.Sub(window.Since).Hours()/24)),
		})
	}

	return corpus, nil
}

// ExtractIntent reads the configured documentation sources. Missing
// files are skipped with a warning; documentation coverage is expected
// to be incomplete for many projects.
func (e *Extractor) ExtractIntent(sources []config.DocumentSourceConfig, maxContentLength int) *IntentCorpus {
	corpus := &IntentCorpus{}

	for _, src := range sources {
		path := src.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(e.repoRoot, path)
		}

		info, err := os.Stat(path)
		if err != nil {
			corpus.Warnings = append(corpus.Warnings, Warning{
				Code:    WarnDocMissing,
				Message: "Documentation source not found",
				Subject: src.Path,
			})
			e.logger.Warn("Skipping missing documentation source", map[string]interface{}{
				"path": src.Path,
			})
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			corpus.Warnings = append(corpus.Warnings, Warning{
				Code:    WarnDocMissing,
				Message: "Documentation source not readable",
				Subject: src.Path,
			})
			continue
		}

		content := string(data)
		if len(content) > maxContentLength {
			// Truncate from the start of the file so results are reproducible
			content = content[:maxContentLength]
		}

		corpus.Documents = append(corpus.Documents, DocumentSource{
			Path:         src.Path,
			Weight:       src.Weight,
			Content:      content,
			LastModified: info.ModTime(),
		})
	}

	return corpus
}

func (e *Extractor) isGitRepository() bool {
	ctx, cancel := context.WithTimeout(context.Background(), e.gitTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = e.repoRoot
	output, err := cmd.Output()
	return err == nil && strings.TrimSpace(string(output)) == "true"
}

// gitLines runs a git command with timeout and returns non-empty output lines.
func (e *Extractor) gitLines(ctx context.Context, args ...string) ([]string, error) {
	cmdCtx, cancel := context.WithTimeout(ctx, e.gitTimeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, "git", args...)
	cmd.Dir = e.repoRoot

	output, err := cmd.Output()
	if err != nil {
		if cmdCtx.Err() == context.DeadlineExceeded {
			return nil, errors.New(errors.Timeout, "Git command timed out", err).
				WithDetails(map[string]interface{}{"args": args})
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, errors.New(errors.ExtractionFailed, "Git command failed", err).
				WithDetails(map[string]interface{}{
					"args":   args,
					"stderr": string(exitErr.Stderr),
				})
		}
		return nil, errors.New(errors.ExtractionFailed, "Failed to execute git", err)
	}

	raw := strings.Split(strings.TrimSpace(string(output)), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines, nil
}
