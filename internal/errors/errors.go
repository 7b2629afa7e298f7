package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ConfigInvalid indicates malformed or missing configuration; fatal
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// CategoryInvalid indicates a malformed category entry in the taxonomy
	CategoryInvalid ErrorCode = "CATEGORY_INVALID"
	// ScoringInvalid indicates an empty keyword set reached the scorer; fatal
	ScoringInvalid ErrorCode = "SCORING_INVALID"
	// ExtractionFailed indicates commit or document extraction could not run at all
	ExtractionFailed ErrorCode = "EXTRACTION_FAILED"
	// OrthogonalityViolation indicates a category pair failed the independence threshold
	OrthogonalityViolation ErrorCode = "ORTHOGONALITY_VIOLATION"
	// DegenerateRatio indicates a division-by-zero condition in ratio computation
	DegenerateRatio ErrorCode = "DEGENERATE_RATIO"
	// RepoUnavailable indicates the target is not a git repository
	RepoUnavailable ErrorCode = "REPO_UNAVAILABLE"
	// Timeout indicates an extraction command timed out
	Timeout ErrorCode = "TIMEOUT"
	// StorageError indicates a run-history persistence failure
	StorageError ErrorCode = "STORAGE_ERROR"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// EditConfig suggests editing a configuration file
	EditConfig FixActionType = "edit-config"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	File        string        `json:"file,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
}

// AnalysisError represents a trustdebt error with code, message, and suggestions
type AnalysisError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new AnalysisError
func New(code ErrorCode, message string, cause error) *AnalysisError {
	return &AnalysisError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: suggestedFixes(code),
	}
}

// Error implements the error interface
func (e *AnalysisError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AnalysisError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *AnalysisError) WithDetails(details interface{}) *AnalysisError {
	e.Details = details
	return e
}

// CodeOf extracts the error code from an error, or InternalError if it
// is not an AnalysisError.
func CodeOf(err error) ErrorCode {
	if ae, ok := err.(*AnalysisError); ok {
		return ae.Code
	}
	return InternalError
}

// errorActions maps error codes to suggested fix actions
var errorActions = map[ErrorCode][]FixAction{
	ConfigInvalid: {
		{
			Type:        EditConfig,
			File:        ".trustdebt/config.json",
			Safe:        true,
			Description: "Review the analysis configuration",
		},
	},
	CategoryInvalid: {
		{
			Type:        RunCommand,
			Command:     "trustdebt categories",
			Safe:        true,
			Description: "Validate the category taxonomy and list problems",
		},
	},
	RepoUnavailable: {
		{
			Type:        RunCommand,
			Command:     "git status",
			Safe:        true,
			Description: "Verify you're in a git repository",
		},
	},
	OrthogonalityViolation: {
		{
			Type:        RunCommand,
			Command:     "trustdebt categories --suggest",
			Safe:        true,
			Description: "Show keyword refinement suggestions for overlapping pairs",
		},
	},
}

func suggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := errorActions[code]; ok {
		return fixes
	}
	return nil
}
