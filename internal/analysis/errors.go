package analysis

import "fmt"

// InvalidInputError indicates one of the input texts was empty after trimming.
type InvalidInputError struct {
	Field string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s text cannot be empty", e.Field)
}

// BlockedError indicates the provider returned no candidate, typically a
// safety block.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "unknown"
	}
	return fmt.Sprintf("model response was blocked or empty (reason: %s)", reason)
}

// AnalysisError wraps any failure during the model call, carrying a snippet
// of whatever raw text was received for diagnostics.
type AnalysisError struct {
	Cause      error
	RawSnippet string
}

func (e *AnalysisError) Error() string {
	if e.RawSnippet != "" {
		return fmt.Sprintf("analysis failed: %v (raw response snippet: %q)", e.Cause, e.RawSnippet)
	}
	return fmt.Sprintf("analysis failed: %v", e.Cause)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}
