package domain

import (
	"fmt"
	"strings"
	"time"
)

// DataError reports malformed or inconsistent input. It is never retried:
// the offending file's pipeline aborts, other files are unaffected.
type DataError struct {
	Reason string
	Code   string
	Index  int
}

func (e *DataError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("data error: %s (code %q)", e.Reason, e.Code)
	}
	return fmt.Sprintf("data error: %s", e.Reason)
}

// BackendFailure records one failed conversion attempt inside a RenderError.
type BackendFailure struct {
	Backend string
	Err     error
}

// RenderError means every backend in the configured chain failed to produce
// a structurally valid document for one document type.
type RenderError struct {
	DocumentType DocumentType
	Attempts     []BackendFailure
}

func (e *RenderError) Error() string {
	names := make([]string, 0, len(e.Attempts))
	for _, attempt := range e.Attempts {
		names = append(names, attempt.Backend)
	}
	return fmt.Sprintf("render error: all backends failed for %s (tried %s)",
		e.DocumentType, strings.Join(names, ", "))
}

// QualityDegraded is a warning state, not a failure: an artifact exists but
// scored below the acceptance threshold after the fallback chain was
// exhausted. The score and backend are preserved for human review.
type QualityDegraded struct {
	DocumentType DocumentType
	Score        float64
	Threshold    float64
	Backend      string
}

func (e *QualityDegraded) Error() string {
	return fmt.Sprintf("quality degraded: %s scored %.2f against threshold %.2f (backend %s)",
		e.DocumentType, e.Score, e.Threshold, e.Backend)
}

// TimeoutError marks a backend attempt that exceeded its allotted time.
// For fallback purposes it is treated identically to a backend failure.
type TimeoutError struct {
	Backend string
	Limit   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("backend %s timed out after %s", e.Backend, e.Limit)
}
