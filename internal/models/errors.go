package models

import (
	"fmt"
	"time"
)

// TimeoutError indicates an external call exceeded its time budget.
// Callers treat this as recoverable: the slow operation's result is discarded.
type TimeoutError struct {
	Operation string
	Budget    time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Operation, e.Budget)
}

// BackendError indicates the external generation or video capability itself failed
type BackendError struct {
	Operation string
	Err       error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s backend error: %v", e.Operation, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// ExtractionError indicates model output contained no recognizable JSON span
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("json extraction failed: %s", e.Reason)
}

// ParseError indicates an extracted JSON span could not be parsed
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("json parse failed: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError indicates a structurally invalid result, e.g. a generated
// course with zero modules
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Reason)
}
