package models

import "fmt"

// ErrorKind classifies validation failures for reporting
type ErrorKind int

const (
	// ErrorKindStructural covers wrong declaration shapes: unexported
	// candidates, factory markers on non-interfaces, markers naming unknown
	// targets or parameters
	ErrorKindStructural ErrorKind = iota

	// ErrorKindCardinality covers zero-or-multiple failures: constructors,
	// factory types, factory methods
	ErrorKindCardinality

	// ErrorKindPool covers empty assisted or provided parameter pools
	ErrorKindPool

	// ErrorKindDuplication covers repeated keys within a single pool
	ErrorKindDuplication

	// ErrorKindMismatch covers factory keys not matching assisted keys
	ErrorKindMismatch

	// ErrorKindInternal covers unexpected failures during emission
	ErrorKindInternal
)

// String returns the string representation of the error kind
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindStructural:
		return "StructuralError"
	case ErrorKindCardinality:
		return "CardinalityError"
	case ErrorKindPool:
		return "PoolError"
	case ErrorKindDuplication:
		return "DuplicationError"
	case ErrorKindMismatch:
		return "MismatchError"
	case ErrorKindInternal:
		return "InternalError"
	default:
		return "UnknownError"
	}
}

// ValidationError is a terminal, per-candidate failure. It names the
// offending symbol via Candidate and Location, and aborts only the candidate
// it belongs to.
type ValidationError struct {
	Kind        ErrorKind      // error classification
	Candidate   string         // candidate type name the error belongs to
	Message     string         // human-readable message
	Location    SourceLocation // most specific symbol location available
	Suggestions []string       // remediation hints shown in verbose output
	Cause       error          // underlying error, if any
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Location.File != "" && e.Location.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %s", e.Location.File, e.Location.Line, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error cause
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error against a candidate
func NewValidationError(kind ErrorKind, candidate string, location SourceLocation, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Kind:      kind,
		Candidate: candidate,
		Message:   fmt.Sprintf(format, args...),
		Location:  location,
	}
}

// WithSuggestions attaches remediation hints and returns the error
func (e *ValidationError) WithSuggestions(suggestions ...string) *ValidationError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}
