package utils

import (
	"sync"

	"github.com/grandstaish/assistedinject/internal/models"
)

// Reporter is the diagnostic sink for validation failures. Every failure is
// reported with error severity against the most specific symbol location the
// pipeline could determine.
type Reporter interface {
	Report(err *models.ValidationError)
}

// ConsoleReporter writes validation errors to the diagnostic system
type ConsoleReporter struct {
	diagnostics *DiagnosticSystem
	verbose     bool
	errors      int
}

// NewConsoleReporter creates a reporter backed by the diagnostic system
func NewConsoleReporter(diagnostics *DiagnosticSystem, verbose bool) *ConsoleReporter {
	return &ConsoleReporter{
		diagnostics: diagnostics,
		verbose:     verbose,
	}
}

// Report writes one validation error, with suggestions in verbose mode
func (r *ConsoleReporter) Report(err *models.ValidationError) {
	r.errors++
	r.diagnostics.Error("%s", err.Error())
	if r.verbose {
		for _, suggestion := range err.Suggestions {
			r.diagnostics.List("%s", suggestion)
		}
	}
}

// ErrorCount returns the number of errors reported so far
func (r *ConsoleReporter) ErrorCount() int {
	return r.errors
}

// CollectingReporter accumulates errors in memory. It is safe for concurrent
// use so parallel validation only has to serialize at the sink.
type CollectingReporter struct {
	mu     sync.Mutex
	Errors []*models.ValidationError
}

// Report stores the error
func (r *CollectingReporter) Report(err *models.ValidationError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, err)
}

// Messages returns the accumulated error messages in report order
func (r *CollectingReporter) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	messages := make([]string, len(r.Errors))
	for i, err := range r.Errors {
		messages[i] = err.Error()
	}
	return messages
}
