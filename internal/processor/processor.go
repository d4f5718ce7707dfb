// Package processor drives one processing round over a package snapshot:
// candidate collection, per-candidate validation with error isolation, and
// hand-off of resolved requests to the emitter.
package processor

import (
	"github.com/grandstaish/assistedinject/internal/models"
	"github.com/grandstaish/assistedinject/internal/parser"
	"github.com/grandstaish/assistedinject/internal/resolver"
	"github.com/grandstaish/assistedinject/internal/utils"
)

// Emitter consumes resolved injection requests. Its implementation is outside
// the validation core; a failure or panic during emission is reported as an
// internal error without affecting other candidates.
type Emitter interface {
	Emit(request *models.InjectionRequest) error
}

// Processor validates all candidates of one package snapshot. Dependencies
// are explicit and scoped to a single round; a new round builds a new
// Processor from a new snapshot.
type Processor struct {
	universe *parser.PackageUniverse
	reporter utils.Reporter
	emitter  Emitter
	requests int
}

// New creates a processor for one round
func New(universe *parser.PackageUniverse, reporter utils.Reporter, emitter Emitter) *Processor {
	return &Processor{
		universe: universe,
		reporter: reporter,
		emitter:  emitter,
	}
}

// Process runs the round: every candidate is validated exactly once, errors
// in one candidate never abort the others, and every resolved request is
// handed to the emitter. The return value reports whether this processor
// claims exclusive ownership of the assisted:: markers; it never does, so
// other tools may observe the same markers.
func (p *Processor) Process() bool {
	candidates, siteErrors := parser.Collect(p.universe)
	for _, siteError := range siteErrors {
		p.reporter.Report(siteError)
	}

	for _, candidate := range candidates {
		request, verr := resolver.Resolve(candidate)
		if verr != nil {
			p.reporter.Report(verr)
			continue
		}
		p.emit(request)
	}

	return false
}

// RequestCount returns the number of requests successfully handed off
func (p *Processor) RequestCount() int {
	return p.requests
}

// emit hands one request to the emitter, converting failures and panics into
// reported internal errors so the round always completes
func (p *Processor) emit(request *models.InjectionRequest) {
	defer func() {
		if recovered := recover(); recovered != nil {
			p.reporter.Report(models.NewValidationError(
				models.ErrorKindInternal, request.Target.Name, request.Target.Location,
				"internal error while emitting factory for %s: %v", request.Target.Name, recovered))
		}
	}()

	if err := p.emitter.Emit(request); err != nil {
		p.reporter.Report(&models.ValidationError{
			Kind:      models.ErrorKindInternal,
			Candidate: request.Target.Name,
			Message:   "internal error while emitting factory for " + request.Target.Name,
			Location:  request.Target.Location,
			Cause:     err,
		})
		return
	}
	p.requests++
}
