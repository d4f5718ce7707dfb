// Package resolver implements the validation pipeline for assisted-injection
// declarations: constructor resolution, factory resolution, parameter
// classification, key matching, and request building. Every stage is a pure
// function over the package snapshot; a failure at any stage is terminal for
// the candidate being validated and carries the most specific source location
// available.
package resolver

import (
	"github.com/grandstaish/assistedinject/internal/models"
)

// Resolve runs the full pipeline for one candidate and builds its injection
// request. It returns exactly one of request or error.
func Resolve(candidate *models.CandidateType) (*models.InjectionRequest, *models.ValidationError) {
	constructor, constructorParams, verr := ResolveConstructor(candidate)
	if verr != nil {
		return nil, verr
	}

	factory, method, verr := ResolveFactory(candidate, constructor)
	if verr != nil {
		return nil, verr
	}

	factoryParams := ClassifyFactoryParameters(factory, method)
	if verr := MatchKeys(candidate, constructor, constructorParams, factoryParams); verr != nil {
		return nil, verr
	}

	return BuildRequest(candidate, constructor, constructorParams, factory, method), nil
}

// BuildRequest aggregates the resolved facts into an immutable injection
// request. All validation has already happened; this performs none.
func BuildRequest(candidate *models.CandidateType, constructor *models.Constructor,
	parameters []models.Parameter, factory *models.FactoryInterface, method *models.FactoryMethod) *models.InjectionRequest {

	return &models.InjectionRequest{
		Target:        candidate,
		Factory:       factory,
		Method:        method,
		Constructor:   constructor,
		AllParameters: parameters,
	}
}
