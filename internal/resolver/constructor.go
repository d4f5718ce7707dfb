package resolver

import (
	"github.com/grandstaish/assistedinject/internal/models"
)

// ResolveConstructor finds the single eligible constructor of a candidate and
// classifies its parameters. Each rule is terminal for this candidate only.
func ResolveConstructor(candidate *models.CandidateType) (*models.Constructor, []models.Parameter, *models.ValidationError) {
	if !candidate.Exported {
		return nil, nil, models.NewValidationError(
			models.ErrorKindStructural, candidate.Name, candidate.Location,
			"type %s must be exported to participate in assisted injection", candidate.Name).
			WithSuggestions("Rename the type to start with an uppercase letter")
	}

	var marked []*models.Constructor
	for _, constructor := range candidate.Constructors {
		if constructor.Marked {
			marked = append(marked, constructor)
		}
	}

	if len(marked) == 0 {
		return nil, nil, models.NewValidationError(
			models.ErrorKindCardinality, candidate.Name, candidate.Location,
			"type %s has no constructor marked with assisted::inject", candidate.Name).
			WithSuggestions("Add //assisted::inject to the constructor function returning " + candidate.Name)
	}
	if len(marked) > 1 {
		err := models.NewValidationError(
			models.ErrorKindCardinality, candidate.Name, candidate.Location,
			"type %s has %d constructors marked with assisted::inject, expected exactly one",
			candidate.Name, len(marked))
		for _, constructor := range marked {
			err = err.WithSuggestions(constructor.FuncName + " at " + constructor.Location.File)
		}
		return nil, nil, err
	}

	constructor := marked[0]
	if !constructor.Exported {
		return nil, nil, models.NewValidationError(
			models.ErrorKindStructural, candidate.Name, constructor.Location,
			"constructor %s for type %s must be exported", constructor.FuncName, candidate.Name)
	}
	if len(constructor.ExtraResults) > 0 && !constructor.ReturnsError() {
		return nil, nil, models.NewValidationError(
			models.ErrorKindStructural, candidate.Name, constructor.Location,
			"constructor %s must return %s or (%s, error), got extra results %v",
			constructor.FuncName, constructor.Returns, constructor.Returns, constructor.ExtraResults)
	}

	parameters, verr := ClassifyParameters(candidate, constructor)
	if verr != nil {
		return nil, nil, verr
	}

	return constructor, parameters, nil
}

// ClassifyParameters classifies every formal parameter of the constructor as
// assisted or provided and computes its key. Marker directives naming a
// parameter that does not exist are structural errors.
func ClassifyParameters(candidate *models.CandidateType, constructor *models.Constructor) ([]models.Parameter, *models.ValidationError) {
	declared := make(map[string]bool, len(constructor.Parameters))
	for _, formal := range constructor.Parameters {
		declared[formal.Name] = true
	}

	for name := range constructor.Assisted {
		if !declared[name] {
			return nil, models.NewValidationError(
				models.ErrorKindStructural, candidate.Name, constructor.Location,
				"assisted::param names %q, which is not a parameter of %s", name, constructor.FuncName)
		}
	}
	for name := range constructor.Qualifiers {
		if !declared[name] {
			return nil, models.NewValidationError(
				models.ErrorKindStructural, candidate.Name, constructor.Location,
				"assisted::qualifier names %q, which is not a parameter of %s", name, constructor.FuncName)
		}
	}

	parameters := make([]models.Parameter, 0, len(constructor.Parameters))
	for _, formal := range constructor.Parameters {
		parameters = append(parameters, models.Parameter{
			Name:      formal.Name,
			Type:      formal.Type,
			Qualifier: constructor.Qualifiers[formal.Name],
			Assisted:  constructor.Assisted[formal.Name],
		})
	}
	return parameters, nil
}
