package resolver

import (
	"github.com/grandstaish/assistedinject/internal/models"
)

// ResolveFactory finds the single eligible factory interface of a candidate
// and its single factory method
func ResolveFactory(candidate *models.CandidateType, constructor *models.Constructor) (*models.FactoryInterface, *models.FactoryMethod, *models.ValidationError) {
	if len(candidate.Factories) == 0 {
		return nil, nil, models.NewValidationError(
			models.ErrorKindCardinality, candidate.Name, candidate.Location,
			"type %s has no factory interface marked with assisted::factory", candidate.Name).
			WithSuggestions("Declare an interface with //assisted::factory " + candidate.Name)
	}
	if len(candidate.Factories) > 1 {
		err := models.NewValidationError(
			models.ErrorKindCardinality, candidate.Name, candidate.Location,
			"type %s has %d factory types marked with assisted::factory, expected exactly one",
			candidate.Name, len(candidate.Factories))
		for _, factory := range candidate.Factories {
			err = err.WithSuggestions(factory.Name + " at " + factory.Location.File)
		}
		return nil, nil, err
	}

	factory := candidate.Factories[0]
	if !factory.IsInterface {
		return nil, nil, models.NewValidationError(
			models.ErrorKindStructural, candidate.Name, factory.Location,
			"factory %s for type %s must be declared as an interface", factory.Name, candidate.Name)
	}
	if !factory.Exported {
		return nil, nil, models.NewValidationError(
			models.ErrorKindStructural, candidate.Name, factory.Location,
			"factory interface %s for type %s must be exported", factory.Name, candidate.Name)
	}

	// Unexported methods are implementation helpers, never the factory method.
	// Embedded interfaces were already excluded while building the snapshot.
	var eligible []models.FactoryMethod
	for _, method := range factory.Methods {
		if method.Exported {
			eligible = append(eligible, method)
		}
	}

	if len(eligible) == 0 {
		return nil, nil, models.NewValidationError(
			models.ErrorKindCardinality, candidate.Name, factory.Location,
			"factory interface %s declares no factory method", factory.Name).
			WithSuggestions("Declare exactly one exported method returning " + constructor.Returns)
	}
	if len(eligible) > 1 {
		names := ""
		for i, method := range eligible {
			if i > 0 {
				names += ", "
			}
			names += method.Name
		}
		return nil, nil, models.NewValidationError(
			models.ErrorKindCardinality, candidate.Name, factory.Location,
			"factory interface %s declares %d factory methods (%s), expected exactly one",
			factory.Name, len(eligible), names)
	}

	method := eligible[0]
	if method.Returns != constructor.Returns {
		return nil, nil, models.NewValidationError(
			models.ErrorKindStructural, candidate.Name, method.Location,
			"factory method %s.%s must return %s to match constructor %s, got %q",
			factory.Name, method.Name, constructor.Returns, constructor.FuncName, method.Returns)
	}
	if len(method.ExtraResults) > 0 && !method.ReturnsError() {
		return nil, nil, models.NewValidationError(
			models.ErrorKindStructural, candidate.Name, method.Location,
			"factory method %s.%s must return %s or (%s, error), got extra results %v",
			factory.Name, method.Name, constructor.Returns, constructor.Returns, method.ExtraResults)
	}

	// The generated method delegates with a direct return, so the method's
	// result shape must agree with the constructor's.
	if constructor.ReturnsError() && !method.ReturnsError() {
		return nil, nil, models.NewValidationError(
			models.ErrorKindStructural, candidate.Name, method.Location,
			"factory method %s.%s must return (%s, error) because constructor %s returns an error",
			factory.Name, method.Name, constructor.Returns, constructor.FuncName)
	}
	if method.ReturnsError() && !constructor.ReturnsError() {
		return nil, nil, models.NewValidationError(
			models.ErrorKindStructural, candidate.Name, method.Location,
			"factory method %s.%s returns an error but constructor %s returns only %s",
			factory.Name, method.Name, constructor.FuncName, constructor.Returns)
	}

	return factory, &method, nil
}

// ClassifyFactoryParameters computes the key-bearing view of the factory
// method's parameters, applying qualifiers declared on the factory interface
func ClassifyFactoryParameters(factory *models.FactoryInterface, method *models.FactoryMethod) []models.Parameter {
	parameters := make([]models.Parameter, 0, len(method.Parameters))
	for _, formal := range method.Parameters {
		parameters = append(parameters, models.Parameter{
			Name:      formal.Name,
			Type:      formal.Type,
			Qualifier: factory.Qualifiers[formal.Name],
			Assisted:  true,
		})
	}
	return parameters
}
