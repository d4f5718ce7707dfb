package resolver

import (
	"strings"

	"github.com/grandstaish/assistedinject/internal/models"
)

// MatchKeys validates the relationship between the constructor's classified
// parameters and the factory method's parameters. Checks run in a fixed order
// and the first failing check terminates validation of the candidate; within a
// single check every offending key is collected before reporting.
func MatchKeys(candidate *models.CandidateType, constructor *models.Constructor,
	constructorParams []models.Parameter, factoryParams []models.Parameter) *models.ValidationError {

	var assisted, provided []models.Parameter
	for _, param := range constructorParams {
		if param.Assisted {
			assisted = append(assisted, param)
		} else {
			provided = append(provided, param)
		}
	}

	if len(assisted) == 0 {
		return models.NewValidationError(
			models.ErrorKindPool, candidate.Name, constructor.Location,
			"constructor %s requires at least one assisted parameter", constructor.FuncName).
			WithSuggestions("Mark caller-supplied parameters with //assisted::param <name>")
	}
	if len(provided) == 0 {
		return models.NewValidationError(
			models.ErrorKindPool, candidate.Name, constructor.Location,
			"constructor %s requires at least one provided parameter", constructor.FuncName).
			WithSuggestions("Leave container-supplied parameters unmarked, or use plain injection instead")
	}

	if duplicates := duplicateKeys(assisted); len(duplicates) > 0 {
		return models.NewValidationError(
			models.ErrorKindDuplication, candidate.Name, constructor.Location,
			"constructor %s has duplicate assisted parameter keys: %s",
			constructor.FuncName, renderKeys(duplicates)).
			WithSuggestions("Distinguish parameters of the same type with -Qualifier or assisted::qualifier")
	}
	if duplicates := duplicateKeys(provided); len(duplicates) > 0 {
		return models.NewValidationError(
			models.ErrorKindDuplication, candidate.Name, constructor.Location,
			"constructor %s has duplicate provided parameter keys: %s",
			constructor.FuncName, renderKeys(duplicates)).
			WithSuggestions("Distinguish parameters of the same type with assisted::qualifier")
	}
	if duplicates := duplicateKeys(factoryParams); len(duplicates) > 0 {
		return models.NewValidationError(
			models.ErrorKindDuplication, candidate.Name, candidate.Location,
			"factory method for %s has duplicate parameter keys: %s",
			candidate.Name, renderKeys(duplicates)).
			WithSuggestions("Distinguish parameters of the same type with assisted::qualifier on the factory interface")
	}

	expectedKeys := keySetOf(assisted)
	factoryKeys := keySetOf(factoryParams)
	if !factoryKeys.Equal(expectedKeys) {
		missing := expectedKeys.Diff(factoryKeys)
		unknown := factoryKeys.Diff(expectedKeys)
		return models.NewValidationError(
			models.ErrorKindMismatch, candidate.Name, constructor.Location,
			"factory method parameters do not match the assisted parameters of %s: missing [%s], unknown [%s]",
			constructor.FuncName, renderKeys(missing), renderKeys(unknown))
	}

	return nil
}

// duplicateKeys returns each key appearing more than once in the pool, once
// per offending key, in stable order
func duplicateKeys(pool []models.Parameter) []models.Key {
	counts := make(map[models.Key]int, len(pool))
	for _, param := range pool {
		counts[param.Key()]++
	}

	var duplicates []models.Key
	for key, count := range counts {
		if count > 1 {
			duplicates = append(duplicates, key)
		}
	}
	models.SortKeys(duplicates)
	return duplicates
}

func keySetOf(pool []models.Parameter) models.KeySet {
	keys := make([]models.Key, 0, len(pool))
	for _, param := range pool {
		keys = append(keys, param.Key())
	}
	return models.NewKeySet(keys...)
}

func renderKeys(keys []models.Key) string {
	rendered := make([]string, len(keys))
	for i, key := range keys {
		rendered[i] = key.String()
	}
	return strings.Join(rendered, ", ")
}
