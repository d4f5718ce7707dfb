package parser

import (
	"sort"

	"github.com/grandstaish/assistedinject/internal/models"
)

// StructDecl records a struct type declared in the scanned package
type StructDecl struct {
	Name     string
	Exported bool
	Location models.SourceLocation
}

// ImportSpec records one import of a scanned file, kept so the emitter can
// resolve qualified type expressions appearing in generated signatures
type ImportSpec struct {
	Alias string // local alias, empty for the default name
	Path  string // import path
}

// PackageUniverse is the read-only symbol snapshot for one package and one
// processing round. The pipeline only ever queries it; nothing mutates it
// after parsing.
type PackageUniverse struct {
	PackageName  string
	PackagePath  string
	Imports      []ImportSpec
	Structs      map[string]*StructDecl
	Constructors []*models.Constructor
	Factories    []*models.FactoryInterface

	// SiteErrors are non-fatal per-site failures found while building the
	// snapshot (malformed directives, markers on the wrong declaration).
	// They are reported but never abort the round.
	SiteErrors []*models.ValidationError
}

// Collect produces the deduplicated candidate set for the universe: the union
// of every factory marker's target type and every marked constructor's owner
// type. Sites whose marker cannot be tied to a struct declared in the package
// yield a site error without stopping collection.
func Collect(universe *PackageUniverse) ([]*models.CandidateType, []*models.ValidationError) {
	var siteErrors []*models.ValidationError
	siteErrors = append(siteErrors, universe.SiteErrors...)

	seen := make(map[string]bool)
	var names []string

	addCandidate := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for _, factory := range universe.Factories {
		if _, ok := universe.Structs[factory.TargetName]; !ok {
			siteErrors = append(siteErrors, models.NewValidationError(
				models.ErrorKindStructural, factory.TargetName, factory.Location,
				"assisted::factory on %s names %s, which is not a struct declared in package %s",
				factory.Name, factory.TargetName, universe.PackageName).
				WithSuggestions(
					"Declare the target as a struct type in the same package",
					"Check the spelling of the target type name"))
			continue
		}
		addCandidate(factory.TargetName)
	}

	for _, constructor := range universe.Constructors {
		if !constructor.Marked {
			continue
		}
		owner := localReturnType(constructor.Returns)
		if owner == "" {
			siteErrors = append(siteErrors, models.NewValidationError(
				models.ErrorKindStructural, constructor.FuncName, constructor.Location,
				"assisted::inject on %s requires the function to return a struct declared in the same package, got %q",
				constructor.FuncName, constructor.Returns))
			continue
		}
		if _, ok := universe.Structs[owner]; !ok {
			siteErrors = append(siteErrors, models.NewValidationError(
				models.ErrorKindStructural, constructor.FuncName, constructor.Location,
				"assisted::inject on %s returns %s, which is not a struct declared in package %s",
				constructor.FuncName, owner, universe.PackageName))
			continue
		}
		addCandidate(owner)
	}

	// Stable candidate order keeps output and diagnostics deterministic
	sort.Strings(names)

	candidates := make([]*models.CandidateType, 0, len(names))
	for _, name := range names {
		decl := universe.Structs[name]
		candidate := &models.CandidateType{
			Name:        name,
			PackageName: universe.PackageName,
			PackagePath: universe.PackagePath,
			Exported:    decl.Exported,
			Location:    decl.Location,
		}
		for _, constructor := range universe.Constructors {
			if localReturnType(constructor.Returns) == name {
				candidate.Constructors = append(candidate.Constructors, constructor)
			}
		}
		for _, factory := range universe.Factories {
			if factory.TargetName == name {
				candidate.Factories = append(candidate.Factories, factory)
			}
		}
		candidates = append(candidates, candidate)
	}

	return candidates, siteErrors
}

// localReturnType extracts the package-local type name from a constructor's
// first result. Pointer returns are unwrapped; qualified or anonymous types
// have no local name and yield "".
func localReturnType(returns string) string {
	name := returns
	for len(name) > 0 && name[0] == '*' {
		name = name[1:]
	}
	if name == "" {
		return ""
	}
	for _, r := range name {
		if !isIdentRune(r) {
			return ""
		}
	}
	return name
}

func isIdentRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
