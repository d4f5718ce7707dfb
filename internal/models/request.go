package models

// InjectionRequest is the fully resolved description of one assisted-injection
// declaration: which constructor to call, which factory interface to
// implement, and how every parameter is supplied. It is built once after all
// validation passes and never mutated afterwards.
type InjectionRequest struct {
	Target        *CandidateType    // type being constructed
	Factory       *FactoryInterface // interface the generated implementation satisfies
	Method        *FactoryMethod    // single abstract method of the factory
	Constructor   *Constructor      // resolved marked constructor
	AllParameters []Parameter       // classified constructor parameters, in declaration order
}

// AssistedParameters returns the parameters supplied by the factory caller
func (r *InjectionRequest) AssistedParameters() []Parameter {
	var assisted []Parameter
	for _, param := range r.AllParameters {
		if param.Assisted {
			assisted = append(assisted, param)
		}
	}
	return assisted
}

// ProvidedParameters returns the parameters supplied by the container
func (r *InjectionRequest) ProvidedParameters() []Parameter {
	var provided []Parameter
	for _, param := range r.AllParameters {
		if !param.Assisted {
			provided = append(provided, param)
		}
	}
	return provided
}

// GeneratedFile represents an emitted factory implementation file
type GeneratedFile struct {
	PackageName string // name of the package the file belongs to
	FilePath    string // path where the file should be written
	Content     string // formatted Go source
	Factories   int    // number of factory implementations in the file
}
