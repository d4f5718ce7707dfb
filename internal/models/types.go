package models

// SourceLocation represents where a declaration appears in source code
type SourceLocation struct {
	File string // file path
	Line int    // line number (1-based)
}

// IsZero reports whether the location is unset
func (l SourceLocation) IsZero() bool {
	return l.File == "" && l.Line == 0
}

// FormalParameter is a parameter exactly as declared in a function or method
// signature, before classification
type FormalParameter struct {
	Name string // parameter name, may be empty for interface method parameters
	Type string // type expression as written, e.g. "*log.Logger"
}

// Parameter is a classified constructor or factory-method parameter
type Parameter struct {
	Name      string // parameter name
	Type      string // type expression as written
	Qualifier string // qualifier name, empty when unqualified
	Assisted  bool   // true when supplied by the factory caller, false when supplied by the container
}

// Key returns the matching identity of the parameter
func (p Parameter) Key() Key {
	return Key{Type: p.Type, Qualifier: p.Qualifier}
}

// Constructor represents a package-level function that builds a candidate type
type Constructor struct {
	FuncName     string            // function name, e.g. "NewWidget"
	Marked       bool              // carries the assisted::inject marker
	Exported     bool              // identifier is exported
	Returns      string            // first result type as written, e.g. "*Widget"
	ExtraResults []string          // result types after the first, e.g. ["error"]
	Parameters   []FormalParameter // formal parameters in declaration order
	Assisted     map[string]bool   // parameter names marked via assisted::param
	Qualifiers   map[string]string // parameter name -> qualifier name
	Location     SourceLocation
}

// ReturnsError reports whether the constructor has the (T, error) shape
func (c *Constructor) ReturnsError() bool {
	return len(c.ExtraResults) == 1 && c.ExtraResults[0] == "error"
}

// FactoryMethod represents a single method declared directly on a factory interface
type FactoryMethod struct {
	Name         string            // method name, e.g. "Create"
	Exported     bool              // identifier is exported
	Returns      string            // first result type as written, empty when the method returns nothing
	ExtraResults []string          // result types after the first, e.g. ["error"]
	Parameters   []FormalParameter // formal parameters in declaration order
	Location     SourceLocation
}

// ReturnsError reports whether the method has the (T, error) shape
func (m *FactoryMethod) ReturnsError() bool {
	return len(m.ExtraResults) == 1 && m.ExtraResults[0] == "error"
}

// FactoryInterface represents a type carrying the assisted::factory marker.
// The marker may be attached to a non-interface type; IsInterface records what
// was actually declared so the resolver can reject the wrong shape.
type FactoryInterface struct {
	Name        string            // type name, e.g. "WidgetFactory"
	TargetName  string            // target type named by the marker
	Exported    bool              // identifier is exported
	IsInterface bool              // declared as an interface type
	Methods     []FactoryMethod   // methods declared directly on the interface, embedded interfaces excluded
	Qualifiers  map[string]string // factory method parameter name -> qualifier name
	Location    SourceLocation
}

// CandidateType is a struct type under validation because it carries one or
// both assisted-injection markers. It is a read-only snapshot derived from the
// scanned package.
type CandidateType struct {
	Name         string              // type name, e.g. "Widget"
	PackageName  string              // declaring package name
	PackagePath  string              // declaring package directory
	Exported     bool                // identifier is exported
	Constructors []*Constructor      // all package-level functions returning this type
	Factories    []*FactoryInterface // all marked factory types naming this type
	Location     SourceLocation
}
