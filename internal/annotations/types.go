package annotations

import "fmt"

// AnnotationType represents the type of assisted:: directive
type AnnotationType int

const (
	// InjectAnnotation marks a constructor function: //assisted::inject
	InjectAnnotation AnnotationType = iota

	// ParamAnnotation marks a constructor parameter as assisted:
	// //assisted::param id [-Qualifier=Name]
	ParamAnnotation

	// QualifierAnnotation attaches a qualifier to a parameter:
	// //assisted::qualifier logger Name
	QualifierAnnotation

	// FactoryAnnotation marks a factory interface for a target type:
	// //assisted::factory Widget
	FactoryAnnotation
)

// String returns the string representation of the annotation type
func (a AnnotationType) String() string {
	switch a {
	case InjectAnnotation:
		return "inject"
	case ParamAnnotation:
		return "param"
	case QualifierAnnotation:
		return "qualifier"
	case FactoryAnnotation:
		return "factory"
	default:
		return "unknown"
	}
}

// ParseAnnotationType converts string to AnnotationType
func ParseAnnotationType(s string) (AnnotationType, error) {
	switch s {
	case "inject":
		return InjectAnnotation, nil
	case "param":
		return ParamAnnotation, nil
	case "qualifier":
		return QualifierAnnotation, nil
	case "factory":
		return FactoryAnnotation, nil
	default:
		return 0, fmt.Errorf("unknown annotation type: %s", s)
	}
}

// SourceLocation represents the location of an annotation in source code
type SourceLocation struct {
	File   string // file path
	Line   int    // line number (1-based)
	Column int    // column number (1-based)
}

// ParsedAnnotation represents a fully parsed assisted:: directive
type ParsedAnnotation struct {
	Type     AnnotationType    // directive kind
	Args     []string          // positional arguments in order
	Flags    map[string]string // named -Flag=Value pairs, value "" for bare flags
	Location SourceLocation    // source location
	Raw      string            // original comment text
}

// Arg returns the positional argument at index, or "" when absent
func (p *ParsedAnnotation) Arg(index int) string {
	if index < 0 || index >= len(p.Args) {
		return ""
	}
	return p.Args[index]
}

// Flag returns a flag value with an optional default
func (p *ParsedAnnotation) Flag(name string, defaultValue ...string) string {
	if value, exists := p.Flags[name]; exists && value != "" {
		return value
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// HasFlag checks if a flag is present
func (p *ParsedAnnotation) HasFlag(name string) bool {
	_, exists := p.Flags[name]
	return exists
}

// FlagSpec defines the specification for a directive flag
type FlagSpec struct {
	Required    bool   // whether the flag must be present
	Description string // flag description
}

// AnnotationSchema defines the accepted shape of a directive
type AnnotationSchema struct {
	Type        AnnotationType      // directive kind
	Description string              // human-readable description
	MinArgs     int                 // minimum positional arguments
	MaxArgs     int                 // maximum positional arguments
	Flags       map[string]FlagSpec // accepted flags
	Examples    []string            // usage examples
}
