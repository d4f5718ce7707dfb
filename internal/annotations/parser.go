package annotations

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ErrNotAnnotation is returned for comments that are not assisted:: directives,
// so callers can skip ordinary comments without treating them as failures.
var ErrNotAnnotation = errors.New("not an assisted annotation")

// directiveAST is the participle grammar for one directive line
type directiveAST struct {
	Kind  string    `parser:"Comment 'assisted' Separator @Ident"`
	Args  []string  `parser:"( @Ident )*"`
	Flags []flagAST `parser:"( @@ )*"`
}

// flagAST represents a -Flag or -Flag=Value item
type flagAST struct {
	Name  string  `parser:"Dash @Ident"`
	Value *string `parser:"( Equals @Ident )?"`
}

// Parser parses assisted:: directive comments
type Parser struct {
	parser   *participle.Parser[directiveAST]
	registry AnnotationRegistry
}

// NewParser creates a directive parser validating against the given registry
func NewParser(registry AnnotationRegistry) *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `//`},
		{Name: "Separator", Pattern: `::`},
		{Name: "Equals", Pattern: `=`},
		{Name: "Dash", Pattern: `-`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_.]*`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser := participle.MustBuild[directiveAST](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)

	return &Parser{
		parser:   parser,
		registry: registry,
	}
}

// ParseAnnotation parses a single comment line. Comments that do not carry the
// assisted:: prefix return ErrNotAnnotation; malformed directives return a
// descriptive error.
func (p *Parser) ParseAnnotation(comment string, location SourceLocation) (*ParsedAnnotation, error) {
	trimmed := strings.TrimSpace(comment)
	if !strings.HasPrefix(trimmed, "//") {
		return nil, ErrNotAnnotation
	}
	body := strings.TrimSpace(strings.TrimPrefix(trimmed, "//"))
	if !strings.HasPrefix(body, "assisted::") {
		return nil, ErrNotAnnotation
	}

	// Normalize "// assisted::..." so the lexer sees a fixed shape
	ast, err := p.parser.ParseString(location.File, "//"+body)
	if err != nil {
		return nil, fmt.Errorf("malformed assisted:: directive %q: %w", trimmed, err)
	}

	annotationType, err := ParseAnnotationType(ast.Kind)
	if err != nil {
		return nil, err
	}

	parsed := &ParsedAnnotation{
		Type:     annotationType,
		Args:     ast.Args,
		Flags:    make(map[string]string),
		Location: location,
		Raw:      trimmed,
	}
	for _, flag := range ast.Flags {
		value := ""
		if flag.Value != nil {
			value = *flag.Value
		}
		parsed.Flags[flag.Name] = value
	}

	if p.registry != nil {
		if err := p.validateAgainstSchema(parsed); err != nil {
			return nil, err
		}
	}

	return parsed, nil
}

// validateAgainstSchema checks argument counts and flags against the registry
func (p *Parser) validateAgainstSchema(annotation *ParsedAnnotation) error {
	schema, err := p.registry.GetSchema(annotation.Type)
	if err != nil {
		return fmt.Errorf("no schema found for annotation type %s", annotation.Type)
	}

	if len(annotation.Args) < schema.MinArgs {
		return fmt.Errorf("assisted::%s requires at least %d argument(s), got %d (example: %s)",
			annotation.Type, schema.MinArgs, len(annotation.Args), firstExample(schema))
	}
	if len(annotation.Args) > schema.MaxArgs {
		return fmt.Errorf("assisted::%s accepts at most %d argument(s), got %d (example: %s)",
			annotation.Type, schema.MaxArgs, len(annotation.Args), firstExample(schema))
	}

	for flagName := range annotation.Flags {
		if _, exists := schema.Flags[flagName]; !exists {
			return fmt.Errorf("unknown flag -%s for assisted::%s", flagName, annotation.Type)
		}
	}

	for flagName, spec := range schema.Flags {
		if spec.Required {
			if _, exists := annotation.Flags[flagName]; !exists {
				return fmt.Errorf("missing required flag -%s for assisted::%s", flagName, annotation.Type)
			}
		}
	}

	return nil
}

func firstExample(schema AnnotationSchema) string {
	if len(schema.Examples) > 0 {
		return schema.Examples[0]
	}
	return "//assisted::" + schema.Type.String()
}
