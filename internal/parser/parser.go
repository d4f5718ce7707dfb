package parser

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/grandstaish/assistedinject/internal/annotations"
	"github.com/grandstaish/assistedinject/internal/models"
)

// GeneratedFileName is the per-package output file this tool owns. The parser
// skips it so re-running generation never feeds its own output back in.
const GeneratedFileName = "assistedinject_gen.go"

// Parser builds PackageUniverse snapshots from Go source
type Parser struct {
	fileSet     *token.FileSet
	annotations *annotations.Parser
}

// NewParser creates a new symbol parser using the builtin directive schemas
func NewParser() *Parser {
	return &Parser{
		fileSet:     token.NewFileSet(),
		annotations: annotations.NewParser(annotations.DefaultRegistry()),
	}
}

// ParseSource parses source code from a string, mainly for tests
func (p *Parser) ParseSource(filename, source string) (*PackageUniverse, error) {
	file, err := parser.ParseFile(p.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	universe := p.newUniverse(file.Name.Name, "./")
	p.scanFile(universe, file, filename)
	p.finish(universe)
	return universe, nil
}

// ParseDirectory parses all Go files of the single package in the directory,
// skipping tests and previously generated output
func (p *Parser) ParseDirectory(path string) (*PackageUniverse, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	var universe *PackageUniverse
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}
		if strings.HasSuffix(name, "_test.go") || name == GeneratedFileName {
			continue
		}

		filename := filepath.Join(path, name)
		file, err := parser.ParseFile(p.fileSet, filename, nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("failed to parse file %s: %w", filename, err)
		}

		if universe == nil {
			universe = p.newUniverse(file.Name.Name, path)
		} else if universe.PackageName != file.Name.Name {
			return nil, fmt.Errorf("multiple packages found in directory %s: %s and %s",
				path, universe.PackageName, file.Name.Name)
		}
		p.scanFile(universe, file, filename)
	}

	if universe == nil {
		return nil, fmt.Errorf("no Go packages found in directory %s", path)
	}
	p.finish(universe)
	return universe, nil
}

func (p *Parser) newUniverse(packageName, packagePath string) *PackageUniverse {
	return &PackageUniverse{
		PackageName: packageName,
		PackagePath: packagePath,
		Structs:     make(map[string]*StructDecl),
	}
}

// finish puts slices into a deterministic order regardless of file iteration
func (p *Parser) finish(universe *PackageUniverse) {
	sort.Slice(universe.Constructors, func(i, j int) bool {
		return universe.Constructors[i].FuncName < universe.Constructors[j].FuncName
	})
	sort.Slice(universe.Factories, func(i, j int) bool {
		return universe.Factories[i].Name < universe.Factories[j].Name
	})
	sort.Slice(universe.Imports, func(i, j int) bool {
		return universe.Imports[i].Path < universe.Imports[j].Path
	})
}

// scanFile walks one file's declarations and records structs, constructors,
// marked factory types, and any site errors
func (p *Parser) scanFile(universe *PackageUniverse, file *ast.File, filename string) {
	for _, imp := range file.Imports {
		spec := ImportSpec{Path: strings.Trim(imp.Path.Value, `"`)}
		if imp.Name != nil {
			spec.Alias = imp.Name.Name
		}
		if !containsImport(universe.Imports, spec) {
			universe.Imports = append(universe.Imports, spec)
		}
	}

	ast.Inspect(file, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.GenDecl:
			if node.Tok == token.TYPE {
				for _, spec := range node.Specs {
					typeSpec, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}
					doc := typeSpec.Doc
					if doc == nil {
						doc = node.Doc
					}
					p.recordType(universe, typeSpec, doc, filename)
				}
			}
			return false
		case *ast.FuncDecl:
			p.recordFunc(universe, node, filename)
			return false
		}
		return true
	})
}

// recordType handles one type declaration: struct bookkeeping plus factory markers
func (p *Parser) recordType(universe *PackageUniverse, typeSpec *ast.TypeSpec, doc *ast.CommentGroup, filename string) {
	name := typeSpec.Name.Name
	location := p.location(typeSpec.Pos(), filename)

	if _, ok := typeSpec.Type.(*ast.StructType); ok {
		universe.Structs[name] = &StructDecl{
			Name:     name,
			Exported: ast.IsExported(name),
			Location: location,
		}
	}

	directives := p.parseDirectives(universe, doc, filename, name)
	if len(directives) == 0 {
		return
	}

	var factory *models.FactoryInterface
	qualifiers := make(map[string]string)

	for _, directive := range directives {
		switch directive.Type {
		case annotations.FactoryAnnotation:
			if factory != nil {
				universe.SiteErrors = append(universe.SiteErrors, models.NewValidationError(
					models.ErrorKindStructural, name, location,
					"type %s carries more than one assisted::factory marker", name))
				continue
			}
			factory = &models.FactoryInterface{
				Name:       name,
				TargetName: directive.Arg(0),
				Exported:   ast.IsExported(name),
				Qualifiers: qualifiers,
				Location:   location,
			}
		case annotations.QualifierAnnotation:
			qualifiers[directive.Arg(0)] = directive.Arg(1)
		default:
			universe.SiteErrors = append(universe.SiteErrors, models.NewValidationError(
				models.ErrorKindStructural, name, location,
				"assisted::%s is not valid on a type declaration (found on %s)", directive.Type, name))
		}
	}

	if factory == nil {
		if len(qualifiers) > 0 {
			universe.SiteErrors = append(universe.SiteErrors, models.NewValidationError(
				models.ErrorKindStructural, name, location,
				"assisted::qualifier on type %s requires an assisted::factory marker on the same type", name))
		}
		return
	}

	if interfaceType, ok := typeSpec.Type.(*ast.InterfaceType); ok {
		factory.IsInterface = true
		factory.Methods = p.interfaceMethods(interfaceType, filename)
	}
	universe.Factories = append(universe.Factories, factory)
}

// interfaceMethods extracts methods declared directly on the interface.
// Embedded interfaces carry no names and are excluded from factory-method
// selection.
func (p *Parser) interfaceMethods(interfaceType *ast.InterfaceType, filename string) []models.FactoryMethod {
	var methods []models.FactoryMethod
	for _, field := range interfaceType.Methods.List {
		if len(field.Names) == 0 {
			continue // embedded interface
		}
		funcType, ok := field.Type.(*ast.FuncType)
		if !ok {
			continue
		}
		for _, methodName := range field.Names {
			method := models.FactoryMethod{
				Name:       methodName.Name,
				Exported:   ast.IsExported(methodName.Name),
				Parameters: fieldParameters(funcType.Params),
				Location:   p.location(methodName.Pos(), filename),
			}
			if funcType.Results != nil && len(funcType.Results.List) > 0 {
				results := resultTypes(funcType.Results)
				method.Returns = results[0]
				method.ExtraResults = results[1:]
			}
			methods = append(methods, method)
		}
	}
	return methods
}

// recordFunc handles one function declaration, building a constructor entry
// for package-level functions that return a value
func (p *Parser) recordFunc(universe *PackageUniverse, funcDecl *ast.FuncDecl, filename string) {
	name := funcDecl.Name.Name
	location := p.location(funcDecl.Pos(), filename)
	directives := p.parseDirectives(universe, funcDecl.Doc, filename, name)

	if funcDecl.Recv != nil {
		for _, directive := range directives {
			universe.SiteErrors = append(universe.SiteErrors, models.NewValidationError(
				models.ErrorKindStructural, name, location,
				"assisted::%s is not valid on a method (found on %s)", directive.Type, name))
		}
		return
	}

	constructor := &models.Constructor{
		FuncName:   name,
		Exported:   ast.IsExported(name),
		Parameters: fieldParameters(funcDecl.Type.Params),
		Assisted:   make(map[string]bool),
		Qualifiers: make(map[string]string),
		Location:   location,
	}
	if funcDecl.Type.Results != nil && len(funcDecl.Type.Results.List) > 0 {
		results := resultTypes(funcDecl.Type.Results)
		constructor.Returns = results[0]
		constructor.ExtraResults = results[1:]
	}

	for _, directive := range directives {
		switch directive.Type {
		case annotations.InjectAnnotation:
			constructor.Marked = true
		case annotations.ParamAnnotation:
			constructor.Assisted[directive.Arg(0)] = true
			if qualifier := directive.Flag("Qualifier"); qualifier != "" {
				constructor.Qualifiers[directive.Arg(0)] = qualifier
			}
		case annotations.QualifierAnnotation:
			constructor.Qualifiers[directive.Arg(0)] = directive.Arg(1)
		case annotations.FactoryAnnotation:
			universe.SiteErrors = append(universe.SiteErrors, models.NewValidationError(
				models.ErrorKindStructural, name, location,
				"assisted::factory is not valid on a function (found on %s)", name))
		}
	}

	if constructor.Marked && constructor.Returns == "" {
		universe.SiteErrors = append(universe.SiteErrors, models.NewValidationError(
			models.ErrorKindStructural, name, location,
			"assisted::inject on %s requires the function to return the constructed type", name))
		return
	}

	universe.Constructors = append(universe.Constructors, constructor)
}

// parseDirectives extracts assisted:: directives from a doc comment, turning
// malformed lines into site errors instead of aborting the scan
func (p *Parser) parseDirectives(universe *PackageUniverse, doc *ast.CommentGroup, filename, symbol string) []*annotations.ParsedAnnotation {
	if doc == nil {
		return nil
	}

	var directives []*annotations.ParsedAnnotation
	for _, comment := range doc.List {
		position := p.fileSet.Position(comment.Pos())
		location := annotations.SourceLocation{
			File:   filename,
			Line:   position.Line,
			Column: position.Column,
		}
		directive, err := p.annotations.ParseAnnotation(comment.Text, location)
		if err != nil {
			if errors.Is(err, annotations.ErrNotAnnotation) {
				continue
			}
			universe.SiteErrors = append(universe.SiteErrors, &models.ValidationError{
				Kind:      models.ErrorKindStructural,
				Candidate: symbol,
				Message:   err.Error(),
				Location:  models.SourceLocation{File: filename, Line: position.Line},
				Cause:     err,
			})
			continue
		}
		directives = append(directives, directive)
	}
	return directives
}

func (p *Parser) location(pos token.Pos, filename string) models.SourceLocation {
	position := p.fileSet.Position(pos)
	return models.SourceLocation{File: filename, Line: position.Line}
}

// fieldParameters expands an ast field list into formal parameters, preserving
// declaration order and handling shared types like (a, b int)
func fieldParameters(fields *ast.FieldList) []models.FormalParameter {
	if fields == nil {
		return nil
	}
	var params []models.FormalParameter
	for _, field := range fields.List {
		typeText := typeString(field.Type)
		if len(field.Names) == 0 {
			params = append(params, models.FormalParameter{Name: "", Type: typeText})
			continue
		}
		for _, name := range field.Names {
			params = append(params, models.FormalParameter{Name: name.Name, Type: typeText})
		}
	}
	return params
}

// resultTypes flattens a result field list into type expressions in
// declaration order, expanding grouped results like (a, b int)
func resultTypes(fields *ast.FieldList) []string {
	var results []string
	for _, field := range fields.List {
		typeText := typeString(field.Type)
		count := len(field.Names)
		if count == 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			results = append(results, typeText)
		}
	}
	return results
}

func containsImport(imports []ImportSpec, spec ImportSpec) bool {
	for _, existing := range imports {
		if existing == spec {
			return true
		}
	}
	return false
}
