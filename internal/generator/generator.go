// Package generator renders validated injection requests into factory
// implementations, one generated file per package.
package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/grandstaish/assistedinject/internal/models"
	"github.com/grandstaish/assistedinject/internal/parser"
	"github.com/grandstaish/assistedinject/internal/resolver"
	"github.com/grandstaish/assistedinject/internal/utils"
)

// Emitter accumulates resolved requests for one package and renders them into
// a single output file. Each request is rendered at emission time so a
// template failure surfaces against the candidate that caused it.
type Emitter struct {
	universe  *parser.PackageUniverse
	fragments []string
	factories int
}

// NewEmitter creates an emitter for one package snapshot
func NewEmitter(universe *parser.PackageUniverse) *Emitter {
	return &Emitter{universe: universe}
}

// Emit renders the factory implementation for one request
func (e *Emitter) Emit(request *models.InjectionRequest) error {
	fragment, err := renderFactoryImpl(request)
	if err != nil {
		return fmt.Errorf("failed to render factory for %s: %w", request.Target.Name, err)
	}
	e.fragments = append(e.fragments, fragment)
	e.factories++
	return nil
}

// File assembles and formats the generated file for everything emitted so
// far. It returns nil when no factories were emitted, so packages without
// valid declarations produce no output file.
func (e *Emitter) File() (*models.GeneratedFile, error) {
	if e.factories == 0 {
		return nil, nil
	}

	var builder strings.Builder
	builder.WriteString("// Code generated by assistedinject. DO NOT EDIT.\n")
	builder.WriteString("// This file was automatically generated and should not be modified manually.\n\n")
	builder.WriteString(fmt.Sprintf("package %s\n\n", e.universe.PackageName))

	// Emit every import the package declares; formatting prunes the unused
	// ones so qualified types in generated signatures always resolve.
	if len(e.universe.Imports) > 0 {
		builder.WriteString("import (\n")
		for _, spec := range e.universe.Imports {
			if spec.Alias != "" {
				builder.WriteString(fmt.Sprintf("\t%s %q\n", spec.Alias, spec.Path))
			} else {
				builder.WriteString(fmt.Sprintf("\t%q\n", spec.Path))
			}
		}
		builder.WriteString(")\n\n")
	}

	for i, fragment := range e.fragments {
		if i > 0 {
			builder.WriteString("\n\n")
		}
		builder.WriteString(fragment)
	}
	builder.WriteString("\n")

	filePath := filepath.Join(e.universe.PackagePath, parser.GeneratedFileName)
	formatted, err := utils.FormatGoSource(filePath, []byte(builder.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to format generated file for package %s: %w", e.universe.PackageName, err)
	}

	return &models.GeneratedFile{
		PackageName: e.universe.PackageName,
		FilePath:    filePath,
		Content:     string(formatted),
		Factories:   e.factories,
	}, nil
}

// renderFactoryImpl builds the template data for one request and executes the
// factory implementation template
func renderFactoryImpl(request *models.InjectionRequest) (string, error) {
	methodParams := resolver.ClassifyFactoryParameters(request.Factory, request.Method)

	// Route each assisted constructor parameter to the factory method argument
	// carrying the same key. Unnamed method parameters get generated names.
	params := make([]paramData, len(methodParams))
	argByKey := make(map[models.Key]string, len(methodParams))
	for i, param := range methodParams {
		name := param.Name
		if name == "" || name == "_" {
			name = fmt.Sprintf("arg%d", i)
		}
		params[i] = paramData{Name: name, Type: param.Type}
		argByKey[param.Key()] = name
	}

	var provided []dependencyData
	var args []string
	fieldIndex := 0
	for _, param := range request.AllParameters {
		if param.Assisted {
			arg, ok := argByKey[param.Key()]
			if !ok {
				return "", fmt.Errorf("no factory method argument carries key %s", param.Key())
			}
			args = append(args, arg)
			continue
		}
		fieldName := param.Name
		if fieldName == "" || fieldName == "_" {
			fieldName = fmt.Sprintf("dep%d", fieldIndex)
		}
		fieldIndex++
		provided = append(provided, dependencyData{FieldName: fieldName, Type: param.Type})
		args = append(args, "f."+fieldName)
	}

	data := factoryImplData{
		ImplName:        implName(request.Factory.Name),
		FactoryName:     request.Factory.Name,
		ConstructorName: request.Constructor.FuncName,
		MethodName:      request.Method.Name,
		ReturnType:      request.Method.Returns,
		ReturnsError:    request.Method.ReturnsError(),
		Provided:        provided,
		MethodParams:    params,
		ConstructorArgs: args,
	}

	return executeTemplate("factory-impl", factoryImplTemplate, data)
}

// implName derives the unexported implementation type name for a factory
// interface, e.g. WidgetFactory becomes widgetFactoryImpl
func implName(factoryName string) string {
	return strings.ToLower(factoryName[:1]) + factoryName[1:] + "Impl"
}
