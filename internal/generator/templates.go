package generator

import (
	"bytes"
	"fmt"
	"text/template"
)

// factoryImplTemplate renders one factory implementation: the unexported impl
// struct holding container-supplied dependencies, its assembly function, and
// the factory method delegating to the target constructor.
const factoryImplTemplate = `// {{.ImplName}} implements {{.FactoryName}} by delegating to {{.ConstructorName}}.
type {{.ImplName}} struct {
{{range .Provided}}	{{.FieldName}} {{.Type}}
{{end}}}

// New{{.FactoryName}} assembles a {{.FactoryName}} from its container-supplied dependencies.
func New{{.FactoryName}}({{range $i, $dep := .Provided}}{{if $i}}, {{end}}{{$dep.FieldName}} {{$dep.Type}}{{end}}) {{.FactoryName}} {
	return &{{.ImplName}}{
{{range .Provided}}		{{.FieldName}}: {{.FieldName}},
{{end}}	}
}

func (f *{{.ImplName}}) {{.MethodName}}({{range $i, $p := .MethodParams}}{{if $i}}, {{end}}{{$p.Name}} {{$p.Type}}{{end}}) {{if .ReturnsError}}({{.ReturnType}}, error){{else}}{{.ReturnType}}{{end}} {
	return {{.ConstructorName}}({{range $i, $arg := .ConstructorArgs}}{{if $i}}, {{end}}{{$arg}}{{end}})
}`

// dependencyData describes one container-supplied dependency stored on the impl struct
type dependencyData struct {
	FieldName string
	Type      string
}

// paramData describes one factory method parameter in the generated signature
type paramData struct {
	Name string
	Type string
}

// factoryImplData is the template input for one factory implementation
type factoryImplData struct {
	ImplName        string
	FactoryName     string
	ConstructorName string
	MethodName      string
	ReturnType      string
	ReturnsError    bool
	Provided        []dependencyData
	MethodParams    []paramData
	ConstructorArgs []string
}

// executeTemplate executes a Go template with the given data
func executeTemplate(name, templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}
