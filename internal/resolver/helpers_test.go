package resolver

import "github.com/grandstaish/assistedinject/internal/models"

// Test fixtures are synthetic in-memory symbol snapshots, so the pipeline is
// exercised without touching the filesystem or the Go parser.

func newConstructor(funcName, returns string, params ...models.FormalParameter) *models.Constructor {
	return &models.Constructor{
		FuncName:   funcName,
		Marked:     true,
		Exported:   true,
		Returns:    returns,
		Parameters: params,
		Assisted:   make(map[string]bool),
		Qualifiers: make(map[string]string),
		Location:   models.SourceLocation{File: "widget.go", Line: 10},
	}
}

func markAssisted(constructor *models.Constructor, names ...string) *models.Constructor {
	for _, name := range names {
		constructor.Assisted[name] = true
	}
	return constructor
}

func newFactory(name, target, methodName, returns string, params ...models.FormalParameter) *models.FactoryInterface {
	return &models.FactoryInterface{
		Name:        name,
		TargetName:  target,
		Exported:    true,
		IsInterface: true,
		Qualifiers:  make(map[string]string),
		Methods: []models.FactoryMethod{
			{
				Name:       methodName,
				Exported:   true,
				Returns:    returns,
				Parameters: params,
				Location:   models.SourceLocation{File: "widget.go", Line: 20},
			},
		},
		Location: models.SourceLocation{File: "widget.go", Line: 18},
	}
}

func newCandidate(name string, constructors []*models.Constructor, factories []*models.FactoryInterface) *models.CandidateType {
	return &models.CandidateType{
		Name:         name,
		PackageName:  "widgets",
		PackagePath:  "./widgets",
		Exported:     true,
		Constructors: constructors,
		Factories:    factories,
		Location:     models.SourceLocation{File: "widget.go", Line: 5},
	}
}

// widgetCandidate is the canonical valid declaration: NewWidget(id int,
// logger *Logger) with id assisted, and WidgetFactory{Create(id int) *Widget}
func widgetCandidate() *models.CandidateType {
	constructor := markAssisted(newConstructor("NewWidget", "*Widget",
		models.FormalParameter{Name: "id", Type: "int"},
		models.FormalParameter{Name: "logger", Type: "*Logger"},
	), "id")
	factory := newFactory("WidgetFactory", "Widget", "Create", "*Widget",
		models.FormalParameter{Name: "id", Type: "int"})
	return newCandidate("Widget", []*models.Constructor{constructor}, []*models.FactoryInterface{factory})
}
