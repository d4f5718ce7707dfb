package processor

import (
	"errors"
	"strings"
	"testing"

	"github.com/grandstaish/assistedinject/internal/models"
	"github.com/grandstaish/assistedinject/internal/parser"
	"github.com/grandstaish/assistedinject/internal/utils"
)

type fakeEmitter struct {
	requests []*models.InjectionRequest
	err      error
	panics   bool
}

func (e *fakeEmitter) Emit(request *models.InjectionRequest) error {
	if e.panics {
		panic("template exploded")
	}
	if e.err != nil {
		return e.err
	}
	e.requests = append(e.requests, request)
	return nil
}

func structDecl(name string, line int) *parser.StructDecl {
	return &parser.StructDecl{
		Name:     name,
		Exported: true,
		Location: models.SourceLocation{File: "widget.go", Line: line},
	}
}

func constructorFor(name string, assisted string, params ...models.FormalParameter) *models.Constructor {
	c := &models.Constructor{
		FuncName:   "New" + name,
		Marked:     true,
		Exported:   true,
		Returns:    "*" + name,
		Parameters: params,
		Assisted:   map[string]bool{},
		Qualifiers: map[string]string{},
		Location:   models.SourceLocation{File: "widget.go", Line: 10},
	}
	if assisted != "" {
		c.Assisted[assisted] = true
	}
	return c
}

func factoryFor(target string, params ...models.FormalParameter) *models.FactoryInterface {
	return &models.FactoryInterface{
		Name:        target + "Factory",
		TargetName:  target,
		Exported:    true,
		IsInterface: true,
		Qualifiers:  map[string]string{},
		Methods: []models.FactoryMethod{
			{
				Name:       "Create",
				Exported:   true,
				Returns:    "*" + target,
				Parameters: params,
				Location:   models.SourceLocation{File: "widget.go", Line: 20},
			},
		},
		Location: models.SourceLocation{File: "widget.go", Line: 18},
	}
}

// widgetUniverse is one valid candidate: NewWidget(id int, logger *Logger)
// with id assisted, and WidgetFactory{Create(id int) *Widget}.
func widgetUniverse() *parser.PackageUniverse {
	return &parser.PackageUniverse{
		PackageName: "widgets",
		PackagePath: "example.com/widgets",
		Structs: map[string]*parser.StructDecl{
			"Widget": structDecl("Widget", 5),
			"Logger": structDecl("Logger", 30),
		},
		Constructors: []*models.Constructor{
			constructorFor("Widget", "id",
				models.FormalParameter{Name: "id", Type: "int"},
				models.FormalParameter{Name: "logger", Type: "*Logger"}),
		},
		Factories: []*models.FactoryInterface{
			factoryFor("Widget", models.FormalParameter{Name: "id", Type: "int"}),
		},
	}
}

func TestProcessEmitsValidCandidate(t *testing.T) {
	reporter := &utils.CollectingReporter{}
	emitter := &fakeEmitter{}

	claimed := New(widgetUniverse(), reporter, emitter).Process()

	if claimed {
		t.Fatal("Process() must never claim the markers")
	}
	if len(reporter.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", reporter.Messages())
	}
	if len(emitter.requests) != 1 {
		t.Fatalf("expected 1 emitted request, got %d", len(emitter.requests))
	}
	request := emitter.requests[0]
	if request.Target.Name != "Widget" {
		t.Errorf("Target.Name = %q, want Widget", request.Target.Name)
	}
	if got := len(request.AssistedParameters()); got != 1 {
		t.Errorf("assisted parameter count = %d, want 1", got)
	}
	if got := len(request.ProvidedParameters()); got != 1 {
		t.Errorf("provided parameter count = %d, want 1", got)
	}
}

func TestProcessIsolatesFailingCandidate(t *testing.T) {
	universe := widgetUniverse()
	universe.Structs["Broken"] = structDecl("Broken", 40)
	// Broken has a factory but no marked constructor, so it fails validation
	universe.Factories = append(universe.Factories, factoryFor("Broken"))

	reporter := &utils.CollectingReporter{}
	emitter := &fakeEmitter{}
	New(universe, reporter, emitter).Process()

	if len(emitter.requests) != 1 || emitter.requests[0].Target.Name != "Widget" {
		t.Fatalf("healthy candidate was not emitted, requests = %d", len(emitter.requests))
	}
	if len(reporter.Errors) != 1 {
		t.Fatalf("expected 1 error for Broken, got %v", reporter.Messages())
	}
	if reporter.Errors[0].Candidate != "Broken" {
		t.Errorf("error candidate = %q, want Broken", reporter.Errors[0].Candidate)
	}
}

func TestProcessReportsSiteErrors(t *testing.T) {
	universe := widgetUniverse()
	universe.SiteErrors = append(universe.SiteErrors, models.NewValidationError(
		models.ErrorKindStructural, "Gadget", models.SourceLocation{File: "gadget.go", Line: 3},
		"assisted::param is only valid on a constructor"))

	reporter := &utils.CollectingReporter{}
	emitter := &fakeEmitter{}
	New(universe, reporter, emitter).Process()

	if len(reporter.Errors) != 1 {
		t.Fatalf("expected the site error to be reported, got %v", reporter.Messages())
	}
	if len(emitter.requests) != 1 {
		t.Fatal("site errors must not abort the round")
	}
}

func TestProcessRecoversEmitterPanic(t *testing.T) {
	reporter := &utils.CollectingReporter{}
	processor := New(widgetUniverse(), reporter, &fakeEmitter{panics: true})

	claimed := processor.Process()

	if claimed {
		t.Fatal("Process() must return false even after an emitter panic")
	}
	if len(reporter.Errors) != 1 {
		t.Fatalf("expected 1 internal error, got %v", reporter.Messages())
	}
	err := reporter.Errors[0]
	if err.Kind != models.ErrorKindInternal {
		t.Errorf("Kind = %v, want internal", err.Kind)
	}
	if err.Candidate != "Widget" {
		t.Errorf("Candidate = %q, want Widget", err.Candidate)
	}
	if !strings.Contains(err.Message, "template exploded") {
		t.Errorf("message should carry the panic value, got %q", err.Message)
	}
	if processor.RequestCount() != 0 {
		t.Errorf("RequestCount() = %d, want 0", processor.RequestCount())
	}
}

func TestProcessReportsEmitterError(t *testing.T) {
	reporter := &utils.CollectingReporter{}
	emitErr := errors.New("disk full")
	New(widgetUniverse(), reporter, &fakeEmitter{err: emitErr}).Process()

	if len(reporter.Errors) != 1 {
		t.Fatalf("expected 1 internal error, got %v", reporter.Messages())
	}
	err := reporter.Errors[0]
	if err.Kind != models.ErrorKindInternal {
		t.Errorf("Kind = %v, want internal", err.Kind)
	}
	if !errors.Is(err, emitErr) {
		t.Error("reported error should wrap the emitter failure")
	}
}

func TestProcessOrderIsDeterministic(t *testing.T) {
	universe := widgetUniverse()
	// A second valid candidate that sorts before Widget
	universe.Structs["Gadget"] = structDecl("Gadget", 50)
	universe.Constructors = append(universe.Constructors,
		constructorFor("Gadget", "name",
			models.FormalParameter{Name: "name", Type: "string"},
			models.FormalParameter{Name: "logger", Type: "*Logger"}))
	universe.Factories = append(universe.Factories,
		factoryFor("Gadget", models.FormalParameter{Name: "name", Type: "string"}))

	for round := 0; round < 3; round++ {
		emitter := &fakeEmitter{}
		processor := New(universe, &utils.CollectingReporter{}, emitter)
		processor.Process()

		if len(emitter.requests) != 2 {
			t.Fatalf("round %d: expected 2 requests, got %d", round, len(emitter.requests))
		}
		if emitter.requests[0].Target.Name != "Gadget" || emitter.requests[1].Target.Name != "Widget" {
			t.Fatalf("round %d: emission order not sorted by candidate name", round)
		}
		if processor.RequestCount() != 2 {
			t.Fatalf("round %d: RequestCount() = %d, want 2", round, processor.RequestCount())
		}
	}
}
