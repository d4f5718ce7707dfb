package internal

import (
	"strings"
	"testing"

	"github.com/grandstaish/assistedinject/internal/generator"
	"github.com/grandstaish/assistedinject/internal/parser"
	"github.com/grandstaish/assistedinject/internal/processor"
	"github.com/grandstaish/assistedinject/internal/utils"
)

// TestFactoryGenerationIntegration drives the complete flow from annotated
// source through validation to generated factory code
func TestFactoryGenerationIntegration(t *testing.T) {
	source := `package orders

type Database struct{}

type Clock struct{}

type Order struct {
	ID       string
	Quantity int
	db       *Database
	clock    *Clock
}

//assisted::inject
//assisted::param id
//assisted::param quantity
func NewOrder(id string, quantity int, db *Database, clock *Clock) *Order {
	return &Order{ID: id, Quantity: quantity, db: db, clock: clock}
}

//assisted::factory Order
type OrderFactory interface {
	Create(id string, quantity int) *Order
}
`

	universe, err := parser.NewParser().ParseSource("orders.go", source)
	if err != nil {
		t.Fatalf("ParseSource() failed: %v", err)
	}

	reporter := &utils.CollectingReporter{}
	emitter := generator.NewEmitter(universe)
	claimed := processor.New(universe, reporter, emitter).Process()

	if claimed {
		t.Error("the round must never claim the markers")
	}
	if len(reporter.Errors) != 0 {
		t.Fatalf("unexpected validation errors: %v", reporter.Messages())
	}

	file, err := emitter.File()
	if err != nil {
		t.Fatalf("File() failed: %v", err)
	}
	if file == nil {
		t.Fatal("expected a generated file")
	}

	for _, want := range []string{
		"package orders",
		"type orderFactoryImpl struct",
		"db    *Database",
		"func NewOrderFactory(db *Database, clock *Clock) OrderFactory",
		"func (f *orderFactoryImpl) Create(id string, quantity int) *Order",
		"return NewOrder(id, quantity, f.db, f.clock)",
	} {
		if !strings.Contains(file.Content, want) {
			t.Errorf("generated content missing %q:\n%s", want, file.Content)
		}
	}
}

// TestErrorReturningConstructorIntegration checks the (T, error) constructor
// shape end to end: the generated method must carry the error result, and a
// single-result factory method against such a constructor must be rejected
// instead of producing a call whose results do not fit the signature
func TestErrorReturningConstructorIntegration(t *testing.T) {
	valid := `package orders

type Database struct{}

type Order struct{}

//assisted::inject
//assisted::param id
func NewOrder(id string, db *Database) (*Order, error) {
	return &Order{}, nil
}

//assisted::factory Order
type OrderFactory interface {
	Create(id string) (*Order, error)
}
`

	universe, err := parser.NewParser().ParseSource("orders.go", valid)
	if err != nil {
		t.Fatalf("ParseSource() failed: %v", err)
	}
	reporter := &utils.CollectingReporter{}
	emitter := generator.NewEmitter(universe)
	processor.New(universe, reporter, emitter).Process()
	if len(reporter.Errors) != 0 {
		t.Fatalf("unexpected validation errors: %v", reporter.Messages())
	}
	file, err := emitter.File()
	if err != nil || file == nil {
		t.Fatalf("expected a generated file, got %v", err)
	}
	if !strings.Contains(file.Content, "func (f *orderFactoryImpl) Create(id string) (*Order, error)") {
		t.Errorf("generated method should carry the error result:\n%s", file.Content)
	}

	mismatched := `package orders

type Database struct{}

type Order struct{}

//assisted::inject
//assisted::param id
func NewOrder(id string, db *Database) (*Order, error) {
	return &Order{}, nil
}

//assisted::factory Order
type OrderFactory interface {
	Create(id string) *Order
}
`

	universe, err = parser.NewParser().ParseSource("orders.go", mismatched)
	if err != nil {
		t.Fatalf("ParseSource() failed: %v", err)
	}
	reporter = &utils.CollectingReporter{}
	emitter = generator.NewEmitter(universe)
	processor.New(universe, reporter, emitter).Process()
	if len(reporter.Errors) != 1 {
		t.Fatalf("expected 1 error for the result mismatch, got %v", reporter.Messages())
	}
	if !strings.Contains(reporter.Errors[0].Message, "(*Order, error)") {
		t.Errorf("unexpected message: %s", reporter.Errors[0].Message)
	}
	file, err = emitter.File()
	if err != nil {
		t.Fatalf("File() failed: %v", err)
	}
	if file != nil {
		t.Errorf("mismatched result shapes must not generate:\n%s", file.Content)
	}
}

// TestMixedValidityIntegration checks that invalid declarations are reported
// without blocking valid ones in the same package
func TestMixedValidityIntegration(t *testing.T) {
	source := `package orders

type Database struct{}

type Order struct{}

//assisted::inject
//assisted::param id
func NewOrder(id string, db *Database) *Order { return &Order{} }

//assisted::factory Order
type OrderFactory interface {
	Create(id string) *Order
}

type Invoice struct{}

//assisted::factory Invoice
type InvoiceFactory interface {
	Create(total int) *Invoice
}
`

	universe, err := parser.NewParser().ParseSource("orders.go", source)
	if err != nil {
		t.Fatalf("ParseSource() failed: %v", err)
	}

	reporter := &utils.CollectingReporter{}
	emitter := generator.NewEmitter(universe)
	processor.New(universe, reporter, emitter).Process()

	if len(reporter.Errors) != 1 {
		t.Fatalf("expected 1 error for Invoice, got %v", reporter.Messages())
	}
	if reporter.Errors[0].Candidate != "Invoice" {
		t.Errorf("error candidate = %q, want Invoice", reporter.Errors[0].Candidate)
	}

	file, err := emitter.File()
	if err != nil {
		t.Fatalf("File() failed: %v", err)
	}
	if file == nil || file.Factories != 1 {
		t.Fatal("the valid Order declaration should still generate")
	}
	if !strings.Contains(file.Content, "NewOrderFactory") ||
		strings.Contains(file.Content, "InvoiceFactory") {
		t.Errorf("only the valid factory should be generated:\n%s", file.Content)
	}
}
