package models

import (
	"strings"
	"testing"
)

func TestValidationErrorFormatting(t *testing.T) {
	err := NewValidationError(ErrorKindCardinality, "Widget",
		SourceLocation{File: "widget.go", Line: 12},
		"type %s has %d constructors marked with assisted::inject", "Widget", 2)

	msg := err.Error()
	if !strings.Contains(msg, "widget.go:12") {
		t.Errorf("expected location prefix, got: %s", msg)
	}
	if !strings.Contains(msg, "CardinalityError") {
		t.Errorf("expected kind in message, got: %s", msg)
	}
	if !strings.Contains(msg, "has 2 constructors") {
		t.Errorf("expected formatted message, got: %s", msg)
	}
}

func TestValidationErrorWithoutLocation(t *testing.T) {
	err := NewValidationError(ErrorKindInternal, "Widget", SourceLocation{}, "emission failed")
	if strings.Contains(err.Error(), ":0:") {
		t.Errorf("zero location should not be rendered: %s", err.Error())
	}
}

func TestValidationErrorSuggestions(t *testing.T) {
	err := NewValidationError(ErrorKindDuplication, "Widget", SourceLocation{}, "duplicate keys").
		WithSuggestions("add a qualifier to one of the parameters")

	if len(err.Suggestions) != 1 {
		t.Fatalf("expected one suggestion, got %d", len(err.Suggestions))
	}
}

func TestErrorKindString(t *testing.T) {
	kinds := map[ErrorKind]string{
		ErrorKindStructural:  "StructuralError",
		ErrorKindCardinality: "CardinalityError",
		ErrorKindPool:        "PoolError",
		ErrorKindDuplication: "DuplicationError",
		ErrorKindMismatch:    "MismatchError",
		ErrorKindInternal:    "InternalError",
		ErrorKind(99):        "UnknownError",
	}
	for kind, want := range kinds {
		if kind.String() != want {
			t.Errorf("expected %s, got %s", want, kind.String())
		}
	}
}
