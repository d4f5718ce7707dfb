package annotations

import (
	"fmt"
	"sync"
)

// AnnotationRegistry defines the interface for managing directive schemas
type AnnotationRegistry interface {
	// Register a new annotation type with its schema
	Register(annotationType AnnotationType, schema AnnotationSchema) error

	// GetSchema retrieves the schema for an annotation type
	GetSchema(annotationType AnnotationType) (AnnotationSchema, error)

	// ListTypes returns all registered annotation types
	ListTypes() []AnnotationType

	// IsRegistered checks if an annotation type is registered
	IsRegistered(annotationType AnnotationType) bool
}

// registry is the concrete implementation of AnnotationRegistry
type registry struct {
	mu      sync.RWMutex
	schemas map[AnnotationType]AnnotationSchema
}

// NewRegistry creates a new annotation registry
func NewRegistry() AnnotationRegistry {
	return &registry{
		schemas: make(map[AnnotationType]AnnotationSchema),
	}
}

var (
	defaultRegistry     AnnotationRegistry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the global registry with the builtin schemas registered
func DefaultRegistry() AnnotationRegistry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		if err := RegisterBuiltinSchemas(defaultRegistry); err != nil {
			panic(fmt.Sprintf("failed to register builtin schemas: %v", err))
		}
	})
	return defaultRegistry
}

// Register adds a new annotation type with its schema to the registry
func (r *registry) Register(annotationType AnnotationType, schema AnnotationSchema) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if schema.Type != annotationType {
		return fmt.Errorf("schema type %s does not match annotation type %s",
			schema.Type.String(), annotationType.String())
	}

	if _, exists := r.schemas[annotationType]; exists {
		return fmt.Errorf("annotation type %s is already registered", annotationType.String())
	}

	if schema.MinArgs < 0 || schema.MaxArgs < schema.MinArgs {
		return fmt.Errorf("invalid argument bounds for %s: min=%d max=%d",
			annotationType.String(), schema.MinArgs, schema.MaxArgs)
	}

	r.schemas[annotationType] = schema
	return nil
}

// GetSchema retrieves the schema for an annotation type
func (r *registry) GetSchema(annotationType AnnotationType) (AnnotationSchema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schema, exists := r.schemas[annotationType]
	if !exists {
		return AnnotationSchema{}, fmt.Errorf("annotation type %s is not registered", annotationType.String())
	}

	return schema, nil
}

// ListTypes returns all registered annotation types
func (r *registry) ListTypes() []AnnotationType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]AnnotationType, 0, len(r.schemas))
	for annotationType := range r.schemas {
		types = append(types, annotationType)
	}

	return types
}

// IsRegistered checks if an annotation type is registered
func (r *registry) IsRegistered(annotationType AnnotationType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.schemas[annotationType]
	return exists
}

// RegisterBuiltinSchemas registers the schemas for all assisted:: directives
func RegisterBuiltinSchemas(reg AnnotationRegistry) error {
	schemas := []AnnotationSchema{
		{
			Type:        InjectAnnotation,
			Description: "Marks a constructor function for assisted injection",
			MinArgs:     0,
			MaxArgs:     0,
			Examples:    []string{"//assisted::inject"},
		},
		{
			Type:        ParamAnnotation,
			Description: "Marks a constructor parameter as supplied by the factory caller",
			MinArgs:     1,
			MaxArgs:     1,
			Flags: map[string]FlagSpec{
				"Qualifier": {Description: "Qualifier name distinguishing parameters of the same type"},
			},
			Examples: []string{
				"//assisted::param id",
				"//assisted::param name -Qualifier=DisplayName",
			},
		},
		{
			Type:        QualifierAnnotation,
			Description: "Attaches a qualifier to a constructor or factory-method parameter",
			MinArgs:     2,
			MaxArgs:     2,
			Examples:    []string{"//assisted::qualifier logger AppLogger"},
		},
		{
			Type:        FactoryAnnotation,
			Description: "Marks an interface as the assisted factory for a target type",
			MinArgs:     1,
			MaxArgs:     1,
			Examples:    []string{"//assisted::factory Widget"},
		},
	}

	for _, schema := range schemas {
		if err := reg.Register(schema.Type, schema); err != nil {
			return fmt.Errorf("failed to register %s schema: %w", schema.Type, err)
		}
	}

	return nil
}
