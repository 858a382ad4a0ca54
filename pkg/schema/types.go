package schema

import (
	"fmt"
)

// Type defines the contract for value validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "bool").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// StringType validates string values.
type StringType struct {
	nonEmpty bool
}

func (t *StringType) Name() string {
	if t.nonEmpty {
		return "non-empty string"
	}
	return "string"
}

func (t *StringType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	if t.nonEmpty && s == "" {
		return fmt.Errorf("expected non-empty string")
	}
	return nil
}

// OptionalType accepts nil or any value accepted by the wrapped type.
type OptionalType struct {
	elemType Type
}

func (t *OptionalType) Name() string {
	return t.elemType.Name() + "?"
}

func (t *OptionalType) Validate(value any) error {
	if value == nil {
		return nil
	}
	return t.elemType.Validate(value)
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// NonEmptyString creates a validator rejecting "" and non-strings.
func NonEmptyString() Type { return &StringType{nonEmpty: true} }

// Optional wraps a type so that nil is also accepted.
func Optional(elemType Type) Type {
	return &OptionalType{elemType: elemType}
}

// IsOptional reports whether t accepts a missing value.
func IsOptional(t Type) bool {
	_, ok := t.(*OptionalType)
	return ok
}

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}
