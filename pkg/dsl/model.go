package dsl

import "github.com/aretw0/csdlgen/pkg/typegraph"

// ModelBuilder provides a fluent API for configuring a model.
type ModelBuilder struct {
	model   *typegraph.Model
	path    string
	builder *Builder
}

// Prop adds a required property.
func (m *ModelBuilder) Prop(name string, t typegraph.Type, decs ...Decoration) *ModelBuilder {
	return m.addProp(name, t, false, decs)
}

// OptionalProp adds an optional property.
func (m *ModelBuilder) OptionalProp(name string, t typegraph.Type, decs ...Decoration) *ModelBuilder {
	return m.addProp(name, t, true, decs)
}

func (m *ModelBuilder) addProp(name string, t typegraph.Type, optional bool, decs []Decoration) *ModelBuilder {
	p := m.model.AddProperty(&typegraph.Property{Name: name, Type: t, Optional: optional})
	m.builder.declare(p, m.path+"."+name, decs)
	return m
}

// Extends sets the base model.
func (m *ModelBuilder) Extends(base *ModelBuilder) *ModelBuilder {
	m.model.BaseModel = base.model
	return m
}

// Decorate applies a declaration to the model itself.
func (m *ModelBuilder) Decorate(name string, args ...any) *ModelBuilder {
	m.builder.declare(m.model, m.path, []Decoration{Decorator(name, args...)})
	return m
}

// Property returns a declared property.
func (m *ModelBuilder) Property(name string) *typegraph.Property {
	p, _ := m.model.Properties.Get(name)
	return p
}

// Type returns the underlying model.
func (m *ModelBuilder) Type() *typegraph.Model {
	return m.model
}

// EnumBuilder appends members to an enum.
type EnumBuilder struct {
	enum *typegraph.Enum
}

// Member adds a member. An optional value must be a string or a number.
func (e *EnumBuilder) Member(name string, value ...any) *EnumBuilder {
	var v any
	if len(value) > 0 {
		v = normalizeValue(value[0])
	}
	e.enum.AddMember(name, v)
	return e
}

// Type returns the underlying enum.
func (e *EnumBuilder) Type() *typegraph.Enum {
	return e.enum
}

func normalizeValue(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}

// InterfaceBuilder adds operations to an interface.
type InterfaceBuilder struct {
	iface   *typegraph.Interface
	path    string
	builder *Builder
}

// Op adds an operation returning returns.
func (i *InterfaceBuilder) Op(name string, returns typegraph.Type, decs ...Decoration) *InterfaceBuilder {
	op := i.iface.AddOperation(newOperation(name, returns))
	i.builder.declare(op, i.path+"."+name, decs)
	return i
}

// Decorate applies a declaration to the interface itself.
func (i *InterfaceBuilder) Decorate(name string, args ...any) *InterfaceBuilder {
	i.builder.declare(i.iface, i.path, []Decoration{Decorator(name, args...)})
	return i
}

// Type returns the underlying interface.
func (i *InterfaceBuilder) Type() *typegraph.Interface {
	return i.iface
}
