package dsl

import (
	"github.com/aretw0/csdlgen/internal/identity"
	"github.com/aretw0/csdlgen/pkg/typegraph"
)

// NamespaceBuilder adds declarations to a namespace.
type NamespaceBuilder struct {
	ns      *typegraph.Namespace
	builder *Builder
}

// Namespace returns a child namespace builder.
func (n *NamespaceBuilder) Namespace(name string) *NamespaceBuilder {
	return &NamespaceBuilder{ns: n.ns.Namespace(name), builder: n.builder}
}

// Type returns the underlying namespace.
func (n *NamespaceBuilder) Type() *typegraph.Namespace {
	return n.ns
}

func (n *NamespaceBuilder) path(name string) string {
	return identity.NamespaceString(n.ns) + "." + name
}

// Model returns the named model, creating it if needed.
func (n *NamespaceBuilder) Model(name string, decs ...Decoration) *ModelBuilder {
	m, ok := n.ns.Models.Get(name)
	if !ok {
		m = n.ns.AddModel(typegraph.NewModel(name))
	}
	mb := &ModelBuilder{model: m, path: n.path(name), builder: n.builder}
	n.builder.declare(m, mb.path, decs)
	return mb
}

// Enum returns the named enum, creating it if needed.
func (n *NamespaceBuilder) Enum(name string) *EnumBuilder {
	e, ok := n.ns.Enums.Get(name)
	if !ok {
		e = n.ns.AddEnum(&typegraph.Enum{Name: name})
	}
	return &EnumBuilder{enum: e}
}

// Interface returns the named interface, creating it if needed.
func (n *NamespaceBuilder) Interface(name string, decs ...Decoration) *InterfaceBuilder {
	i, ok := n.ns.Interfaces.Get(name)
	if !ok {
		i = n.ns.AddInterface(typegraph.NewInterface(name))
	}
	ib := &InterfaceBuilder{iface: i, path: n.path(name), builder: n.builder}
	n.builder.declare(i, ib.path, decs)
	return ib
}

// Op adds a namespace-level operation.
func (n *NamespaceBuilder) Op(name string, returns typegraph.Type, decs ...Decoration) *typegraph.Operation {
	op := n.ns.AddOperation(newOperation(name, returns))
	n.builder.declare(op, n.path(name), decs)
	return op
}

// Union adds a named union.
func (n *NamespaceBuilder) Union(name string, options ...typegraph.Type) *typegraph.Union {
	return n.ns.AddUnion(&typegraph.Union{Name: name, Options: options})
}

func newOperation(name string, returns typegraph.Type) *typegraph.Operation {
	return &typegraph.Operation{
		Name:       name,
		Parameters: typegraph.NewModel(""),
		ReturnType: returns,
	}
}
