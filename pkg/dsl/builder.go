package dsl

import (
	"strings"

	"github.com/aretw0/csdlgen/pkg/odata"
	"github.com/aretw0/csdlgen/pkg/typegraph"
)

// BuiltinNamespace holds the intrinsic scalar models such as string and int32.
const BuiltinNamespace = "Cadl"

// SourceFile is recorded in the Site of every declaration made through the DSL.
const SourceFile = "dsl"

// Builder manages the program construction.
type Builder struct {
	prog *typegraph.Program
}

// New creates a new program builder.
func New() *Builder {
	return &Builder{prog: typegraph.NewProgram()}
}

// Global returns the builder for the unnamed root namespace.
func (b *Builder) Global() *NamespaceBuilder {
	return &NamespaceBuilder{ns: b.prog.Global, builder: b}
}

// Namespace returns the namespace at a dotted path, creating missing segments.
func (b *Builder) Namespace(path string) *NamespaceBuilder {
	ns := b.prog.Global
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			continue
		}
		ns = ns.Namespace(part)
	}
	return &NamespaceBuilder{ns: ns, builder: b}
}

// Builtin returns the intrinsic scalar model with the given name, e.g. "int32".
func (b *Builder) Builtin(name string) *typegraph.Model {
	cadl := b.prog.Global.Namespace(BuiltinNamespace)
	if m, ok := cadl.Models.Get(name); ok {
		return m
	}
	return cadl.AddModel(typegraph.NewModel(name))
}

// Build returns the program. The builder keeps sharing it, so later calls still mutate it.
func (b *Builder) Build() *typegraph.Program {
	return b.prog
}

func (b *Builder) declare(target typegraph.Type, path string, decs []Decoration) {
	for _, d := range decs {
		b.prog.Declare(d.Name, target, typegraph.Site{File: SourceFile, Path: path}, d.Args...)
	}
}

// Decoration is a pending declaration.
type Decoration struct {
	Name string
	Args []any
}

// Decorator creates a decoration with arbitrary name and arguments.
func Decorator(name string, args ...any) Decoration {
	return Decoration{Name: name, Args: args}
}

// Key marks a property as the entity key, optionally under an alternate name.
func Key(altName ...string) Decoration {
	d := Decoration{Name: odata.DecoratorID}
	for _, n := range altName {
		d.Args = append(d.Args, n)
	}
	return d
}

// Contains marks a containment navigation property.
func Contains() Decoration { return Decoration{Name: odata.DecoratorContains} }

// References marks a reference navigation property.
func References() Decoration { return Decoration{Name: odata.DecoratorReferences} }

// OpenModel marks a model as an open type.
func OpenModel() Decoration { return Decoration{Name: odata.DecoratorOpenModel} }

// Route binds a resource path to an interface or operation.
func Route(path string) Decoration { return Decoration{Name: odata.DecoratorRoute, Args: []any{path}} }

// ArrayOf wraps t in an array.
func ArrayOf(t typegraph.Type) *typegraph.Array {
	return &typegraph.Array{ElementType: t}
}

// UnionOf creates an anonymous union of options.
func UnionOf(options ...typegraph.Type) *typegraph.Union {
	return &typegraph.Union{Options: options}
}

// String creates a string literal type.
func String(v string) *typegraph.StringLiteral { return &typegraph.StringLiteral{Value: v} }

// Number creates a numeric literal type.
func Number(v float64) *typegraph.NumberLiteral { return &typegraph.NumberLiteral{Value: v} }

// Bool creates a boolean literal type.
func Bool(v bool) *typegraph.BooleanLiteral { return &typegraph.BooleanLiteral{Value: v} }

// Param creates a template parameter reference.
func Param(name string) *typegraph.TemplateParameter {
	return &typegraph.TemplateParameter{Name: name}
}
