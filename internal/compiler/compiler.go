// Package compiler turns serialized graph documents into a typegraph.Program.
package compiler

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/csdlgen/internal/dto"
	"github.com/aretw0/csdlgen/internal/identity"
	"github.com/aretw0/csdlgen/pkg/typegraph"
)

// BuiltinNamespace holds the intrinsic scalar models.
const BuiltinNamespace = "Cadl"

// LoadFile reads and compiles the graph document at path.
func LoadFile(path string) (*typegraph.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph: %w", err)
	}
	graph, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Compile(graph, path)
}

// Compile resolves a parsed document. file is recorded in every declaration site.
// All resolution failures are reported together.
func Compile(graph *dto.Graph, file string) (*typegraph.Program, error) {
	c := &compiler{prog: typegraph.NewProgram(), file: file}
	c.resolver = &resolver{global: c.prog.Global, builtin: c.builtin}

	// Declarations first so references may point forward.
	c.declare(c.prog.Global, graph.Body)
	if len(c.errs) == 0 {
		c.define(c.prog.Global, graph.Body)
	}

	if err := errors.Join(c.errs...); err != nil {
		return nil, err
	}
	return c.prog, nil
}

type compiler struct {
	prog     *typegraph.Program
	file     string
	resolver *resolver
	errs     []error
}

func (c *compiler) builtin(name string) *typegraph.Model {
	ns := c.prog.Global.Namespace(BuiltinNamespace)
	if m, ok := ns.Models.Get(name); ok {
		return m
	}
	return ns.AddModel(typegraph.NewModel(name))
}

func (c *compiler) site(path string) typegraph.Site {
	return typegraph.Site{File: c.file, Path: path}
}

func (c *compiler) fail(path string, err error) {
	c.errs = append(c.errs, fmt.Errorf("%s: %w", c.site(path), err))
}

func (c *compiler) child(ns *typegraph.Namespace, name string) *typegraph.Namespace {
	for _, part := range strings.Split(name, ".") {
		if part != "" {
			ns = ns.Namespace(part)
		}
	}
	return ns
}

func pathOf(ns *typegraph.Namespace, name string) string {
	return identity.NamespaceString(ns) + "." + name
}

func (c *compiler) declare(ns *typegraph.Namespace, body dto.Body) {
	taken := map[string]bool{}
	claim := func(name string) bool {
		path := pathOf(ns, name)
		switch {
		case name == "":
			c.fail(path, fmt.Errorf("declaration missing name"))
			return false
		case taken[name]:
			c.fail(path, fmt.Errorf("duplicate declaration %q", name))
			return false
		}
		taken[name] = true
		return true
	}

	for _, m := range body.Models {
		if claim(m.Name) {
			ns.AddModel(typegraph.NewModel(m.Name))
		}
	}
	for _, e := range body.Enums {
		if claim(e.Name) {
			ns.AddEnum(&typegraph.Enum{Name: e.Name})
		}
	}
	for _, i := range body.Interfaces {
		if claim(i.Name) {
			ns.AddInterface(typegraph.NewInterface(i.Name))
		}
	}
	for _, u := range body.Unions {
		if claim(u.Name) {
			ns.AddUnion(&typegraph.Union{Name: u.Name})
		}
	}
	for _, child := range body.Namespaces {
		if child.Name == "" {
			c.fail(pathOf(ns, ""), fmt.Errorf("namespace missing name"))
			continue
		}
		c.declare(c.child(ns, child.Name), child.Body)
	}
}

func (c *compiler) define(ns *typegraph.Namespace, body dto.Body) {
	for _, doc := range body.Models {
		m, _ := ns.Models.Get(doc.Name)
		c.defineModel(ns, m, doc)
	}
	for _, doc := range body.Enums {
		e, _ := ns.Enums.Get(doc.Name)
		path := pathOf(ns, doc.Name)
		for _, member := range doc.Members {
			m := e.AddMember(member.Name, normalizeScalar(member.Value))
			switch m.Value.(type) {
			case nil, string, float64:
			default:
				c.fail(path+"."+member.Name, fmt.Errorf("enum value must be a string or number, got %T", member.Value))
			}
		}
		c.decorate(e, path, doc.Decorators)
	}
	for _, doc := range body.Interfaces {
		iface, _ := ns.Interfaces.Get(doc.Name)
		path := pathOf(ns, doc.Name)
		c.decorate(iface, path, doc.Decorators)
		for _, opDoc := range doc.Operations {
			op := c.operation(ns, path, opDoc)
			iface.AddOperation(op)
		}
	}
	for _, doc := range body.Operations {
		op := c.operation(ns, identity.NamespaceString(ns), doc)
		ns.AddOperation(op)
	}
	for _, doc := range body.Unions {
		u, _ := ns.Unions.Get(doc.Name)
		path := pathOf(ns, doc.Name)
		for _, ref := range doc.Options {
			t, err := c.resolver.resolve(ref, ns)
			if err != nil {
				c.fail(path, err)
				continue
			}
			u.Options = append(u.Options, t)
		}
		c.decorate(u, path, doc.Decorators)
	}
	for _, child := range body.Namespaces {
		c.define(c.child(ns, child.Name), child.Body)
	}
}

func (c *compiler) defineModel(ns *typegraph.Namespace, m *typegraph.Model, doc dto.Model) {
	path := pathOf(ns, doc.Name)
	if doc.Extends != "" {
		base, err := c.resolver.resolve(doc.Extends, ns)
		switch b := base.(type) {
		case *typegraph.Model:
			m.BaseModel = b
		case nil:
			c.fail(path, err)
		default:
			c.fail(path, fmt.Errorf("base type %q is a %s, not a model", doc.Extends, b.Kind()))
		}
	}
	c.decorate(m, path, doc.Decorators)
	c.properties(ns, m, path, doc.Properties)
}

func (c *compiler) properties(ns *typegraph.Namespace, m *typegraph.Model, path string, docs []dto.Property) {
	for _, doc := range docs {
		propPath := path + "." + doc.Name
		if doc.Name == "" {
			c.fail(propPath, fmt.Errorf("property missing name"))
			continue
		}
		if _, dup := m.Properties.Get(doc.Name); dup {
			c.fail(propPath, fmt.Errorf("duplicate property %q", doc.Name))
			continue
		}
		t, err := c.resolver.resolve(doc.Type, ns)
		if err != nil {
			c.fail(propPath, err)
			continue
		}
		p := m.AddProperty(&typegraph.Property{Name: doc.Name, Type: t, Optional: doc.Optional})
		c.decorate(p, propPath, doc.Decorators)
	}
}

func (c *compiler) operation(ns *typegraph.Namespace, parent string, doc dto.Operation) *typegraph.Operation {
	path := parent + "." + doc.Name

	op := &typegraph.Operation{Name: doc.Name, Parameters: typegraph.NewModel("")}
	if doc.Returns != "" {
		t, err := c.resolver.resolve(doc.Returns, ns)
		if err != nil {
			c.fail(path, err)
		}
		op.ReturnType = t
	} else {
		op.ReturnType = &typegraph.Intrinsic{Name: "void"}
	}
	c.properties(ns, op.Parameters, path, doc.Parameters)
	c.decorate(op, path, doc.Decorators)
	return op
}

func (c *compiler) decorate(target typegraph.Type, path string, entries []any) {
	for _, entry := range entries {
		dec, err := parseDecorator(entry)
		if err != nil {
			c.fail(path, err)
			continue
		}
		c.prog.Declare(dec.Name, target, c.site(path), dec.Args...)
	}
}
