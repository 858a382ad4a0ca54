// Package validator checks a declared program for problems the renderer tolerates
// silently, such as ambiguous keys or navigation to scalar types.
package validator

import (
	"fmt"

	"github.com/aretw0/csdlgen/internal/classify"
	"github.com/aretw0/csdlgen/internal/flatten"
	"github.com/aretw0/csdlgen/internal/identity"
	"github.com/aretw0/csdlgen/pkg/annotation"
	"github.com/aretw0/csdlgen/pkg/typegraph"
)

const (
	AmbiguousKey          annotation.Code = "ambiguous-key"
	InvalidNavigation     annotation.Code = "invalid-navigation"
	InheritanceCycle      annotation.Code = "inheritance-cycle"
	MissingType           annotation.Code = "missing-type"
	DanglingReference     annotation.Code = "dangling-reference"
	UnrenderedDeclaration annotation.Code = "unrendered-declaration"
)

// ValidateProgram walks every namespace of prog that is not excluded and reports
// what the rendered document would get wrong or leave out.
func ValidateProgram(prog *typegraph.Program, ann classify.Annotations, excluded []string) annotation.Diagnostics {
	if excluded == nil {
		excluded = flatten.DefaultExcluded
	}
	v := &validator{ann: ann, excluded: excluded}

	global := prog.Global
	for _, m := range global.Models.Values() {
		v.warn(UnrenderedDeclaration, identity.QualifiedID(m), "model %q is declared outside any namespace and is not rendered", m.Name)
	}
	for _, e := range global.Enums.Values() {
		v.warn(UnrenderedDeclaration, identity.QualifiedID(e), "enum %q is declared outside any namespace and is not rendered", e.Name)
	}

	v.walk(global)
	return v.diags
}

type validator struct {
	ann      classify.Annotations
	excluded []string
	diags    annotation.Diagnostics
}

func (v *validator) report(sev annotation.Severity, code annotation.Code, path, format string, args ...any) {
	v.diags = append(v.diags, annotation.Diagnostic{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Site:     typegraph.Site{Path: path},
		Severity: sev,
	})
}

func (v *validator) warn(code annotation.Code, path, format string, args ...any) {
	v.report(annotation.SeverityWarning, code, path, format, args...)
}

func (v *validator) fail(code annotation.Code, path, format string, args ...any) {
	v.report(annotation.SeverityError, code, path, format, args...)
}

func (v *validator) walk(ns *typegraph.Namespace) {
	name := identity.NamespaceString(ns)
	if name != "" && flatten.IsExcluded(name, v.excluded) {
		return
	}
	for _, m := range ns.Models.Values() {
		v.model(m)
	}
	for _, child := range ns.Namespaces.Values() {
		v.walk(child)
	}
}

func (v *validator) model(m *typegraph.Model) {
	path := identity.QualifiedID(m)

	keys := 0
	for _, p := range m.Properties.Values() {
		if v.ann.IsKey(p) {
			keys++
		}
		v.property(path+"."+p.Name, p)
	}
	if keys > 1 {
		_, first := classify.ClassifyModel(v.ann, m)
		v.warn(AmbiguousKey, path, "model has %d key properties; %q is used", keys, first.Name)
	}

	if cycle := baseCycle(m); cycle {
		v.fail(InheritanceCycle, path, "base model chain of %q loops back on itself", m.Name)
	}
}

func (v *validator) property(path string, p *typegraph.Property) {
	if p.Type == nil {
		v.fail(MissingType, path, "property %q has no type", p.Name)
		return
	}

	contains, references := v.ann.IsContains(p), v.ann.IsReferences(p)
	if contains && references {
		v.warn(InvalidNavigation, path, "property is marked both contains and references; contains is used")
	}
	if contains || references {
		if _, ok := elementModel(p.Type); !ok {
			v.warn(InvalidNavigation, path, "navigation property targets %s, not a model", classify.ScalarTypeName(p.Type))
		}
	}

	if m, ok := elementModel(p.Type); ok && m.Namespace != nil {
		if _, scalar := classify.EdmName(m.Name); scalar {
			return
		}
		ns := identity.NamespaceString(m.Namespace)
		if ns != "" && flatten.IsExcluded(ns, v.excluded) {
			v.warn(DanglingReference, path, "type %s lives in excluded namespace %q", identity.QualifiedID(m), ns)
		}
	}
}

// elementModel unwraps arrays down to a model.
func elementModel(t typegraph.Type) (*typegraph.Model, bool) {
	for {
		switch v := t.(type) {
		case *typegraph.Array:
			t = v.ElementType
		case *typegraph.Model:
			return v, true
		default:
			return nil, false
		}
	}
}

// baseCycle follows the base chain from m and reports whether it revisits a model.
func baseCycle(m *typegraph.Model) bool {
	visited := make(map[*typegraph.Model]bool)
	for cur := m; cur != nil; cur = cur.BaseModel {
		if visited[cur] {
			return true
		}
		visited[cur] = true
	}
	return false
}
