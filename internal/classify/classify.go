// Package classify decides how models, properties and types are rendered in CSDL.
package classify

import (
	"strconv"
	"strings"

	"github.com/aretw0/csdlgen/pkg/typegraph"
)

// Annotations is the read side of the OData annotation kinds.
type Annotations interface {
	IsKey(p *typegraph.Property) bool
	KeyName(p *typegraph.Property) string
	IsOpenType(m *typegraph.Model) bool
	IsContains(p *typegraph.Property) bool
	IsReferences(p *typegraph.Property) bool
}

// Class is the rendering class of a model.
type Class int

const (
	Complex Class = iota
	Entity
)

func (c Class) String() string {
	if c == Entity {
		return "EntityType"
	}
	return "ComplexType"
}

// ClassifyModel returns Entity and the key property when one of the model's own
// properties is a key. The first key in declaration order wins; base models are not scanned.
func ClassifyModel(ann Annotations, m *typegraph.Model) (Class, *typegraph.Property) {
	for _, p := range m.Properties.Values() {
		if ann.IsKey(p) {
			return Entity, p
		}
	}
	return Complex, nil
}

// IsOpen reports whether the model is an open type.
func IsOpen(ann Annotations, m *typegraph.Model) bool {
	return ann.IsOpenType(m)
}

// PropertyClass describes how a property is rendered.
type PropertyClass struct {
	Navigation bool
	Contained  bool
}

// ClassifyProperty marks contains and references properties as navigation.
func ClassifyProperty(ann Annotations, p *typegraph.Property) PropertyClass {
	contained := ann.IsContains(p)
	return PropertyClass{
		Navigation: contained || ann.IsReferences(p),
		Contained:  contained,
	}
}

var edmScalars = map[string]string{
	"string":        "Edm.String",
	"bytes":         "Collection(Edm.Byte)",
	"int8":          "Edm.Byte",
	"int16":         "Edm.Int16",
	"int32":         "Edm.Int32",
	"int64":         "Edm.Int64",
	"float32":       "Edm.Single",
	"float64":       "Edm.Double",
	"plainDate":     "Edm.Date",
	"plainTime":     "Edm.TimeOfDay",
	"zonedDateTime": "Edm.DateTimeOffset",
	"duration":      "Edm.Duration",
	"boolean":       "Edm.Boolean",
	"stream":        "Edm.Stream",
}

// EdmName returns the Edm primitive for an intrinsic scalar name.
func EdmName(name string) (string, bool) {
	edm, ok := edmScalars[name]
	return edm, ok
}

// ScalarTypeName returns the Type attribute of a scalar property.
// Types without a mapping render their name, or their kind tag as a last resort.
func ScalarTypeName(t typegraph.Type) string {
	switch v := t.(type) {
	case *typegraph.Model:
		if edm, ok := edmScalars[v.Name]; ok {
			return edm
		}
		return v.Name
	case *typegraph.Array:
		return "Collection(" + ScalarTypeName(v.ElementType) + ")"
	case *typegraph.Union:
		names := make([]string, 0, len(v.Options))
		for _, o := range v.Options {
			names = append(names, ScalarTypeName(o))
		}
		return strings.Join(names, " | ")
	case *typegraph.TemplateParameter:
		return v.Name
	case *typegraph.StringLiteral:
		return v.Value
	case *typegraph.NumberLiteral:
		return FormatNumber(v.Value)
	case *typegraph.BooleanLiteral:
		return strconv.FormatBool(v.Value)
	case *typegraph.Namespace:
		return v.Name
	case *typegraph.Operation:
		return v.Name
	case *typegraph.Interface:
		return v.Name
	case *typegraph.Enum:
		return v.Name
	case nil:
		return ""
	default:
		return t.Kind().String()
	}
}

// FormatNumber renders a numeric literal in its shortest form, "3" rather than "3.0".
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
