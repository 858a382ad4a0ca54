// Package identity computes the dotted identifiers used in CSDL references.
package identity

import (
	"strconv"
	"strings"

	"github.com/aretw0/csdlgen/pkg/typegraph"
)

// NamespaceString returns the dotted path of ns from the root.
// Unnamed namespaces, such as the global one, contribute nothing.
func NamespaceString(ns *typegraph.Namespace) string {
	var parts []string
	for cur := ns; cur != nil; cur = cur.Parent {
		if cur.Name != "" {
			parts = append(parts, cur.Name)
		}
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// QualifiedID returns the reference identifier of t.
// Declarations in the global namespace keep the leading dot, e.g. ".Pet".
func QualifiedID(t typegraph.Type) string {
	switch v := t.(type) {
	case *typegraph.Namespace:
		return NamespaceString(v)
	case *typegraph.Model:
		return qualify(v.Namespace, v.Name)
	case *typegraph.Enum:
		return qualify(v.Namespace, v.Name)
	case *typegraph.Union:
		return qualify(v.Namespace, v.Name)
	case *typegraph.Operation:
		return qualify(v.Namespace, v.Name)
	case *typegraph.Interface:
		return qualify(v.Namespace, v.Name)
	case *typegraph.Array:
		return "Collection(" + QualifiedID(v.ElementType) + ")"
	case *typegraph.StringLiteral:
		return v.Value
	case *typegraph.NumberLiteral:
		return strconv.FormatFloat(v.Value, 'f', -1, 64)
	case *typegraph.BooleanLiteral:
		return strconv.FormatBool(v.Value)
	case nil:
		return ""
	default:
		return t.Kind().String()
	}
}

func qualify(ns *typegraph.Namespace, name string) string {
	return NamespaceString(ns) + "." + name
}
