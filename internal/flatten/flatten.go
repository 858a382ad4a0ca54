// Package flatten lists the namespaces that produce a CSDL schema.
package flatten

import (
	"strings"

	"github.com/aretw0/csdlgen/internal/identity"
	"github.com/aretw0/csdlgen/pkg/typegraph"
)

// DefaultExcluded is the prefix list used when none is configured.
var DefaultExcluded = []string{"Cadl"}

// Flatten walks the namespace tree depth-first in pre-order and returns every
// namespace that has a non-empty qualified name, declares at least one enum, model,
// interface or operation, and does not start with an excluded prefix.
func Flatten(root *typegraph.Namespace, excluded []string) []*typegraph.Namespace {
	var out []*typegraph.Namespace
	walk(root, excluded, &out)
	return out
}

func walk(ns *typegraph.Namespace, excluded []string, out *[]*typegraph.Namespace) {
	if ns == nil {
		return
	}
	if Included(ns, excluded) {
		*out = append(*out, ns)
	}
	for _, child := range ns.Namespaces.Values() {
		walk(child, excluded, out)
	}
}

// Included reports whether ns yields a schema.
func Included(ns *typegraph.Namespace, excluded []string) bool {
	name := identity.NamespaceString(ns)
	if name == "" || !ns.HasDeclarations() {
		return false
	}
	return !IsExcluded(name, excluded)
}

// IsExcluded reports whether a qualified namespace name starts with any excluded prefix.
// The match is textual: "Cadl" also excludes "CadlExtras".
func IsExcluded(name string, excluded []string) bool {
	for _, prefix := range excluded {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
