package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/csdlgen/internal/classify"
	"github.com/aretw0/csdlgen/pkg/typegraph"
)

// extraScalars are intrinsic scalars without an Edm mapping. They still resolve
// into the builtin namespace and render under their own name.
var extraScalars = map[string]bool{
	"uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"safeint": true, "integer": true, "float": true, "numeric": true,
	"decimal": true, "decimal128": true, "url": true,
	"utcDateTime": true, "offsetDateTime": true,
}

var intrinsics = map[string]bool{
	"void": true, "never": true, "unknown": true, "null": true,
}

// IsScalarName reports whether name is an intrinsic scalar model.
func IsScalarName(name string) bool {
	if _, ok := classify.EdmName(name); ok {
		return true
	}
	return extraScalars[name]
}

// resolver turns type references into graph nodes.
//
// Grammar, loosest binding first:
//
//	ref    = option { "|" option }
//	option = term { "[]" }
//	term   = "[" ref { "," ref } "]" | string | number | "true" | "false" | name
//
// Names resolve against the enclosing namespaces from innermost outwards,
// then against the intrinsic scalars.
type resolver struct {
	global  *typegraph.Namespace
	builtin func(name string) *typegraph.Model
}

func (r *resolver) resolve(ref string, scope *typegraph.Namespace) (typegraph.Type, error) {
	s := strings.TrimSpace(ref)
	if s == "" {
		return nil, fmt.Errorf("empty type reference")
	}

	if options := splitTop(s, '|'); len(options) > 1 {
		u := &typegraph.Union{}
		for _, o := range options {
			t, err := r.resolve(o, scope)
			if err != nil {
				return nil, err
			}
			u.Options = append(u.Options, t)
		}
		return u, nil
	}

	if inner, ok := strings.CutSuffix(s, "[]"); ok {
		elem, err := r.resolve(inner, scope)
		if err != nil {
			return nil, err
		}
		return &typegraph.Array{ElementType: elem}, nil
	}

	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		tuple := &typegraph.Tuple{}
		for _, v := range splitTop(s[1:len(s)-1], ',') {
			t, err := r.resolve(v, scope)
			if err != nil {
				return nil, err
			}
			tuple.Values = append(tuple.Values, t)
		}
		return tuple, nil
	}

	return r.term(s, scope)
}

func (r *resolver) term(s string, scope *typegraph.Namespace) (typegraph.Type, error) {
	switch {
	case strings.HasPrefix(s, `"`):
		v, err := strconv.Unquote(s)
		if err != nil {
			return nil, fmt.Errorf("invalid string literal %s", s)
		}
		return &typegraph.StringLiteral{Value: v}, nil
	case strings.HasPrefix(s, "'") && strings.HasSuffix(s, "'") && len(s) >= 2:
		return &typegraph.StringLiteral{Value: s[1 : len(s)-1]}, nil
	case s == "true" || s == "false":
		return &typegraph.BooleanLiteral{Value: s == "true"}, nil
	case intrinsics[s]:
		return &typegraph.Intrinsic{Name: s}, nil
	}

	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return &typegraph.NumberLiteral{Value: n}, nil
	}

	segments := strings.Split(s, ".")
	for ns := scope; ns != nil; ns = ns.Parent {
		if t, ok := lookup(ns, segments); ok {
			return t, nil
		}
	}
	if len(segments) == 1 && IsScalarName(s) {
		return r.builtin(s), nil
	}
	return nil, fmt.Errorf("unknown type %q", s)
}

func lookup(ns *typegraph.Namespace, segments []string) (typegraph.Type, bool) {
	cur := ns
	for _, seg := range segments[:len(segments)-1] {
		child, ok := cur.Namespaces.Get(seg)
		if !ok {
			return nil, false
		}
		cur = child
	}

	name := segments[len(segments)-1]
	if m, ok := cur.Models.Get(name); ok {
		return m, true
	}
	if e, ok := cur.Enums.Get(name); ok {
		return e, true
	}
	if u, ok := cur.Unions.Get(name); ok {
		return u, true
	}
	if i, ok := cur.Interfaces.Get(name); ok {
		return i, true
	}
	return nil, false
}

// splitTop splits s on sep outside brackets and quotes.
func splitTop(s string, sep rune) []string {
	var (
		parts []string
		depth int
		quote rune
		start int
	)
	for i, c := range s {
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			depth--
		case c == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}
