package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/csdlgen/internal/classify"
	"github.com/aretw0/csdlgen/internal/identity"
	"github.com/aretw0/csdlgen/pkg/typegraph"
)

// Overlay highlights selected types on the diagram.
type Overlay struct {
	// Highlight lists qualified ids, e.g. "Zoo.Pet".
	Highlight []string
}

// GenerateMermaid produces a Mermaid class diagram of the models and enums in namespaces.
// It applies semantic styling:
// - EntityType / ComplexType / EnumType stereotypes
// - Containment: *-- (composition)
// - Reference: --> (association)
// - Base model: --|> (inheritance)
func GenerateMermaid(namespaces []*typegraph.Namespace, ann classify.Annotations, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("classDiagram\n")

	var edges []string
	for _, ns := range namespaces {
		for _, e := range ns.Enums.Values() {
			id := identity.QualifiedID(e)
			fmt.Fprintf(&sb, "    class %s[\"%s\"] {\n", sanitizeMermaidID(id), id)
			sb.WriteString("        <<EnumType>>\n")
			for _, m := range e.Members {
				fmt.Fprintf(&sb, "        %s\n", m.Name)
			}
			sb.WriteString("    }\n")
		}

		for _, m := range ns.Models.Values() {
			id := identity.QualifiedID(m)
			safeID := sanitizeMermaidID(id)
			class, key := classify.ClassifyModel(ann, m)

			fmt.Fprintf(&sb, "    class %s[\"%s\"] {\n", safeID, id)
			fmt.Fprintf(&sb, "        <<%s>>\n", class)

			for _, p := range m.Properties.Values() {
				pc := classify.ClassifyProperty(ann, p)
				if pc.Navigation {
					arrow := "-->"
					if pc.Contained {
						arrow = "*--"
					}
					target := sanitizeMermaidID(navigationTarget(p.Type))
					edges = append(edges, fmt.Sprintf("    %s %s %s : %s", safeID, arrow, target, p.Name))
					continue
				}

				marker := "+"
				if p == key {
					marker = "#"
				}
				typ := sanitizeMermaidType(classify.ScalarTypeName(p.Type))
				if p.Optional {
					typ += "?"
				}
				fmt.Fprintf(&sb, "        %s%s %s\n", marker, typ, p.Name)
			}
			sb.WriteString("    }\n")

			if m.BaseModel != nil {
				edges = append(edges, fmt.Sprintf("    %s --|> %s", safeID, sanitizeMermaidID(identity.QualifiedID(m.BaseModel))))
			}
		}
	}

	for _, e := range edges {
		sb.WriteString(e)
		sb.WriteByte('\n')
	}

	// Apply Overlay Styles
	if overlay != nil {
		seen := make(map[string]bool)
		for _, id := range overlay.Highlight {
			safeID := sanitizeMermaidID(id)
			if safeID == "" || seen[safeID] {
				continue
			}
			seen[safeID] = true
			// Force black text for contrast regardless of theme.
			fmt.Fprintf(&sb, "    style %s fill:#ffeb3b,stroke:#fbc02d,stroke-width:2px,color:#000\n", safeID)
		}
	}

	return sb.String()
}

// navigationTarget resolves the element type of a navigation property.
func navigationTarget(t typegraph.Type) string {
	if arr, ok := t.(*typegraph.Array); ok {
		return navigationTarget(arr.ElementType)
	}
	return identity.QualifiedID(t)
}

func sanitizeMermaidID(id string) string {
	s := strings.TrimPrefix(id, ".")
	s = strings.ReplaceAll(s, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}

// Mermaid reads generics from "~", so type names keep parentheses but lose spaces.
func sanitizeMermaidType(name string) string {
	s := strings.ReplaceAll(name, " | ", "|")
	return strings.ReplaceAll(s, " ", "_")
}
