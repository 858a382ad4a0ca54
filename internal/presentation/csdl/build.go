package csdl

import (
	"fmt"
	"strings"

	"github.com/aretw0/csdlgen/internal/classify"
	"github.com/aretw0/csdlgen/internal/flatten"
	"github.com/aretw0/csdlgen/internal/identity"
	"github.com/aretw0/csdlgen/pkg/typegraph"
)

// ContainerName is the Name of the generated EntityContainer.
const ContainerName = "container"

// RouteResolver returns the resource path bound to an interface.
type RouteResolver interface {
	RouteOf(t typegraph.Type) (string, bool)
}

// Options control which namespaces are rendered and what they contain.
type Options struct {
	// Excluded lists namespace prefixes to skip. Nil means flatten.DefaultExcluded.
	Excluded []string
	// EntityContainer enables the container placeholder. It needs Routes.
	EntityContainer bool
	Routes          RouteResolver
}

func (o Options) excluded() []string {
	if o.Excluded == nil {
		return flatten.DefaultExcluded
	}
	return o.Excluded
}

// Builder turns namespaces into Schema elements.
type Builder struct {
	ann  classify.Annotations
	opts Options
}

// NewBuilder creates a builder reading annotations from ann.
func NewBuilder(ann classify.Annotations, opts Options) *Builder {
	return &Builder{ann: ann, opts: opts}
}

// Namespaces returns the namespaces that produce a schema, in document order.
func (b *Builder) Namespaces(root *typegraph.Namespace) []*typegraph.Namespace {
	return flatten.Flatten(root, b.opts.excluded())
}

// Schemas builds one Schema element per included namespace.
func (b *Builder) Schemas(root *typegraph.Namespace) []Element {
	namespaces := b.Namespaces(root)
	out := make([]Element, 0, len(namespaces))
	for _, ns := range namespaces {
		out = append(out, b.Schema(ns))
	}
	return out
}

// Render builds and serializes the whole document.
func (b *Builder) Render(root *typegraph.Namespace) string {
	return Document(b.Schemas(root))
}

// Schema renders the enums then the models of ns.
func (b *Builder) Schema(ns *typegraph.Namespace) Element {
	schema := NewElement("Schema",
		Attr{Name: "Namespace", Value: identity.NamespaceString(ns)},
		Attr{Name: "xmlns", Value: EdmNamespace},
		Attr{Name: "xmlns:ags", Value: AggregatorNamespace},
	)

	for _, e := range ns.Enums.Values() {
		schema = schema.Append(b.Enum(e))
	}
	for _, m := range ns.Models.Values() {
		schema = schema.Append(b.Model(m))
	}

	if b.opts.EntityContainer && b.opts.Routes != nil && ns.Interfaces.Len() > 0 {
		schema = schema.Append(b.Container(ns))
	}
	return schema
}

// Enum renders an EnumType with its members.
func (b *Builder) Enum(e *typegraph.Enum) Element {
	el := NewElement("EnumType", Attr{Name: "Name", Value: e.Name})
	for _, m := range e.Members {
		member := NewElement("EnumMember", Attr{Name: "Name", Value: m.Name})
		if value, ok := memberValue(m.Value); ok {
			member.Attrs = append(member.Attrs, Attr{Name: "Value", Value: value})
		}
		el = el.Append(member)
	}
	return el
}

func memberValue(v any) (string, bool) {
	switch v := v.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case float64:
		return classify.FormatNumber(v), true
	default:
		return fmt.Sprint(v), true
	}
}

// Model renders an EntityType when the model has a key property and a ComplexType otherwise.
func (b *Builder) Model(m *typegraph.Model) Element {
	class, key := classify.ClassifyModel(b.ann, m)

	el := NewElement(class.String(), Attr{Name: "Name", Value: m.Name})
	if m.BaseModel != nil {
		el.Attrs = append(el.Attrs, Attr{Name: "BaseType", Value: m.BaseModel.Name})
	}
	if classify.IsOpen(b.ann, m) {
		el.Attrs = append(el.Attrs, Attr{Name: "OpenType", Value: "true"})
	}

	if class == classify.Entity {
		ref := NewElement("PropertyRef", Attr{Name: "Name", Value: b.ann.KeyName(key)})
		el = el.Append(NewElement("Key").Append(ref))
	}

	for _, p := range m.Properties.Values() {
		el = el.Append(b.Property(p))
	}
	return el
}

// Property renders a Property or, for contains/references properties, a NavigationProperty.
func (b *Builder) Property(p *typegraph.Property) Element {
	pc := classify.ClassifyProperty(b.ann, p)

	if pc.Navigation {
		el := NewElement("NavigationProperty",
			Attr{Name: "Name", Value: p.Name},
			Attr{Name: "Type", Value: identity.QualifiedID(p.Type)},
		)
		if pc.Contained {
			el.Attrs = append(el.Attrs, Attr{Name: "ContainsTarget", Value: "true"})
		}
		return el
	}

	el := NewElement("Property",
		Attr{Name: "Name", Value: p.Name},
		Attr{Name: "Type", Value: classify.ScalarTypeName(p.Type)},
	)
	if !p.Optional {
		el.Attrs = append(el.Attrs, Attr{Name: "Nullable", Value: "false"})
	}
	return el
}

// EntitySet is an interface that looks like an addressable collection.
type EntitySet struct {
	Path       string
	Interface  *typegraph.Interface
	ReturnType typegraph.Type
}

// EntitySets lists the interfaces of ns whose route has a "/" past the first character
// and that declare a Get operation.
func EntitySets(ns *typegraph.Namespace, routes RouteResolver) []EntitySet {
	if routes == nil {
		return nil
	}
	var out []EntitySet
	for _, iface := range ns.Interfaces.Values() {
		path, ok := routes.RouteOf(iface)
		if !ok || strings.LastIndex(path, "/") <= 0 {
			continue
		}
		get, ok := iface.Operations.Get("Get")
		if !ok {
			continue
		}
		out = append(out, EntitySet{Path: path, Interface: iface, ReturnType: get.ReturnType})
	}
	return out
}

// Container renders the EntityContainer placeholder with one comment per entity set candidate.
func (b *Builder) Container(ns *typegraph.Namespace) Element {
	el := NewElement("EntityContainer", Attr{Name: "Name", Value: ContainerName})
	for _, set := range EntitySets(ns, b.opts.Routes) {
		el = el.Append(NewComment(fmt.Sprintf("EntitySet %s: %s", set.Path, identity.QualifiedID(set.ReturnType))))
	}
	return el
}
