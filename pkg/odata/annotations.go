package odata

import (
	"github.com/aretw0/csdlgen/pkg/annotation"
	"github.com/aretw0/csdlgen/pkg/schema"
	"github.com/aretw0/csdlgen/pkg/typegraph"
)

// Annotation kind names.
const (
	KindKey        = "key"
	KindOpenType   = "openType"
	KindContains   = "contains"
	KindReferences = "references"
	KindRoute      = "route"
)

// Annotations holds the handles declared by Register.
type Annotations struct {
	Store      *annotation.Store
	Key        *annotation.Kind[string]
	OpenType   *annotation.Kind[bool]
	Contains   *annotation.Kind[bool]
	References *annotation.Kind[bool]
	Route      *annotation.Kind[string]
}

// Register declares the OData annotation kinds on store.
func Register(store *annotation.Store) *Annotations {
	property := []typegraph.Kind{typegraph.KindModelProperty}

	return &Annotations{
		Store: store,
		Key: annotation.Declare[string](store, annotation.Spec{
			Name:    KindKey,
			Targets: property,
			Value:   schema.NonEmptyString(),
		}),
		OpenType: annotation.Declare[bool](store, annotation.Spec{
			Name:    KindOpenType,
			Targets: []typegraph.Kind{typegraph.KindModel},
		}),
		Contains: annotation.Declare[bool](store, annotation.Spec{
			Name:    KindContains,
			Targets: property,
		}),
		References: annotation.Declare[bool](store, annotation.Spec{
			Name:    KindReferences,
			Targets: property,
		}),
		Route: annotation.Declare[string](store, annotation.Spec{
			Name:    KindRoute,
			Targets: []typegraph.Kind{typegraph.KindInterface, typegraph.KindOperation},
			Value:   schema.NonEmptyString(),
		}),
	}
}

// New creates a fresh store with the OData kinds declared.
func New() *Annotations {
	return Register(annotation.NewStore())
}

// IsKey reports whether p is marked as a key.
func (a *Annotations) IsKey(p *typegraph.Property) bool { return a.Key.Has(p) }

// KeyName returns the key alias of p, or "" when p is not a key.
func (a *Annotations) KeyName(p *typegraph.Property) string {
	name, _ := a.Key.Get(p)
	return name
}

// IsOpenType reports whether m accepts undeclared properties.
func (a *Annotations) IsOpenType(m *typegraph.Model) bool { return a.OpenType.Has(m) }

// IsContains reports whether p is a containment navigation.
func (a *Annotations) IsContains(p *typegraph.Property) bool { return a.Contains.Has(p) }

// IsReferences reports whether p is a reference navigation.
func (a *Annotations) IsReferences(p *typegraph.Property) bool { return a.References.Has(p) }

// RouteOf returns the route bound to an interface or operation.
func (a *Annotations) RouteOf(t typegraph.Type) (string, bool) { return a.Route.Get(t) }
