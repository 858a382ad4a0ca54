package odata

import (
	"github.com/aretw0/csdlgen/pkg/annotation"
	"github.com/aretw0/csdlgen/pkg/registry"
	"github.com/aretw0/csdlgen/pkg/schema"
	"github.com/aretw0/csdlgen/pkg/typegraph"
)

// Decorator names accepted in graph documents.
const (
	DecoratorID         = "id"
	DecoratorOpenModel  = "openModel"
	DecoratorContains   = "contains"
	DecoratorReferences = "references"
	DecoratorRoute      = "route"
)

// Decorators returns the declaration handlers backed by a.
func (a *Annotations) Decorators() []registry.Decorator {
	return []registry.Decorator{
		{
			Name:      DecoratorID,
			Signature: schema.Signature{{Name: "altName", Type: schema.Optional(schema.String())}},
			Apply:     a.applyID,
		},
		{Name: DecoratorOpenModel, Apply: presence(a.OpenType)},
		{Name: DecoratorContains, Apply: presence(a.Contains)},
		{Name: DecoratorReferences, Apply: presence(a.References)},
		{
			Name:      DecoratorRoute,
			Signature: schema.Signature{{Name: "path", Type: schema.NonEmptyString()}},
			Apply: func(target typegraph.Type, args []any) error {
				return a.Route.SetRaw(target, args[0])
			},
		},
	}
}

// Install registers the decorators of a into r.
func (a *Annotations) Install(r *registry.Registry) *registry.Registry {
	for _, d := range a.Decorators() {
		r.Register(d)
	}
	return r
}

// NewRegistry returns a registry with only the OData decorators installed.
func (a *Annotations) NewRegistry() *registry.Registry {
	return a.Install(registry.NewRegistry())
}

func (a *Annotations) applyID(target typegraph.Type, args []any) error {
	p, ok := target.(*typegraph.Property)
	if !ok {
		return &annotation.Error{Code: annotation.InvalidAnnotationTarget, Kind: KindKey, Target: target.Kind()}
	}

	name := p.Name
	if len(args) > 0 {
		if alt, _ := args[0].(string); alt != "" {
			name = alt
		}
	}
	return a.Key.Set(p, name)
}

func presence(kind *annotation.Kind[bool]) registry.DecoratorFunc {
	return func(target typegraph.Type, _ []any) error {
		return kind.Set(target, true)
	}
}
