package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/csdlgen/pkg/annotation"
	"github.com/aretw0/csdlgen/pkg/schema"
	"github.com/aretw0/csdlgen/pkg/typegraph"
)

// DecoratorFunc applies a decorator to its target.
// args have already been checked against the decorator's Signature.
type DecoratorFunc func(target typegraph.Type, args []any) error

// Decorator is a named declaration handler.
type Decorator struct {
	Name      string
	Signature schema.Signature
	Apply     DecoratorFunc
}

// Registry manages the available decorators.
type Registry struct {
	mu         sync.RWMutex
	decorators map[string]Decorator
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		decorators: make(map[string]Decorator),
	}
}

// Register adds a decorator to the registry.
// If a decorator with the same name exists, it is overwritten.
func (r *Registry) Register(d Decorator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decorators[d.Name] = d
}

// Lookup returns the decorator registered under name.
func (r *Registry) Lookup(name string) (Decorator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.decorators[name]
	return d, ok
}

// Names returns the registered decorator names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.decorators))
	for name := range r.decorators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Execute looks up a decorator by name and applies it to target.
// Returns an error if the decorator is not found or rejects its input.
func (r *Registry) Execute(name string, target typegraph.Type, args []any) error {
	d, ok := r.Lookup(name)
	if !ok {
		return &annotation.Error{Code: annotation.UnknownDecorator, Kind: name, Err: fmt.Errorf("decorator not found: %s", name)}
	}

	if err := d.Signature.Validate(args); err != nil {
		return &annotation.Error{
			Code: annotation.InvalidDecoratorArgs,
			Kind: name,
			Err:  fmt.Errorf("@%s%s: %w", name, d.Signature, err),
		}
	}

	return d.Apply(target, args)
}

// Apply runs every declaration in order and collects the failures as diagnostics.
// Unknown decorators are reported as warnings so graphs may carry foreign metadata.
func (r *Registry) Apply(decls []typegraph.Declaration) annotation.Diagnostics {
	var diags annotation.Diagnostics
	for _, decl := range decls {
		err := r.Execute(decl.Name, decl.Target, decl.Args)
		if err == nil {
			continue
		}
		d := annotation.FromError(err, decl.Site)
		if d.Code == annotation.UnknownDecorator {
			d.Severity = annotation.SeverityWarning
		}
		diags = append(diags, d)
	}
	return diags
}
