package annotation

import (
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/csdlgen/pkg/schema"
	"github.com/aretw0/csdlgen/pkg/typegraph"
)

// Spec describes an annotation kind.
type Spec struct {
	Name    string
	Targets []typegraph.Kind
	// Value validates stored values. Nil accepts anything of the handle's Go type.
	Value schema.Type
}

// Allows reports whether nodes of kind k may carry the annotation.
func (s Spec) Allows(k typegraph.Kind) bool {
	return slices.Contains(s.Targets, k)
}

// Entry is one annotation bound to a node, as listed by Store.Entries.
type Entry struct {
	Kind  string `json:"kind"`
	Value any    `json:"value"`
}

// Store holds every annotation table of a compilation.
type Store struct {
	mu     sync.RWMutex
	specs  []Spec
	tables []map[typegraph.Type]any
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Kind is a typed handle to one annotation table.
type Kind[V any] struct {
	store *Store
	id    int
}

// Declare registers a new annotation kind and returns its handle.
func Declare[V any](s *Store, spec Spec) *Kind[V] {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.specs = append(s.specs, spec)
	s.tables = append(s.tables, make(map[typegraph.Type]any))
	return &Kind[V]{store: s, id: len(s.specs) - 1}
}

// Spec returns the declaration of the kind.
func (k *Kind[V]) Spec() Spec {
	k.store.mu.RLock()
	defer k.store.mu.RUnlock()
	return k.store.specs[k.id]
}

// Name returns the kind's declared name.
func (k *Kind[V]) Name() string {
	return k.Spec().Name
}

// Set binds value to node, replacing any previous value.
func (k *Kind[V]) Set(node typegraph.Type, value V) error {
	return k.set(node, value)
}

// SetRaw binds an untyped value, typically a declaration argument.
// A value that is not a V is rejected with InvalidAnnotationValue.
func (k *Kind[V]) SetRaw(node typegraph.Type, raw any) error {
	v, ok := raw.(V)
	if !ok {
		spec := k.Spec()
		return &Error{
			Code:   InvalidAnnotationValue,
			Kind:   spec.Name,
			Target: node.Kind(),
			Err:    fmt.Errorf("expected %T, got %T", *new(V), raw),
		}
	}
	return k.set(node, v)
}

func (k *Kind[V]) set(node typegraph.Type, value V) error {
	if node == nil {
		return fmt.Errorf("annotation: nil node")
	}

	s := k.store
	s.mu.Lock()
	defer s.mu.Unlock()

	spec := s.specs[k.id]
	if !spec.Allows(node.Kind()) {
		return &Error{Code: InvalidAnnotationTarget, Kind: spec.Name, Target: node.Kind()}
	}
	if spec.Value != nil {
		if err := spec.Value.Validate(value); err != nil {
			return &Error{Code: InvalidAnnotationValue, Kind: spec.Name, Target: node.Kind(), Err: err}
		}
	}

	s.tables[k.id][node] = value
	return nil
}

// Has reports whether node carries the annotation.
func (k *Kind[V]) Has(node typegraph.Type) bool {
	k.store.mu.RLock()
	defer k.store.mu.RUnlock()
	_, ok := k.store.tables[k.id][node]
	return ok
}

// Get returns the value bound to node.
func (k *Kind[V]) Get(node typegraph.Type) (V, bool) {
	k.store.mu.RLock()
	defer k.store.mu.RUnlock()
	v, ok := k.store.tables[k.id][node]
	if !ok {
		var zero V
		return zero, false
	}
	return v.(V), true
}

// Len returns how many nodes carry the annotation.
func (k *Kind[V]) Len() int {
	k.store.mu.RLock()
	defer k.store.mu.RUnlock()
	return len(k.store.tables[k.id])
}

// Entries lists every annotation bound to node, in kind declaration order.
func (s *Store) Entries(node typegraph.Type) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for id, table := range s.tables {
		if v, ok := table[node]; ok {
			out = append(out, Entry{Kind: s.specs[id].Name, Value: v})
		}
	}
	return out
}

// Kinds returns the declared specs in declaration order.
func (s *Store) Kinds() []Spec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.specs)
}
