// Package annotation stores typed metadata about type graph nodes out-of-band.
//
// The type graph is immutable once resolved, so facts such as "this property is the
// entity key" live in a Store keyed by node identity. Each fact family is declared
// once with Declare and returns a typed handle:
//
//	store := annotation.NewStore()
//	key := annotation.Declare[string](store, annotation.Spec{
//		Name:    "key",
//		Targets: []typegraph.Kind{typegraph.KindModelProperty},
//		Value:   schema.NonEmptyString(),
//	})
//	if err := key.Set(prop, "petId"); err != nil { ... }
//	alias, ok := key.Get(prop)
//
// Handles never collide: two kinds with the same Name still own separate tables.
// Writes are rejected with an *Error when the node kind is not an allowed target or the
// value fails the Spec's predicate. Rejections are meant to be reported as Diagnostics,
// they never abort a render.
package annotation
