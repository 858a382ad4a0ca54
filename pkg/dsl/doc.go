/*
Package dsl provides a Go DSL for programmatically constructing resolved type graphs.

It builds the same typegraph.Program a graph document would produce, which is handy for
tests, examples and generators that already hold their model in Go.

Example usage:

	b := dsl.New()
	str, i32 := b.Builtin("string"), b.Builtin("int32")

	zoo := b.Namespace("Zoo")
	toy := zoo.Model("Toy").
		OptionalProp("description", str)

	zoo.Model("Pet").
		Prop("name", str, dsl.Key()).
		Prop("age", i32).
		Prop("toys", dsl.ArrayOf(toy.Type()), dsl.Contains())

	zoo.Enum("Species").Member("dog").Member("cat")

	prog := b.Build()
	// ... pass prog to csdlgen.New().Render(prog)
*/
package dsl
