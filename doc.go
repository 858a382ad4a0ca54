/*
Package csdlgen renders resolved type graphs as OData CSDL documents.

A program is a tree of namespaces holding models, enums, interfaces, operations and unions,
plus a list of declarations (decorators) attached to its nodes. The Emitter applies the
declarations to an out-of-band annotation store, classifies every model and property from
those annotations and serializes the result inside the edmx envelope.

# Concept

Declarations never mutate the graph. A model is an EntityType when one of its own properties
carries @id; otherwise it is a ComplexType. Properties marked @contains or @references become
NavigationProperty elements. Invalid declarations are reported as diagnostics and ignored, so a
render always produces a document.

# Usage

	b := dsl.New()
	b.Namespace("Zoo").Model("Pet").
		Prop("name", b.Builtin("string"), dsl.Key()).
		Prop("age", b.Builtin("int32"))

	emitter := csdlgen.New(csdlgen.WithStore(memory.NewStore()))
	res, err := emitter.Emit(ctx, b.Build())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(res.Document))

Graph documents (YAML or JSON) can be loaded with the csdlgen CLI, which also serves the
rendered document over HTTP ($metadata) and MCP.
*/
package csdlgen
