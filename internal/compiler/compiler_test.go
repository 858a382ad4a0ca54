package compiler_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/csdlgen/internal/compiler"
	"github.com/aretw0/csdlgen/pkg/typegraph"
)

const zooYAML = `
namespaces:
  - name: Zoo
    enums:
      - name: Species
        members:
          - name: dog
          - name: cat
            value: 2
    models:
      - name: Pet
        decorators: [openModel]
        properties:
          - name: id
            type: string
            decorators: ["@id"]
          - name: species
            type: Species
            optional: true
          - name: toys
            type: Toy[]
            decorators: [contains]
          - name: owner
            type: People.Person
            decorators:
              - name: references
      - name: Toy
        properties:
          - name: code
            type: int32
            decorators:
              - name: id
                args: [toyCode]
    interfaces:
      - name: Pets
        decorators:
          - name: route
            args: [/zoo/pets]
        operations:
          - name: list
            returns: Pet[]
          - name: get
            parameters:
              - name: id
                type: string
            returns: Pet
    namespaces:
      - name: People
        models:
          - name: Person
            properties:
              - name: name
                type: string
`

func compile(t *testing.T, doc string) *typegraph.Program {
	t.Helper()
	graph, err := compiler.Parse([]byte(doc), compiler.FormatYAML)
	require.NoError(t, err)
	prog, err := compiler.Compile(graph, "zoo.yaml")
	require.NoError(t, err)
	return prog
}

func TestCompile_Zoo(t *testing.T) {
	prog := compile(t, zooYAML)

	zoo, ok := prog.Global.Namespaces.Get("Zoo")
	require.True(t, ok)

	pet, ok := zoo.Models.Get("Pet")
	require.True(t, ok)
	assert.Equal(t, []string{"id", "species", "toys", "owner"}, pet.Properties.Keys())

	toys, _ := pet.Properties.Get("toys")
	arr, ok := toys.Type.(*typegraph.Array)
	require.True(t, ok)
	toy, _ := zoo.Models.Get("Toy")
	assert.Same(t, toy, arr.ElementType, "forward reference resolves to the declared model")

	owner, _ := pet.Properties.Get("owner")
	person, ok := owner.Type.(*typegraph.Model)
	require.True(t, ok)
	assert.Equal(t, "People", person.Namespace.Name)

	species, _ := pet.Properties.Get("species")
	assert.True(t, species.Optional)
	assert.IsType(t, &typegraph.Enum{}, species.Type)

	idProp, _ := pet.Properties.Get("id")
	scalar, ok := idProp.Type.(*typegraph.Model)
	require.True(t, ok)
	assert.Equal(t, "string", scalar.Name)
	assert.Equal(t, compiler.BuiltinNamespace, scalar.Namespace.Name)

	enum, _ := zoo.Enums.Get("Species")
	require.Len(t, enum.Members, 2)
	assert.Nil(t, enum.Members[0].Value)
	assert.Equal(t, 2.0, enum.Members[1].Value)

	pets, _ := zoo.Interfaces.Get("Pets")
	assert.Equal(t, []string{"list", "get"}, pets.Operations.Keys())
	get, _ := pets.Operations.Get("get")
	assert.Equal(t, 1, get.Parameters.Properties.Len())
	assert.Same(t, pet, get.ReturnType)
}

func TestCompile_Declarations(t *testing.T) {
	prog := compile(t, zooYAML)

	var names []string
	for _, d := range prog.Declarations {
		names = append(names, d.Name)
		assert.Equal(t, "zoo.yaml", d.Site.File)
	}
	assert.Equal(t, []string{"openModel", "id", "contains", "references", "id", "route"}, names)

	toyKey := prog.Declarations[4]
	assert.Equal(t, "Zoo.Toy.code", toyKey.Site.Path)
	assert.Equal(t, []any{"toyCode"}, toyKey.Args)

	route := prog.Declarations[5]
	assert.Equal(t, "Zoo.Pets", route.Site.Path)
	assert.Equal(t, []any{"/zoo/pets"}, route.Args)
}

func TestCompile_TypeReferences(t *testing.T) {
	prog := compile(t, `
models:
  - name: Shape
    properties:
      - name: tag
        type: '"circle" | "square"'
      - name: size
        type: 3.5
      - name: flag
        type: "true"
      - name: pair
        type: "[string, int64]"
      - name: grid
        type: int32[][]
      - name: nothing
        type: void
`)
	shape, ok := prog.Global.Models.Get("Shape")
	require.True(t, ok)

	tag, _ := shape.Properties.Get("tag")
	u, ok := tag.Type.(*typegraph.Union)
	require.True(t, ok)
	require.Len(t, u.Options, 2)
	assert.Equal(t, &typegraph.StringLiteral{Value: "circle"}, u.Options[0])

	size, _ := shape.Properties.Get("size")
	assert.Equal(t, &typegraph.NumberLiteral{Value: 3.5}, size.Type)

	flag, _ := shape.Properties.Get("flag")
	assert.Equal(t, &typegraph.BooleanLiteral{Value: true}, flag.Type)

	pair, _ := shape.Properties.Get("pair")
	tuple, ok := pair.Type.(*typegraph.Tuple)
	require.True(t, ok)
	assert.Len(t, tuple.Values, 2)

	grid, _ := shape.Properties.Get("grid")
	outer, ok := grid.Type.(*typegraph.Array)
	require.True(t, ok)
	assert.IsType(t, &typegraph.Array{}, outer.ElementType)

	nothing, _ := shape.Properties.Get("nothing")
	assert.Equal(t, &typegraph.Intrinsic{Name: "void"}, nothing.Type)
}

func TestCompile_ScopeResolution(t *testing.T) {
	prog := compile(t, `
models:
  - name: Shared
namespaces:
  - name: A.B
    models:
      - name: Local
        extends: Shared
        properties:
          - name: sibling
            type: Other
  - name: A
    models:
      - name: Other
`)
	a, _ := prog.Global.Namespaces.Get("A")
	b, ok := a.Namespaces.Get("B")
	require.True(t, ok, "dotted namespace names nest")

	local, _ := b.Models.Get("Local")
	shared, _ := prog.Global.Models.Get("Shared")
	assert.Same(t, shared, local.BaseModel)

	sibling, _ := local.Properties.Get("sibling")
	other, _ := a.Models.Get("Other")
	assert.Same(t, other, sibling.Type, "names resolve through enclosing namespaces")
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "unknown type",
			doc: `
models:
  - name: A
    properties:
      - name: b
        type: Missing
`,
			want: []string{"doc.yaml:.A.b", `unknown type "Missing"`},
		},
		{
			name: "duplicate declaration",
			doc: `
models:
  - name: A
enums:
  - name: A
`,
			want: []string{`duplicate declaration "A"`},
		},
		{
			name: "base is not a model",
			doc: `
enums:
  - name: E
models:
  - name: A
    extends: E
`,
			want: []string{"is a Enum, not a model"},
		},
		{
			name: "bad decorator entry",
			doc: `
models:
  - name: A
    decorators: [42]
`,
			want: []string{"invalid decorator entry"},
		},
		{
			name: "errors are joined",
			doc: `
models:
  - name: A
    properties:
      - name: x
        type: X
      - name: y
        type: Y
`,
			want: []string{`unknown type "X"`, `unknown type "Y"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			graph, err := compiler.Parse([]byte(tt.doc), compiler.FormatYAML)
			require.NoError(t, err)
			_, err = compiler.Compile(graph, "doc.yaml")
			require.Error(t, err)
			for _, w := range tt.want {
				assert.Contains(t, err.Error(), w)
			}
		})
	}
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := compiler.Parse([]byte("modles: []\n"), compiler.FormatYAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "modles")
}

func TestParse_Empty(t *testing.T) {
	graph, err := compiler.Parse(nil, compiler.FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, graph.Models)
}

func TestLoadFile_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.json")
	doc := `{
  "namespaces": [{
    "name": "Shop",
    "models": [{
      "name": "Order",
      "properties": [{"name": "id", "type": "int64", "decorators": ["id"]}]
    }]
  }]
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	prog, err := compiler.LoadFile(path)
	require.NoError(t, err)

	shop, ok := prog.Global.Namespaces.Get("Shop")
	require.True(t, ok)
	assert.True(t, shop.HasDeclarations())
	require.Len(t, prog.Declarations, 1)
	assert.Equal(t, path, prog.Declarations[0].Site.File)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := compiler.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, compiler.FormatJSON, compiler.FormatOf("a/B.JSON"))
	assert.Equal(t, compiler.FormatYAML, compiler.FormatOf("a/b.yml"))
	assert.Equal(t, compiler.FormatYAML, compiler.FormatOf("graph"))
}
