package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/csdlgen/internal/classify"
	"github.com/aretw0/csdlgen/pkg/odata"
	"github.com/aretw0/csdlgen/pkg/typegraph"
)

func builtin(name string) *typegraph.Model {
	return typegraph.NewNamespace("Cadl").AddModel(typegraph.NewModel(name))
}

func TestClassifyModel(t *testing.T) {
	ann := odata.New()

	base := typegraph.NewModel("Base")
	baseID := base.AddProperty(&typegraph.Property{Name: "id", Type: builtin("string")})
	require.NoError(t, ann.Key.Set(baseID, "id"))

	pet := typegraph.NewModel("Pet")
	pet.BaseModel = base
	name := pet.AddProperty(&typegraph.Property{Name: "name", Type: builtin("string")})

	class, key := classify.ClassifyModel(ann, pet)
	assert.Equal(t, classify.Complex, class, "inherited keys are not scanned")
	assert.Nil(t, key)

	class, key = classify.ClassifyModel(ann, base)
	assert.Equal(t, classify.Entity, class)
	assert.Same(t, baseID, key)

	require.NoError(t, ann.Key.Set(name, "name"))
	class, key = classify.ClassifyModel(ann, pet)
	assert.Equal(t, classify.Entity, class)
	assert.Same(t, name, key)
	assert.Equal(t, "EntityType", class.String())
}

func TestClassifyModel_FirstKeyWins(t *testing.T) {
	ann := odata.New()
	m := typegraph.NewModel("Pair")
	a := m.AddProperty(&typegraph.Property{Name: "a"})
	b := m.AddProperty(&typegraph.Property{Name: "b"})
	require.NoError(t, ann.Key.Set(b, "b"))
	require.NoError(t, ann.Key.Set(a, "a"))

	_, key := classify.ClassifyModel(ann, m)
	assert.Same(t, a, key)
}

func TestIsOpen(t *testing.T) {
	ann := odata.New()
	m := typegraph.NewModel("Bag")
	assert.False(t, classify.IsOpen(ann, m))
	require.NoError(t, ann.OpenType.Set(m, true))
	assert.True(t, classify.IsOpen(ann, m))
}

func TestClassifyProperty(t *testing.T) {
	ann := odata.New()
	m := typegraph.NewModel("Pet")
	plain := m.AddProperty(&typegraph.Property{Name: "name"})
	toys := m.AddProperty(&typegraph.Property{Name: "toys"})
	owner := m.AddProperty(&typegraph.Property{Name: "owner"})
	both := m.AddProperty(&typegraph.Property{Name: "both"})

	require.NoError(t, ann.Contains.Set(toys, true))
	require.NoError(t, ann.References.Set(owner, true))
	require.NoError(t, ann.Contains.Set(both, true))
	require.NoError(t, ann.References.Set(both, true))

	assert.Equal(t, classify.PropertyClass{}, classify.ClassifyProperty(ann, plain))
	assert.Equal(t, classify.PropertyClass{Navigation: true, Contained: true}, classify.ClassifyProperty(ann, toys))
	assert.Equal(t, classify.PropertyClass{Navigation: true}, classify.ClassifyProperty(ann, owner))
	assert.Equal(t, classify.PropertyClass{Navigation: true, Contained: true}, classify.ClassifyProperty(ann, both))
}

func TestScalarTypeName(t *testing.T) {
	pets := typegraph.NewNamespace("Zoo")
	iface := pets.AddInterface(typegraph.NewInterface("Pets"))
	op := iface.AddOperation(&typegraph.Operation{Name: "list"})

	tests := []struct {
		name string
		in   typegraph.Type
		want string
	}{
		{"string", builtin("string"), "Edm.String"},
		{"bytes", builtin("bytes"), "Collection(Edm.Byte)"},
		{"int8", builtin("int8"), "Edm.Byte"},
		{"int16", builtin("int16"), "Edm.Int16"},
		{"int32", builtin("int32"), "Edm.Int32"},
		{"int64", builtin("int64"), "Edm.Int64"},
		{"float32", builtin("float32"), "Edm.Single"},
		{"float64", builtin("float64"), "Edm.Double"},
		{"plainDate", builtin("plainDate"), "Edm.Date"},
		{"plainTime", builtin("plainTime"), "Edm.TimeOfDay"},
		{"zonedDateTime", builtin("zonedDateTime"), "Edm.DateTimeOffset"},
		{"duration", builtin("duration"), "Edm.Duration"},
		{"boolean", builtin("boolean"), "Edm.Boolean"},
		{"stream", builtin("stream"), "Edm.Stream"},
		{"unmapped model", typegraph.NewModel("Toy"), "Toy"},
		{"array", &typegraph.Array{ElementType: builtin("int32")}, "Collection(Edm.Int32)"},
		{"nested array", &typegraph.Array{ElementType: &typegraph.Array{ElementType: builtin("string")}}, "Collection(Collection(Edm.String))"},
		{"union", &typegraph.Union{Options: []typegraph.Type{builtin("string"), builtin("int32")}}, "Edm.String | Edm.Int32"},
		{"template parameter", &typegraph.TemplateParameter{Name: "T"}, "T"},
		{"string literal", &typegraph.StringLiteral{Value: "dog"}, "dog"},
		{"number literal", &typegraph.NumberLiteral{Value: 3}, "3"},
		{"fraction literal", &typegraph.NumberLiteral{Value: 1.5}, "1.5"},
		{"boolean literal", &typegraph.BooleanLiteral{Value: true}, "true"},
		{"namespace", pets, "Zoo"},
		{"interface", iface, "Pets"},
		{"operation", op, "list"},
		{"enum", &typegraph.Enum{Name: "Species"}, "Species"},
		{"tuple", &typegraph.Tuple{}, "Tuple"},
		{"intrinsic", &typegraph.Intrinsic{Name: "void"}, "Intrinsic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify.ScalarTypeName(tt.in))
		})
	}
}
