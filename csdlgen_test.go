package csdlgen_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/csdlgen"
	"github.com/aretw0/csdlgen/pkg/adapters/memory"
	"github.com/aretw0/csdlgen/pkg/annotation"
	"github.com/aretw0/csdlgen/pkg/dsl"
	"github.com/aretw0/csdlgen/pkg/observability"
	"github.com/aretw0/csdlgen/pkg/odata"
	"github.com/aretw0/csdlgen/pkg/query"
	"github.com/aretw0/csdlgen/pkg/registry"
	"github.com/aretw0/csdlgen/pkg/schema"
	"github.com/aretw0/csdlgen/pkg/typegraph"
)

func zooProgram() *dsl.Builder {
	b := dsl.New()
	zoo := b.Namespace("Zoo")
	toy := zoo.Model("Toy").OptionalProp("description", b.Builtin("string"))
	pet := zoo.Model("Pet").
		Prop("name", b.Builtin("string"), dsl.Key()).
		Prop("toys", dsl.ArrayOf(toy.Type()), dsl.Contains())
	zoo.Interface("Pets", dsl.Route("/zoo/pets")).Op("Get", pet.Type())
	return b
}

func TestRender_Summary(t *testing.T) {
	res := csdlgen.New().Render(zooProgram().Build())

	require.Empty(t, res.Diagnostics)
	require.Len(t, res.Schemas, 1)
	assert.Equal(t, csdlgen.SchemaInfo{
		Namespace:            "Zoo",
		EntityTypes:          1,
		ComplexTypes:         1,
		NavigationProperties: 1,
		EntitySets:           []string{"/zoo/pets"},
	}, res.Schemas[0])
	assert.Len(t, res.Namespaces, 1)
	assert.NotContains(t, string(res.Document), "EntityContainer")
}

func TestRender_DiagnosticsDoNotAbort(t *testing.T) {
	b := zooProgram()
	b.Namespace("Zoo").Model("Toy", dsl.Key())
	b.Namespace("Zoo").Model("Pet").Decorate("doc", "a pet")

	res := csdlgen.New().Render(b.Build())

	require.Len(t, res.Diagnostics, 2)
	assert.Equal(t, annotation.InvalidAnnotationTarget, res.Diagnostics[0].Code)
	assert.Equal(t, "Zoo.Toy", res.Diagnostics[0].Site.Path)
	assert.Equal(t, annotation.UnknownDecorator, res.Diagnostics[1].Code)

	doc, err := query.Parse(res.Document)
	require.NoError(t, err)
	n, err := doc.Count("//ComplexType[@Name='Toy']")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestEmit_SavesToStore(t *testing.T) {
	store := memory.NewStore()
	reg := prometheus.NewRegistry()
	emitter := csdlgen.New(
		csdlgen.WithStore(store),
		csdlgen.WithMetrics(observability.NewMetrics(reg)),
	)

	res, err := emitter.Emit(context.Background(), zooProgram().Build())
	require.NoError(t, err)

	saved, err := store.Load(context.Background(), csdlgen.DefaultFilename)
	require.NoError(t, err)
	assert.Equal(t, res.Document, saved)

	count, err := testutil.GatherAndCount(reg, "csdlgen_document_saves_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEmit_Strict(t *testing.T) {
	b := zooProgram()
	b.Namespace("Zoo").Model("Toy", dsl.Key())

	store := memory.NewStore()
	emitter := csdlgen.New(csdlgen.WithStore(store), csdlgen.WithStrict(true))

	res, err := emitter.Emit(context.Background(), b.Build())
	require.Error(t, err)
	assert.True(t, errors.Is(err, csdlgen.ErrDiagnostics))
	assert.NotNil(t, res)

	names, _ := store.List(context.Background())
	assert.Empty(t, names)
}

type failingStore struct{ memory.Store }

func (failingStore) Save(ctx context.Context, name string, data []byte) error {
	return errors.New("disk full")
}

func TestEmit_StoreFailure(t *testing.T) {
	emitter := csdlgen.New(csdlgen.WithStore(&failingStore{}))
	_, err := emitter.Emit(context.Background(), zooProgram().Build())
	assert.ErrorContains(t, err, "failed to save csdl.xml: disk full")
}

func TestRender_Options(t *testing.T) {
	b := zooProgram()
	res := csdlgen.New(
		csdlgen.WithEntityContainer(true),
		csdlgen.WithExcludedNamespaces(),
	).Render(b.Build())

	doc, err := query.Parse(res.Document)
	require.NoError(t, err)

	n, err := doc.Count("//Schema")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "Cadl is rendered when nothing is excluded")

	container, err := doc.First("//Schema[@Namespace='Zoo']/EntityContainer")
	require.NoError(t, err)
	require.NotNil(t, container)
}

func TestRender_Extension(t *testing.T) {
	var summary *annotation.Kind[string]
	ext := func(ann *odata.Annotations, reg *registry.Registry) {
		summary = annotation.Declare[string](ann.Store, annotation.Spec{
			Name:    "summary",
			Targets: []typegraph.Kind{typegraph.KindModel},
			Value:   schema.NonEmptyString(),
		})
		reg.Register(registry.Decorator{
			Name:      "summary",
			Signature: schema.Signature{{Name: "text", Type: schema.String()}},
			Apply: func(target typegraph.Type, args []any) error {
				return summary.SetRaw(target, args[0])
			},
		})
	}

	b := zooProgram()
	pet := b.Namespace("Zoo").Model("Pet").Decorate("summary", "A pet").Type()

	res := csdlgen.New(csdlgen.WithExtension(ext)).Render(b.Build())
	require.Empty(t, res.Diagnostics)

	text, ok := summary.Get(pet)
	require.True(t, ok)
	assert.Equal(t, "A pet", text)
	assert.Contains(t, res.Annotations.Store.Entries(pet), annotation.Entry{Kind: "summary", Value: "A pet"})
}

func TestRender_FreshStorePerCall(t *testing.T) {
	emitter := csdlgen.New()
	prog := zooProgram().Build()

	first := emitter.Render(prog)
	second := emitter.Render(prog)

	assert.Equal(t, first.Document, second.Document)
	assert.NotSame(t, first.Annotations.Store, second.Annotations.Store)
}

func TestValidate_IncludesProgramChecks(t *testing.T) {
	b := zooProgram()
	b.Namespace("Zoo").Model("Pet").Prop("nickname", b.Builtin("string"), dsl.Key())
	b.Namespace("Zoo").Model("Ghost", dsl.Key())

	diags := csdlgen.New().Validate(b.Build())

	require.Len(t, diags, 2)
	assert.Equal(t, annotation.InvalidAnnotationTarget, diags[0].Code)
	assert.Equal(t, annotation.Code("ambiguous-key"), diags[1].Code)
	assert.Equal(t, "Zoo.Pet", diags[1].Site.Path)
}
