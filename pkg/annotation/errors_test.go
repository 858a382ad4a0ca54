package annotation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/csdlgen/pkg/annotation"
	"github.com/aretw0/csdlgen/pkg/typegraph"
)

func TestDiagnostics(t *testing.T) {
	var ds annotation.Diagnostics
	assert.False(t, ds.HasErrors())
	assert.NoError(t, ds.Err())

	ds = append(ds, annotation.Diagnostic{
		Code:     annotation.UnknownDecorator,
		Message:  `unknown decorator "foo"`,
		Site:     typegraph.Site{File: "graph.yaml", Path: "Zoo.Pet"},
		Severity: annotation.SeverityWarning,
	})
	assert.False(t, ds.HasErrors())
	assert.Equal(t, `graph.yaml:Zoo.Pet: warning unknown-decorator: unknown decorator "foo"`, ds.Error())

	ds = append(ds, annotation.Diagnostic{
		Code:    annotation.InvalidAnnotationTarget,
		Message: "bad target",
		Site:    typegraph.Site{Path: "Zoo.Pet"},
	})
	assert.True(t, ds.HasErrors())
	assert.Error(t, ds.Err())
	assert.Contains(t, ds.Error(), "2 diagnostics:")
	assert.Len(t, ds.ByCode(annotation.InvalidAnnotationTarget), 1)
}

func TestFromError(t *testing.T) {
	err := &annotation.Error{Code: annotation.InvalidAnnotationTarget, Kind: "key", Target: typegraph.KindModel}
	d := annotation.FromError(err, typegraph.Site{Path: "Zoo.Pet"})

	assert.Equal(t, annotation.InvalidAnnotationTarget, d.Code)
	assert.Equal(t, annotation.SeverityError, d.Severity)
	assert.Equal(t, `annotation "key" cannot be applied to Model`, d.Message)
}
