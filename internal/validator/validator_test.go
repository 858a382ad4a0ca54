package validator

import (
	"testing"

	"github.com/aretw0/csdlgen/pkg/annotation"
	"github.com/aretw0/csdlgen/pkg/dsl"
	"github.com/aretw0/csdlgen/pkg/odata"
	"github.com/aretw0/csdlgen/pkg/typegraph"
)

func apply(t *testing.T, prog *typegraph.Program) *odata.Annotations {
	t.Helper()
	ann := odata.New()
	if diags := ann.NewRegistry().Apply(prog.Declarations); len(diags) > 0 {
		t.Fatalf("unexpected declaration diagnostics: %v", diags)
	}
	return ann
}

func TestValidateProgram_Clean(t *testing.T) {
	b := dsl.New()
	zoo := b.Namespace("Zoo")
	toy := zoo.Model("Toy").Prop("code", b.Builtin("int32"), dsl.Key())
	zoo.Model("Pet").
		Prop("name", b.Builtin("string"), dsl.Key()).
		Prop("toys", dsl.ArrayOf(toy.Type()), dsl.Contains())

	prog := b.Build()
	if diags := ValidateProgram(prog, apply(t, prog), nil); len(diags) != 0 {
		t.Errorf("expected no diagnostics, got: %v", diags)
	}
}

func TestValidateProgram_Findings(t *testing.T) {
	b := dsl.New()
	hidden := b.Namespace("Cadl.Internal").Model("Secret")
	zoo := b.Namespace("Zoo")
	zoo.Model("Pet").
		Prop("id", b.Builtin("string"), dsl.Key()).
		Prop("tag", b.Builtin("string"), dsl.Key("tagId")).
		Prop("nick", b.Builtin("string"), dsl.References()).
		Prop("both", zoo.Model("Toy").Type(), dsl.Contains(), dsl.References()).
		Prop("secret", hidden.Type())
	b.Global().Model("Loose")

	a := zoo.Model("A")
	c := zoo.Model("C").Extends(a)
	a.Extends(c)

	prog := b.Build()
	diags := ValidateProgram(prog, apply(t, prog), nil)

	tests := []struct {
		code     annotation.Code
		count    int
		severity annotation.Severity
		path     string
	}{
		{UnrenderedDeclaration, 1, annotation.SeverityWarning, ".Loose"},
		{AmbiguousKey, 1, annotation.SeverityWarning, "Zoo.Pet"},
		{InvalidNavigation, 2, annotation.SeverityWarning, "Zoo.Pet.nick"},
		{DanglingReference, 1, annotation.SeverityWarning, "Zoo.Pet.secret"},
		{InheritanceCycle, 2, annotation.SeverityError, "Zoo.A"},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			got := diags.ByCode(tt.code)
			if len(got) != tt.count {
				t.Fatalf("expected %d %s diagnostics, got %d: %v", tt.count, tt.code, len(got), got)
			}
			if got[0].Severity != tt.severity {
				t.Errorf("expected severity %s, got %s", tt.severity, got[0].Severity)
			}
			if got[0].Site.Path != tt.path {
				t.Errorf("expected site %s, got %s", tt.path, got[0].Site.Path)
			}
		})
	}

	if !diags.HasErrors() {
		t.Error("an inheritance cycle must be an error")
	}
}

func TestValidateProgram_AmbiguousKeyNamesFirst(t *testing.T) {
	b := dsl.New()
	b.Namespace("Zoo").Model("Pet").
		Prop("first", b.Builtin("string"), dsl.Key()).
		Prop("second", b.Builtin("string"), dsl.Key())

	prog := b.Build()
	got := ValidateProgram(prog, apply(t, prog), nil).ByCode(AmbiguousKey)
	if len(got) != 1 {
		t.Fatalf("expected one ambiguous key diagnostic, got %v", got)
	}
	if want := `model has 2 key properties; "first" is used`; got[0].Message != want {
		t.Errorf("expected %q, got %q", want, got[0].Message)
	}
}

func TestValidateProgram_CustomExclusion(t *testing.T) {
	b := dsl.New()
	b.Namespace("Legacy").Model("Old").
		Prop("a", b.Builtin("string"), dsl.Key()).
		Prop("b", b.Builtin("string"), dsl.Key())

	prog := b.Build()
	ann := apply(t, prog)

	if diags := ValidateProgram(prog, ann, []string{"Legacy"}); len(diags) != 0 {
		t.Errorf("excluded namespaces must not be validated, got %v", diags)
	}
	if diags := ValidateProgram(prog, ann, []string{}); len(diags.ByCode(AmbiguousKey)) != 1 {
		t.Errorf("expected ambiguous key once nothing is excluded, got %v", diags)
	}
}
