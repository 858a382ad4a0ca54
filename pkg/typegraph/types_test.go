package typegraph

import "testing"

func TestMap_PreservesInsertionOrder(t *testing.T) {
	m := NewMap[int]()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("c", 3)
	m.Set("b", 4) // replace keeps position

	want := []string{"b", "a", "c"}
	got := m.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if v, _ := m.Get("b"); v != 4 {
		t.Errorf("Get(b) = %d, want 4", v)
	}

	var seen []int
	for _, v := range m.All() {
		seen = append(seen, v)
	}
	if len(seen) != 3 || seen[0] != 4 || seen[2] != 3 {
		t.Errorf("All() = %v", seen)
	}
}

func TestMap_ZeroValue(t *testing.T) {
	var m Map[string]
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
	if _, ok := m.Get("x"); ok {
		t.Error("Get on zero map should miss")
	}
	m.Set("x", "y")
	if v, ok := m.Get("x"); !ok || v != "y" {
		t.Errorf("Get(x) = %q, %v", v, ok)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindNamespace, "Namespace"},
		{KindModelProperty, "ModelProperty"},
		{KindTemplateParameter, "TemplateParameter"},
		{KindIntrinsic, "Intrinsic"},
		{Kind(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}

	if k, ok := ParseKind("Model"); !ok || k != KindModel {
		t.Errorf("ParseKind(Model) = %v, %v", k, ok)
	}
	if _, ok := ParseKind("Nope"); ok {
		t.Error("ParseKind(Nope) should fail")
	}
}

func TestNamespace_Ownership(t *testing.T) {
	global := NewNamespace("")
	zoo := global.Namespace("Zoo")
	if zoo.Parent != global {
		t.Fatal("child namespace should point to its parent")
	}
	if again := global.Namespace("Zoo"); again != zoo {
		t.Error("Namespace() should return the existing child")
	}

	pet := zoo.AddModel(NewModel("Pet"))
	name := pet.AddProperty(&Property{Name: "name"})
	if pet.Namespace != zoo || name.Model != pet {
		t.Error("owner pointers not set")
	}

	iface := zoo.AddInterface(NewInterface("Pets"))
	op := iface.AddOperation(&Operation{Name: "Get"})
	if op.Interface != iface || op.Namespace != zoo {
		t.Error("operation should inherit the interface namespace")
	}

	color := zoo.AddEnum(&Enum{Name: "Color"})
	red := color.AddMember("Red", "red")
	if red.Enum != color || len(color.Members) != 1 {
		t.Error("enum member ownership not set")
	}
}

func TestNamespace_HasDeclarations(t *testing.T) {
	ns := NewNamespace("Empty")
	if ns.HasDeclarations() {
		t.Error("empty namespace should have no declarations")
	}

	ns.AddUnion(&Union{Name: "U"})
	if ns.HasDeclarations() {
		t.Error("unions alone do not count as declarations")
	}

	ns.AddOperation(&Operation{Name: "ping"})
	if !ns.HasDeclarations() {
		t.Error("operation should count as a declaration")
	}
}

func TestProgram_Declare(t *testing.T) {
	p := NewProgram()
	m := p.Global.Namespace("Zoo").AddModel(NewModel("Pet"))
	p.Declare("openModel", m, Site{File: "zoo.yaml", Path: "Zoo.Pet"})

	if len(p.Declarations) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(p.Declarations))
	}
	d := p.Declarations[0]
	if d.Target != m || d.Name != "openModel" {
		t.Errorf("unexpected declaration %+v", d)
	}
	if d.Site.String() != "zoo.yaml:Zoo.Pet" {
		t.Errorf("Site.String() = %q", d.Site.String())
	}
}
