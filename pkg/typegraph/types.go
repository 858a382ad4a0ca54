package typegraph

// Type is a node of the resolved type graph.
// The set of implementations is closed; see Kind for the variant tags.
type Type interface {
	Kind() Kind
	typeNode()
}

// Namespace groups declarations. The global namespace has an empty name.
type Namespace struct {
	Name       string
	Parent     *Namespace
	Namespaces *Map[*Namespace]
	Models     *Map[*Model]
	Enums      *Map[*Enum]
	Interfaces *Map[*Interface]
	Operations *Map[*Operation]
	Unions     *Map[*Union]
}

// NewNamespace creates a detached namespace. Use it for the global namespace.
func NewNamespace(name string) *Namespace {
	return &Namespace{
		Name:       name,
		Namespaces: NewMap[*Namespace](),
		Models:     NewMap[*Model](),
		Enums:      NewMap[*Enum](),
		Interfaces: NewMap[*Interface](),
		Operations: NewMap[*Operation](),
		Unions:     NewMap[*Union](),
	}
}

func (*Namespace) Kind() Kind { return KindNamespace }
func (*Namespace) typeNode()  {}

// Namespace returns the child namespace with the given name, creating it if needed.
func (ns *Namespace) Namespace(name string) *Namespace {
	if child, ok := ns.Namespaces.Get(name); ok {
		return child
	}
	child := NewNamespace(name)
	child.Parent = ns
	ns.Namespaces.Set(name, child)
	return child
}

// AddModel attaches m to the namespace and returns it.
func (ns *Namespace) AddModel(m *Model) *Model {
	m.Namespace = ns
	ns.Models.Set(m.Name, m)
	return m
}

// AddEnum attaches e to the namespace and returns it.
func (ns *Namespace) AddEnum(e *Enum) *Enum {
	e.Namespace = ns
	ns.Enums.Set(e.Name, e)
	return e
}

// AddInterface attaches i to the namespace and returns it.
func (ns *Namespace) AddInterface(i *Interface) *Interface {
	i.Namespace = ns
	ns.Interfaces.Set(i.Name, i)
	return i
}

// AddOperation attaches a namespace-level operation and returns it.
func (ns *Namespace) AddOperation(op *Operation) *Operation {
	op.Namespace = ns
	ns.Operations.Set(op.Name, op)
	return op
}

// AddUnion attaches a named union and returns it.
func (ns *Namespace) AddUnion(u *Union) *Union {
	u.Namespace = ns
	ns.Unions.Set(u.Name, u)
	return u
}

// HasDeclarations reports whether the namespace directly holds an enum, model,
// interface or operation. Unions and child namespaces do not count.
func (ns *Namespace) HasDeclarations() bool {
	return ns.Enums.Len() > 0 || ns.Models.Len() > 0 ||
		ns.Interfaces.Len() > 0 || ns.Operations.Len() > 0
}

// Model is a structured type. A model without a name is anonymous and rendered inline.
type Model struct {
	Name       string
	Namespace  *Namespace
	BaseModel  *Model
	Properties *Map[*Property]
}

// NewModel creates a detached model.
func NewModel(name string) *Model {
	return &Model{Name: name, Properties: NewMap[*Property]()}
}

func (*Model) Kind() Kind { return KindModel }
func (*Model) typeNode()  {}

// AddProperty attaches p to the model and returns it.
func (m *Model) AddProperty(p *Property) *Property {
	p.Model = m
	m.Properties.Set(p.Name, p)
	return p
}

// Property is a member of a model.
type Property struct {
	Name     string
	Type     Type
	Optional bool
	Model    *Model
}

func (*Property) Kind() Kind { return KindModelProperty }
func (*Property) typeNode()  {}

// Enum is a named set of members.
type Enum struct {
	Name      string
	Namespace *Namespace
	Members   []*EnumMember
}

func (*Enum) Kind() Kind { return KindEnum }
func (*Enum) typeNode()  {}

// AddMember appends a member. value must be nil, a string or a float64.
func (e *Enum) AddMember(name string, value any) *EnumMember {
	m := &EnumMember{Name: name, Value: value, Enum: e}
	e.Members = append(e.Members, m)
	return m
}

// EnumMember is a single enum entry with an optional literal value.
type EnumMember struct {
	Name  string
	Value any
	Enum  *Enum
}

func (*EnumMember) Kind() Kind { return KindEnumMember }
func (*EnumMember) typeNode()  {}

// Interface groups operations.
type Interface struct {
	Name       string
	Namespace  *Namespace
	Operations *Map[*Operation]
}

// NewInterface creates a detached interface.
func NewInterface(name string) *Interface {
	return &Interface{Name: name, Operations: NewMap[*Operation]()}
}

func (*Interface) Kind() Kind { return KindInterface }
func (*Interface) typeNode()  {}

// AddOperation attaches op to the interface. The operation shares the interface namespace.
func (i *Interface) AddOperation(op *Operation) *Operation {
	op.Interface = i
	op.Namespace = i.Namespace
	i.Operations.Set(op.Name, op)
	return op
}

// Operation has an anonymous parameter model and a return type.
type Operation struct {
	Name       string
	Namespace  *Namespace
	Interface  *Interface
	Parameters *Model
	ReturnType Type
}

func (*Operation) Kind() Kind { return KindOperation }
func (*Operation) typeNode()  {}

// Union is an ordered set of option types. Name is empty for inline unions.
type Union struct {
	Name      string
	Namespace *Namespace
	Options   []Type
}

func (*Union) Kind() Kind { return KindUnion }
func (*Union) typeNode()  {}

// Array is a collection of ElementType.
type Array struct {
	ElementType Type
}

func (*Array) Kind() Kind { return KindArray }
func (*Array) typeNode()  {}

// Tuple is a fixed sequence of types.
type Tuple struct {
	Values []Type
}

func (*Tuple) Kind() Kind { return KindTuple }
func (*Tuple) typeNode()  {}

// TemplateParameter is an unbound template parameter referenced by name.
type TemplateParameter struct {
	Name string
}

func (*TemplateParameter) Kind() Kind { return KindTemplateParameter }
func (*TemplateParameter) typeNode()  {}

// StringLiteral is a string literal type.
type StringLiteral struct {
	Value string
}

func (*StringLiteral) Kind() Kind { return KindString }
func (*StringLiteral) typeNode()  {}

// NumberLiteral is a numeric literal type.
type NumberLiteral struct {
	Value float64
}

func (*NumberLiteral) Kind() Kind { return KindNumber }
func (*NumberLiteral) typeNode()  {}

// BooleanLiteral is a boolean literal type.
type BooleanLiteral struct {
	Value bool
}

func (*BooleanLiteral) Kind() Kind { return KindBoolean }
func (*BooleanLiteral) typeNode()  {}

// Intrinsic covers opaque built-ins such as void, never, unknown and null.
type Intrinsic struct {
	Name string
}

func (*Intrinsic) Kind() Kind { return KindIntrinsic }
func (*Intrinsic) typeNode()  {}

var (
	_ Type = (*Namespace)(nil)
	_ Type = (*Model)(nil)
	_ Type = (*Property)(nil)
	_ Type = (*Enum)(nil)
	_ Type = (*EnumMember)(nil)
	_ Type = (*Interface)(nil)
	_ Type = (*Operation)(nil)
	_ Type = (*Union)(nil)
	_ Type = (*Array)(nil)
	_ Type = (*Tuple)(nil)
	_ Type = (*TemplateParameter)(nil)
	_ Type = (*StringLiteral)(nil)
	_ Type = (*NumberLiteral)(nil)
	_ Type = (*BooleanLiteral)(nil)
	_ Type = (*Intrinsic)(nil)
)
