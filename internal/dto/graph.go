package dto

// Graph is the root of a serialized type graph document.
// Top-level declarations belong to the global namespace.
// It uses "mapstructure" tags so YAML and JSON share one decoding path.
type Graph struct {
	Body `mapstructure:",squash"`
}

// Body lists the declarations of a namespace, in document order.
type Body struct {
	Namespaces []Namespace `json:"namespaces,omitempty" mapstructure:"namespaces"`
	Models     []Model     `json:"models,omitempty" mapstructure:"models"`
	Enums      []Enum      `json:"enums,omitempty" mapstructure:"enums"`
	Interfaces []Interface `json:"interfaces,omitempty" mapstructure:"interfaces"`
	Operations []Operation `json:"operations,omitempty" mapstructure:"operations"`
	Unions     []Union     `json:"unions,omitempty" mapstructure:"unions"`
}

// Namespace is a named scope. Dotted names create nested namespaces.
type Namespace struct {
	Name string `json:"name" mapstructure:"name"`
	Body `mapstructure:",squash"`
}

// Model is a structured type.
type Model struct {
	Name       string     `json:"name" mapstructure:"name"`
	Extends    string     `json:"extends,omitempty" mapstructure:"extends"`
	Decorators []any      `json:"decorators,omitempty" mapstructure:"decorators"`
	Properties []Property `json:"properties,omitempty" mapstructure:"properties"`
}

// Property is a model member. Type uses the type reference grammar, e.g. "Toy[]".
type Property struct {
	Name       string `json:"name" mapstructure:"name"`
	Type       string `json:"type" mapstructure:"type"`
	Optional   bool   `json:"optional,omitempty" mapstructure:"optional"`
	Decorators []any  `json:"decorators,omitempty" mapstructure:"decorators"`
}

// Enum is a named set of members.
type Enum struct {
	Name       string       `json:"name" mapstructure:"name"`
	Decorators []any        `json:"decorators,omitempty" mapstructure:"decorators"`
	Members    []EnumMember `json:"members,omitempty" mapstructure:"members"`
}

// EnumMember has an optional string or numeric value.
type EnumMember struct {
	Name  string `json:"name" mapstructure:"name"`
	Value any    `json:"value,omitempty" mapstructure:"value"`
}

// Interface groups operations.
type Interface struct {
	Name       string      `json:"name" mapstructure:"name"`
	Decorators []any       `json:"decorators,omitempty" mapstructure:"decorators"`
	Operations []Operation `json:"operations,omitempty" mapstructure:"operations"`
}

// Operation has parameters and a return type.
type Operation struct {
	Name       string     `json:"name" mapstructure:"name"`
	Parameters []Property `json:"parameters,omitempty" mapstructure:"parameters"`
	Returns    string     `json:"returns,omitempty" mapstructure:"returns"`
	Decorators []any      `json:"decorators,omitempty" mapstructure:"decorators"`
}

// Union is a named set of option types.
type Union struct {
	Name       string   `json:"name" mapstructure:"name"`
	Options    []string `json:"options" mapstructure:"options"`
	Decorators []any    `json:"decorators,omitempty" mapstructure:"decorators"`
}

// Decorator is the long form of a decorator entry. The short form is a bare name string.
type Decorator struct {
	Name string `json:"name" mapstructure:"name"`
	Args []any  `json:"args,omitempty" mapstructure:"args"`
}
