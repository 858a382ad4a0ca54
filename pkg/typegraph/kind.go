package typegraph

// Kind identifies the variant of a Type.
type Kind int

const (
	KindNamespace Kind = iota
	KindModel
	KindModelProperty
	KindEnum
	KindEnumMember
	KindInterface
	KindOperation
	KindUnion
	KindArray
	KindTuple
	KindTemplateParameter
	KindString
	KindNumber
	KindBoolean
	KindIntrinsic
)

var kindNames = [...]string{
	KindNamespace:         "Namespace",
	KindModel:             "Model",
	KindModelProperty:     "ModelProperty",
	KindEnum:              "Enum",
	KindEnumMember:        "EnumMember",
	KindInterface:         "Interface",
	KindOperation:         "Operation",
	KindUnion:             "Union",
	KindArray:             "Array",
	KindTuple:             "Tuple",
	KindTemplateParameter: "TemplateParameter",
	KindString:            "String",
	KindNumber:            "Number",
	KindBoolean:           "Boolean",
	KindIntrinsic:         "Intrinsic",
}

// String returns the variant tag, e.g. "Model".
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// ParseKind converts a variant tag back into a Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}
