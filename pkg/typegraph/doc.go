/*
Package typegraph contains the resolved type graph consumed by the CSDL renderer.

The graph is produced by an upstream checker (or by the dsl and compiler packages in this
module) and is treated as an immutable snapshot once rendering starts. Containment is
tree-shaped: every property, operation and enum member has exactly one owner. Only references
between named types may form cycles.

# Key Entities

  - Namespace: a node in the namespace tree holding models, enums, interfaces, operations and unions.
  - Model: a named (or anonymous) structured type with ordered properties and an optional base model.
  - Enum, Interface, Operation, Union: the remaining declaration kinds.
  - Array, Tuple, TemplateParameter, literals and Intrinsic: reference-only type expressions.
  - Program: the global namespace plus the declarations that attach annotations to nodes.

Node identity is pointer identity. Two structurally identical models are never conflated.
*/
package typegraph
