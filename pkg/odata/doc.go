// Package odata declares the conventional CSDL annotation kinds and the decorators
// that set them.
//
// Register declares the kinds on a store and returns typed handles; Decorators binds
// them to the declaration names used in graph documents:
//
//	@id(altName?)   ModelProperty  marks the entity key, alias defaults to the property name
//	@openModel      Model          the type accepts undeclared properties
//	@contains       ModelProperty  containment navigation
//	@references     ModelProperty  reference navigation
//	@route(path)    Interface, Operation  resource path used for entity container hints
package odata
