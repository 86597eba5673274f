/*
Package accessor provides reflection-driven get/set of named entity properties.

An Accessor is built once per entity set from registry metadata and maps
metadata names (e.g. "ImageFormat") to struct fields (e.g. Photo.Type) or to
*registry.Record values. Writes convert the supplied value to the declared
type, so key maps may use "42" for an integer key or 3 for a string key.
*/
package accessor
