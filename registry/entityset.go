/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
)

// Property describes a single declared value of an entity type.
type Property struct {
	// Name is the metadata name used in key maps and by the accessor (e.g. "ImageFormat").
	Name string
	// Field is the Go struct field backing the property; empty for record sets.
	Field string
	// Type is the declared value kind.
	Type EdmType
	// Key marks the property as part of the key descriptor.
	Key bool
}

// Navigation describes a field holding related entities of another set.
type Navigation struct {
	// Name is the metadata name of the navigation property.
	Name string
	// Field is the Go struct field backing the navigation; empty for record sets.
	Field string
	// Target is the related entity set name. For struct sets it may be
	// resolved lazily from the field's element type.
	Target string
	// Many is true for to-many (slice) navigations, false for to-one references.
	Many bool

	elem reflect.Type
}

// EntitySet is the metadata of one entity set and the entity type it exposes.
type EntitySet struct {
	Name     string
	TypeName string

	// GoType is the struct type for tag-described sets and nil for record sets.
	GoType reflect.Type

	keys        []string
	properties  []Property
	byName      map[string]int
	navigations []Navigation
	newFn       func() any
}

// KeyNames returns the ordered key descriptor.
func (es *EntitySet) KeyNames() []string {
	out := make([]string, len(es.keys))
	copy(out, es.keys)
	return out
}

// Properties returns all declared properties, keys included, in declaration order.
func (es *EntitySet) Properties() []Property {
	out := make([]Property, len(es.properties))
	copy(out, es.properties)
	return out
}

// Property looks a property up by metadata name.
func (es *EntitySet) Property(name string) (Property, bool) {
	i, ok := es.byName[name]
	if !ok {
		return Property{}, false
	}
	return es.properties[i], true
}

// Navigations returns the declared navigation properties.
func (es *EntitySet) Navigations() []Navigation {
	out := make([]Navigation, len(es.navigations))
	copy(out, es.navigations)
	return out
}

// IsGeneratableKey is true iff the type has exactly one key whose declared
// kind supports monotonic generation.
func (es *EntitySet) IsGeneratableKey() bool {
	if len(es.keys) != 1 {
		return false
	}
	p, _ := es.Property(es.keys[0])
	return p.Type.Generatable()
}

// IsRecord reports whether instances of this set are *Record values.
func (es *EntitySet) IsRecord() bool {
	return es.GoType == nil
}

// New returns a fresh, unpopulated instance of the set's entity type.
func (es *EntitySet) New() any {
	return es.newFn()
}

func (es *EntitySet) addProperty(p Property) bool {
	if _, dup := es.byName[p.Name]; dup {
		return false
	}
	es.byName[p.Name] = len(es.properties)
	es.properties = append(es.properties, p)
	if p.Key {
		es.keys = append(es.keys, p.Name)
	}
	return true
}

func (es *EntitySet) hasNavigation(name string) bool {
	for _, n := range es.navigations {
		if n.Name == name {
			return true
		}
	}
	return false
}
