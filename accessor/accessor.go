/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package accessor

import (
	"reflect"

	"github.com/suparena/memstore/errors"
	"github.com/suparena/memstore/registry"
)

// Accessor reads and writes named properties of entity instances of one
// entity set. Implementations are built once per set from its metadata.
type Accessor interface {
	// Get returns the current value of a property or navigation.
	Get(instance any, name string) (any, error)

	// Set writes value to a property, converting it to the declared type.
	Set(instance any, name string, value any) error

	// Coerce converts value to the declared type of a property and
	// dereferences pointers, producing the form used in key tuples.
	Coerce(name string, value any) (any, error)

	// Attach links target through a navigation: a to-one navigation is
	// overwritten, a to-many navigation has target appended.
	Attach(instance any, navigation string, target any) error

	// Check verifies that instance has the shape this accessor was built for.
	Check(instance any) error
}

// For builds the accessor table for an entity set.
func For(set *registry.EntitySet) (Accessor, error) {
	if set.IsRecord() {
		return newRecordAccessor(set), nil
	}
	return newStructAccessor(set)
}

// normalize dereferences pointer values so that key tuples compare the
// pointed-to values rather than addresses.
func normalize(v reflect.Value) any {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	return v.Interface()
}

func unknownProperty(set *registry.EntitySet, name string) error {
	return errors.NewMetadataError(set.Name, name, "unknown property")
}

func conversionFailed(set *registry.EntitySet, name string, err error) error {
	return errors.NewValidationError(set.Name+"."+name, err.Error())
}
