/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-openapi/strfmt"
)

// EdmType is the declared kind of a property value.
type EdmType string

const (
	EdmString   EdmType = "String"
	EdmBoolean  EdmType = "Boolean"
	EdmByte     EdmType = "Byte"
	EdmSByte    EdmType = "SByte"
	EdmInt16    EdmType = "Int16"
	EdmInt32    EdmType = "Int32"
	EdmInt64    EdmType = "Int64"
	EdmSingle   EdmType = "Single"
	EdmDouble   EdmType = "Double"
	EdmDateTime EdmType = "DateTime"
	EdmGuid     EdmType = "Guid"
	EdmBinary   EdmType = "Binary"
)

var edmGoTypes = map[EdmType]reflect.Type{
	EdmString:   reflect.TypeOf(""),
	EdmBoolean:  reflect.TypeOf(false),
	EdmByte:     reflect.TypeOf(uint8(0)),
	EdmSByte:    reflect.TypeOf(int8(0)),
	EdmInt16:    reflect.TypeOf(int16(0)),
	EdmInt32:    reflect.TypeOf(int32(0)),
	EdmInt64:    reflect.TypeOf(int64(0)),
	EdmSingle:   reflect.TypeOf(float32(0)),
	EdmDouble:   reflect.TypeOf(float64(0)),
	EdmDateTime: reflect.TypeOf(strfmt.DateTime{}),
	EdmGuid:     reflect.TypeOf(strfmt.UUID("")),
	EdmBinary:   reflect.TypeOf([]byte(nil)),
}

// ParseEdmType validates a type name from a descriptor.
func ParseEdmType(name string) (EdmType, error) {
	t := EdmType(name)
	if _, ok := edmGoTypes[t]; !ok {
		return "", fmt.Errorf("unknown EDM type %q", name)
	}
	return t, nil
}

// GoType returns the Go type record-backed properties of this kind are stored as.
func (t EdmType) GoType() reflect.Type {
	return edmGoTypes[t]
}

// Integer reports whether t is one of the integral kinds.
func (t EdmType) Integer() bool {
	switch t {
	case EdmByte, EdmSByte, EdmInt16, EdmInt32, EdmInt64:
		return true
	}
	return false
}

// Generatable reports whether a single key of this kind can be assigned from
// a monotonic counter. Strings receive the decimal form of the counter value.
// The 8-bit kinds are excluded: their range is exhausted after a few hundred
// creates.
func (t EdmType) Generatable() bool {
	switch t {
	case EdmString, EdmInt16, EdmInt32, EdmInt64:
		return true
	}
	return false
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	dateTimeType = reflect.TypeOf(strfmt.DateTime{})
	uuidType     = reflect.TypeOf(strfmt.UUID(""))
	bytesType    = reflect.TypeOf([]byte(nil))
)

// inferEdmType derives the declared kind from a struct field type.
func inferEdmType(t reflect.Type) (EdmType, bool) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t {
	case timeType, dateTimeType:
		return EdmDateTime, true
	case uuidType:
		return EdmGuid, true
	case bytesType:
		return EdmBinary, true
	}
	switch t.Kind() {
	case reflect.String:
		return EdmString, true
	case reflect.Bool:
		return EdmBoolean, true
	case reflect.Uint8:
		return EdmByte, true
	case reflect.Int8:
		return EdmSByte, true
	case reflect.Int16, reflect.Uint16:
		return EdmInt16, true
	case reflect.Int32, reflect.Uint32:
		return EdmInt32, true
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return EdmInt64, true
	case reflect.Float32:
		return EdmSingle, true
	case reflect.Float64:
		return EdmDouble, true
	}
	return "", false
}
