/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package accessor

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/go-openapi/strfmt"
)

var (
	dateTimeType = reflect.TypeOf(strfmt.DateTime{})
	timeType     = reflect.TypeOf(time.Time{})
	uuidType     = reflect.TypeOf(strfmt.UUID(""))
)

// Convert coerces value into a reflect.Value of type t. It covers the
// conversions key maps need: numbers to numeric strings and back, date-time
// strings to strfmt.DateTime, and pointer wrapping or unwrapping.
func Convert(value any, t reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(t), nil
	}

	if t.Kind() == reflect.Pointer {
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return reflect.Zero(t), nil
		}
		if rv.Type() == t {
			return rv, nil
		}
		elem, err := Convert(value, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(elem)
		return ptr, nil
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Zero(t), nil
		}
		rv = rv.Elem()
	}
	if rv.Type() == t {
		return rv, nil
	}

	switch t {
	case dateTimeType:
		return toDateTime(rv)
	case timeType:
		dt, err := toDateTime(rv)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(time.Time(dt.Interface().(strfmt.DateTime))), nil
	case uuidType:
		if rv.Kind() != reflect.String || !strfmt.IsUUID(rv.String()) {
			return reflect.Value{}, fmt.Errorf("cannot convert %v to a UUID", value)
		}
		return reflect.ValueOf(strfmt.UUID(rv.String())), nil
	}

	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		s, err := toString(rv)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetString(s)
		return out, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := toInt(rv)
		if err != nil {
			return reflect.Value{}, err
		}
		if out.OverflowInt(n) {
			return reflect.Value{}, fmt.Errorf("value %d overflows %s", n, t)
		}
		out.SetInt(n)
		return out, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := toInt(rv)
		if err != nil {
			return reflect.Value{}, err
		}
		if n < 0 || out.OverflowUint(uint64(n)) {
			return reflect.Value{}, fmt.Errorf("value %d overflows %s", n, t)
		}
		out.SetUint(uint64(n))
		return out, nil

	case reflect.Float32, reflect.Float64:
		f, err := toFloat(rv)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetFloat(f)
		return out, nil

	case reflect.Bool:
		switch rv.Kind() {
		case reflect.Bool:
			out.SetBool(rv.Bool())
			return out, nil
		case reflect.String:
			b, err := strconv.ParseBool(rv.String())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("cannot convert %q to bool: %w", rv.String(), err)
			}
			out.SetBool(b)
			return out, nil
		}
	}

	if rv.Type().ConvertibleTo(t) && rv.Kind() == t.Kind() {
		return rv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot convert %T to %s", value, t)
}

func toString(rv reflect.Value) (string, error) {
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, rv.Type().Bits()), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	}
	if s, ok := rv.Interface().(fmt.Stringer); ok {
		return s.String(), nil
	}
	return "", fmt.Errorf("cannot convert %s to string", rv.Type())
}

func toInt(rv reflect.Value) (int64, error) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > 1<<63-1 {
			return 0, fmt.Errorf("value %d overflows int64", u)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != float64(int64(f)) {
			return 0, fmt.Errorf("value %v is not integral", f)
		}
		return int64(f), nil
	case reflect.String:
		n, err := strconv.ParseInt(rv.String(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to integer: %w", rv.String(), err)
		}
		return n, nil
	}
	return 0, fmt.Errorf("cannot convert %s to integer", rv.Type())
}

func toFloat(rv reflect.Value) (float64, error) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.String:
		f, err := strconv.ParseFloat(rv.String(), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to float: %w", rv.String(), err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("cannot convert %s to float", rv.Type())
}

func toDateTime(rv reflect.Value) (reflect.Value, error) {
	switch v := rv.Interface().(type) {
	case strfmt.DateTime:
		return reflect.ValueOf(v), nil
	case time.Time:
		return reflect.ValueOf(strfmt.DateTime(v)), nil
	case string:
		dt, err := strfmt.ParseDateTime(v)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("cannot convert %q to date-time: %w", v, err)
		}
		return reflect.ValueOf(dt), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot convert %s to date-time", rv.Type())
}
