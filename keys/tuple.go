/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keys

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
)

// Tuple is the ordered list of key values identifying one entity, aligned
// with the key descriptor of its entity set.
type Tuple struct {
	names  []string
	values []any
}

// NewTuple pairs names with values. Both slices must have the same length.
// Date-time values are stored in UTC without a monotonic clock reading and
// negative zero is stored as zero.
func NewTuple(names []string, values []any) Tuple {
	if len(names) != len(values) {
		panic(fmt.Sprintf("keys: %d names for %d values", len(names), len(values)))
	}
	canon := make([]any, len(values))
	for i, v := range values {
		canon[i] = canonical(v)
	}
	return Tuple{names: names, values: canon}
}

// Len returns the number of key components.
func (t Tuple) Len() int {
	return len(t.values)
}

// Names returns the key names in descriptor order.
func (t Tuple) Names() []string {
	return append([]string(nil), t.names...)
}

// Values returns the key values in descriptor order.
func (t Tuple) Values() []any {
	return append([]any(nil), t.values...)
}

// Value returns the component named name.
func (t Tuple) Value(name string) (any, bool) {
	for i, n := range t.names {
		if n == name {
			return t.values[i], true
		}
	}
	return nil, false
}

// Map returns the tuple as a key map, the shape ReadData accepts.
func (t Tuple) Map() map[string]any {
	m := make(map[string]any, len(t.names))
	for i, n := range t.names {
		m[n] = t.values[i]
	}
	return m
}

// Equal reports whether both tuples hold the same values in the same order.
func (t Tuple) Equal(other Tuple) bool {
	if len(t.values) != len(other.values) {
		return false
	}
	for i := range t.values {
		if t.names[i] != other.names[i] || !valueEqual(t.values[i], other.values[i]) {
			return false
		}
	}
	return true
}

// Encode returns a string that is identical for equal tuples and distinct
// otherwise. It is used as the map key of a collection.
func (t Tuple) Encode() string {
	var b strings.Builder
	for i, v := range t.values {
		if i > 0 {
			b.WriteByte('|')
		}
		fmt.Fprintf(&b, "%T(%s)", v, strconv.Quote(format(v)))
	}
	return b.String()
}

// String renders the tuple as Name=value pairs for messages and logs.
func (t Tuple) String() string {
	parts := make([]string, len(t.values))
	for i, v := range t.values {
		parts[i] = t.names[i] + "=" + format(v)
	}
	return strings.Join(parts, ",")
}

func canonical(v any) any {
	switch x := v.(type) {
	case time.Time:
		return x.Round(0).UTC()
	case strfmt.DateTime:
		return strfmt.DateTime(time.Time(x).Round(0).UTC())
	case float64:
		if x == 0 {
			return float64(0)
		}
	case float32:
		if x == 0 {
			return float32(0)
		}
	}
	return v
}

// format is the exact textual form of a canonical key value. Date-times keep
// full nanosecond precision and all NaNs share one form.
func format(v any) string {
	switch x := v.(type) {
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case strfmt.DateTime:
		return time.Time(x).Format(time.RFC3339Nano)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	}
	return fmt.Sprint(v)
}

// valueEqual agrees with Encode: date-times compare as instants and NaN
// equals NaN.
func valueEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	switch x := a.(type) {
	case time.Time:
		return x.Equal(b.(time.Time))
	case strfmt.DateTime:
		return time.Time(x).Equal(time.Time(b.(strfmt.DateTime)))
	case float64:
		y := b.(float64)
		return x == y || (math.IsNaN(x) && math.IsNaN(y))
	case float32:
		y := b.(float32)
		return x == y || (math.IsNaN(float64(x)) && math.IsNaN(float64(y)))
	}
	if ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
