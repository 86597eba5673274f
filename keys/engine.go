/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keys

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/suparena/memstore/accessor"
	"github.com/suparena/memstore/errors"
	"github.com/suparena/memstore/registry"
)

// Engine computes key tuples and owns one Counter per entity type.
type Engine struct {
	mu       sync.Mutex
	counters map[string]*Counter
}

// NewEngine creates an Engine with no counters; they are created on first use.
func NewEngine() *Engine {
	return &Engine{counters: make(map[string]*Counter)}
}

// Counter returns the counter of an entity type, creating it if needed.
func (e *Engine) Counter(typeName string) *Counter {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, ok := e.counters[typeName]
	if !ok {
		c = &Counter{}
		e.counters[typeName] = c
	}
	return c
}

// Extract reads the current key values of instance without assigning
// anything. missing lists the key names whose value is nil or zero.
func (e *Engine) Extract(set *registry.EntitySet, acc accessor.Accessor, instance any) (t Tuple, missing []string, err error) {
	names := set.KeyNames()
	values := make([]any, len(names))
	for i, name := range names {
		raw, err := acc.Get(instance, name)
		if err != nil {
			return Tuple{}, nil, err
		}
		v, err := acc.Coerce(name, raw)
		if err != nil {
			return Tuple{}, nil, err
		}
		if !usable(v) {
			missing = append(missing, name)
		}
		values[i] = v
	}
	return NewTuple(names, values), missing, nil
}

// ComputeOrAssign returns the key tuple of instance. A single generatable key
// without a usable value is assigned the next counter value, which is written
// back into the instance; generated reports whether that happened. Composite
// keys with missing components are returned as they are.
func (e *Engine) ComputeOrAssign(set *registry.EntitySet, acc accessor.Accessor, instance any) (Tuple, bool, error) {
	t, missing, err := e.Extract(set, acc, instance)
	if err != nil {
		return Tuple{}, false, err
	}
	if len(missing) == 0 || !set.IsGeneratableKey() {
		return t, false, nil
	}
	t, err = e.Regenerate(set, acc, instance)
	if err != nil {
		return Tuple{}, false, err
	}
	return t, true, nil
}

// Regenerate discards the current key of instance and assigns the next
// counter value of its type. Only single generatable keys can be regenerated.
func (e *Engine) Regenerate(set *registry.EntitySet, acc accessor.Accessor, instance any) (Tuple, error) {
	if !set.IsGeneratableKey() {
		return Tuple{}, errors.NewMetadataError(set.Name, "", "key is not generatable")
	}
	name := set.KeyNames()[0]
	next := e.Counter(set.TypeName).Next()
	if err := acc.Set(instance, name, next); err != nil {
		return Tuple{}, err
	}
	v, err := acc.Coerce(name, next)
	if err != nil {
		return Tuple{}, err
	}
	return NewTuple([]string{name}, []any{v}), nil
}

// FromMap builds a tuple from a caller-supplied key map, converting each
// value to the declared type of its key property. Every key must be present
// and no other names are accepted.
func (e *Engine) FromMap(set *registry.EntitySet, acc accessor.Accessor, keyMap map[string]any) (Tuple, error) {
	names := set.KeyNames()
	if len(keyMap) != len(names) {
		return Tuple{}, incompleteKey(set, names, keyMap)
	}
	values := make([]any, len(names))
	for i, name := range names {
		raw, ok := keyMap[name]
		if !ok {
			return Tuple{}, incompleteKey(set, names, keyMap)
		}
		v, err := acc.Coerce(name, raw)
		if err != nil {
			return Tuple{}, err
		}
		values[i] = v
	}
	return NewTuple(names, values), nil
}

func incompleteKey(set *registry.EntitySet, names []string, keyMap map[string]any) error {
	given := make([]string, 0, len(keyMap))
	for name := range keyMap {
		given = append(given, name)
	}
	sort.Strings(given)
	return errors.NewValidationError(set.Name, fmt.Sprintf("key map %v does not match key %v", given, names))
}

func usable(v any) bool {
	if v == nil {
		return false
	}
	return !reflect.ValueOf(v).IsZero()
}
