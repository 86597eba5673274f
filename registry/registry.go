/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/suparena/memstore/errors"
)

// Registry holds the entity set metadata a DataSource resolves names against.
// It is safe for concurrent use; populate it during initialization.
type Registry struct {
	mu     sync.RWMutex
	sets   map[string]*EntitySet
	types  map[string]string // entity type name -> set name
	goSets map[reflect.Type]string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		sets:   make(map[string]*EntitySet),
		types:  make(map[string]string),
		goSets: make(map[reflect.Type]string),
	}
}

// Register describes struct type T from its edm tags and exposes it as setName.
func Register[T any](r *Registry, setName string) error {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return errors.NewMetadataError(setName, "", "entity type must be a concrete struct")
	}

	es, err := describeStruct(setName, t)
	if err != nil {
		return errors.NewMetadataError(setName, "", err.Error())
	}
	return r.add(es)
}

// MustRegister is like Register but panics on error. Intended for init() wiring.
func MustRegister[T any](r *Registry, setName string) {
	if err := Register[T](r, setName); err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}
}

func (r *Registry) add(es *EntitySet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sets[es.Name]; exists {
		return errors.NewMetadataError(es.Name, "", "entity set already registered")
	}
	if other, exists := r.types[es.TypeName]; exists {
		return errors.NewMetadataError(es.Name, "", fmt.Sprintf("entity type %s already exposed as %s", es.TypeName, other))
	}

	r.sets[es.Name] = es
	r.types[es.TypeName] = es.Name
	if es.GoType != nil {
		r.goSets[es.GoType] = es.Name
	}
	return nil
}

// EntitySet returns the metadata registered under name.
func (r *Registry) EntitySet(name string) (*EntitySet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	es, ok := r.sets[name]
	if !ok {
		return nil, errors.NewMetadataError(name, "", "entity set not registered")
	}
	return es, nil
}

// EntitySetNames lists all registered set names in sorted order.
func (r *Registry) EntitySetNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.sets))
	for name := range r.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NavigationFor returns the field on sourceSet's type that holds entities of targetSet.
func (r *Registry) NavigationFor(sourceSet, targetSet string) (Navigation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	source, ok := r.sets[sourceSet]
	if !ok {
		return Navigation{}, errors.NewMetadataError(sourceSet, "", "entity set not registered")
	}
	target, ok := r.sets[targetSet]
	if !ok {
		return Navigation{}, errors.NewMetadataError(targetSet, "", "entity set not registered")
	}

	for _, nav := range source.navigations {
		if nav.Target != "" {
			if nav.Target == targetSet {
				return nav, nil
			}
			continue
		}
		if target.GoType != nil && r.goSets[derefType(nav.elem)] == targetSet {
			nav.Target = targetSet
			return nav, nil
		}
	}
	return Navigation{}, errors.NewMetadataError(sourceSet, "", fmt.Sprintf("no navigation to %s", targetSet))
}

// NewDataObject returns a fresh instance of the set's entity type.
func (r *Registry) NewDataObject(setName string) (any, error) {
	es, err := r.EntitySet(setName)
	if err != nil {
		return nil, err
	}
	return es.New(), nil
}

func derefType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
