/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"sort"

	"github.com/suparena/memstore/errors"
)

// Record is the instance type of entity sets declared in a descriptor rather
// than by a Go struct. Like struct instances, a Record is owned by the caller
// until it is handed to a DataSource and is not safe for concurrent mutation.
type Record struct {
	set    string
	values map[string]any
}

// NewRecord creates an empty record belonging to entity set set.
func NewRecord(set string) *Record {
	return &Record{set: set, values: make(map[string]any)}
}

// EntitySet returns the name of the set this record belongs to.
func (r *Record) EntitySet() string {
	return r.set
}

// Get returns the raw value stored under name.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Put stores a raw value without conversion. Use an accessor for typed writes.
func (r *Record) Put(name string, value any) {
	r.values[name] = value
}

// Names lists the populated value names in sorted order.
func (r *Record) Names() []string {
	names := make([]string, 0, len(r.values))
	for name := range r.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterRecords exposes a descriptor-declared entity type as setName.
func (r *Registry) RegisterRecords(setName, typeName string, properties []Property, navigations []Navigation) error {
	if typeName == "" {
		typeName = setName
	}
	es := &EntitySet{
		Name:     setName,
		TypeName: typeName,
		byName:   make(map[string]int),
		newFn:    func() any { return NewRecord(setName) },
	}

	for _, p := range properties {
		if _, ok := edmGoTypes[p.Type]; !ok {
			return errors.NewMetadataError(setName, p.Name, "unknown EDM type "+string(p.Type))
		}
		p.Field = ""
		if !es.addProperty(p) {
			return errors.NewMetadataError(setName, p.Name, "duplicate property")
		}
	}
	for _, n := range navigations {
		if n.Target == "" {
			return errors.NewMetadataError(setName, n.Name, "record navigation needs an explicit target")
		}
		if es.hasNavigation(n.Name) {
			return errors.NewMetadataError(setName, n.Name, "duplicate navigation")
		}
		n.Field = ""
		es.navigations = append(es.navigations, n)
	}
	if len(es.keys) == 0 {
		return errors.NewMetadataError(setName, "", "entity type declares no key")
	}
	return r.add(es)
}
