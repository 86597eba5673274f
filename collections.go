/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memstore

import (
	"sync"

	"github.com/suparena/memstore/accessor"
	"github.com/suparena/memstore/datastore"
	"github.com/suparena/memstore/registry"
)

// handle bundles what every operation on one entity set needs.
type handle struct {
	set  *registry.EntitySet
	acc  accessor.Accessor
	coll datastore.Collection
}

// collectionManager lazily creates one handle per entity type. Handles are
// never evicted.
type collectionManager struct {
	reg           *registry.Registry
	newCollection func(typeName string) datastore.Collection

	mu      sync.RWMutex
	handles map[string]*handle // entity type name -> handle
}

func newCollectionManager(reg *registry.Registry, newCollection func(string) datastore.Collection) *collectionManager {
	return &collectionManager{
		reg:           reg,
		newCollection: newCollection,
		handles:       make(map[string]*handle),
	}
}

// get resolves setName against the registry and returns its handle,
// creating the accessor and collection on first use.
func (cm *collectionManager) get(setName string) (*handle, error) {
	es, err := cm.reg.EntitySet(setName)
	if err != nil {
		return nil, err
	}

	cm.mu.RLock()
	h, exists := cm.handles[es.TypeName]
	cm.mu.RUnlock()
	if exists {
		return h, nil
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()

	if h, exists := cm.handles[es.TypeName]; exists {
		return h, nil
	}
	acc, err := accessor.For(es)
	if err != nil {
		return nil, err
	}
	h = &handle{set: es, acc: acc, coll: cm.newCollection(es.TypeName)}
	cm.handles[es.TypeName] = h
	return h, nil
}

// peek returns the handle of setName only if it was already created.
func (cm *collectionManager) peek(setName string) (*handle, bool) {
	es, err := cm.reg.EntitySet(setName)
	if err != nil {
		return nil, false
	}
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	h, exists := cm.handles[es.TypeName]
	return h, exists
}
