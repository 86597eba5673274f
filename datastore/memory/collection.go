/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package memory provides the map-backed implementation of datastore.Collection.
package memory

import (
	"context"
	"sync"

	"github.com/suparena/memstore/datastore"
	"github.com/suparena/memstore/errors"
	"github.com/suparena/memstore/keys"
)

type slot struct {
	key    keys.Tuple
	entity any
}

// Collection is a datastore.Collection held in process memory. Entities are
// stored by reference and never copied.
type Collection struct {
	typeName string

	mu    sync.RWMutex
	data  map[string]*slot
	order []string
}

var _ datastore.Collection = (*Collection)(nil)

// New creates an empty collection for entities of typeName.
func New(typeName string) *Collection {
	return &Collection{
		typeName: typeName,
		data:     make(map[string]*slot),
	}
}

// TypeName returns the entity type this collection stores.
func (c *Collection) TypeName() string {
	return c.typeName
}

// Get retrieves an entity by key
func (c *Collection) Get(ctx context.Context, key keys.Tuple) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	if s, exists := c.data[key.Encode()]; exists {
		return s.entity, nil
	}
	return nil, errors.NewNotFoundError(c.typeName, key.String())
}

// Claim stores entity if key is free
func (c *Collection) Claim(ctx context.Context, key keys.Tuple, entity any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	enc := key.Encode()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.data[enc]; exists {
		return errors.NewAlreadyExistsError(c.typeName, key.String())
	}
	c.data[enc] = &slot{key: key, entity: entity}
	c.order = append(c.order, enc)
	return nil
}

// Replace overwrites the entity stored under key
func (c *Collection) Replace(ctx context.Context, key keys.Tuple, entity any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	s, exists := c.data[key.Encode()]
	if !exists {
		return errors.NewTargetMissingError(c.typeName, key.String())
	}
	s.entity = entity
	return nil
}

// All returns a snapshot of every entry in insertion order.
func (c *Collection) All(ctx context.Context) ([]datastore.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := make([]datastore.Entry, 0, len(c.order))
	for _, enc := range c.order {
		s := c.data[enc]
		entries = append(entries, datastore.Entry{Key: s.key, Entity: s.entity})
	}
	return entries, nil
}

// Count returns the number of stored entities
func (c *Collection) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
