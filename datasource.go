/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memstore

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/suparena/memstore/datastore"
	"github.com/suparena/memstore/errors"
	"github.com/suparena/memstore/keys"
	"github.com/suparena/memstore/registry"
	"github.com/suparena/memstore/storagemodels"
)

// DataSource is an in-memory entity store. Entities are addressed by entity
// set name and key tuple; the store keeps the caller's instances by
// reference. A DataSource is safe for concurrent use, but callers must not
// mutate an instance while another goroutine reads it.
type DataSource struct {
	reg         *registry.Registry
	keys        *keys.Engine
	collections *collectionManager
	logger      *Logger
}

// New creates a DataSource resolving entity sets against reg.
func New(reg *registry.Registry, opts ...Option) *DataSource {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &DataSource{
		reg:         reg,
		keys:        o.keyEngine,
		collections: newCollectionManager(reg, o.newCollection),
		logger:      o.logger,
	}
}

// Registry returns the metadata registry the data source resolves against.
func (ds *DataSource) Registry() *registry.Registry {
	return ds.reg
}

// CreateData stores instance in set. A missing single generatable key is
// assigned from the type's counter. When the key is already taken, a
// generatable key is regenerated until a free value is claimed; any other
// key is rejected with an AlreadyExistsError.
func (ds *DataSource) CreateData(ctx context.Context, set string, instance any) error {
	h, err := ds.collections.get(set)
	if err != nil {
		return err
	}
	if err := h.acc.Check(instance); err != nil {
		return err
	}

	key, generated, err := ds.keys.ComputeOrAssign(h.set, h.acc, instance)
	if err != nil {
		return err
	}
	for {
		err = h.coll.Claim(ctx, key, instance)
		if err == nil {
			ds.logger.LogCreate(ctx, set, key, generated, nil)
			return nil
		}
		if !errors.IsAlreadyExists(err) || !h.set.IsGeneratableKey() {
			ds.logger.LogCreate(ctx, set, key, generated, err)
			return err
		}

		taken := key
		key, err = ds.keys.Regenerate(h.set, h.acc, instance)
		if err != nil {
			ds.logger.LogCreate(ctx, set, taken, generated, err)
			return err
		}
		generated = true
		ds.logger.LogCollision(ctx, set, taken, key)
	}
}

// ReadData returns the entity of set whose key matches keyMap. Values in
// keyMap are converted to the declared key types, so {"Id": 3} finds an
// entity whose string key is "3".
func (ds *DataSource) ReadData(ctx context.Context, set string, keyMap map[string]any) (any, error) {
	h, err := ds.collections.get(set)
	if err != nil {
		return nil, err
	}
	key, err := ds.keys.FromMap(h.set, h.acc, keyMap)
	if err != nil {
		return nil, err
	}
	return h.coll.Get(ctx, key)
}

// ReadAll returns every entity of set in insertion order.
func (ds *DataSource) ReadAll(ctx context.Context, set string) ([]any, error) {
	h, err := ds.collections.get(set)
	if err != nil {
		return nil, err
	}
	entries, err := h.coll.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(entries))
	for i, e := range entries {
		out[i] = e.Entity
	}
	return out, nil
}

// UpdateData replaces the stored entity that has the same key as instance.
// Keys are never generated here; an unknown key yields a TargetMissingError.
func (ds *DataSource) UpdateData(ctx context.Context, set string, instance any) error {
	h, err := ds.collections.get(set)
	if err != nil {
		return err
	}
	if err := h.acc.Check(instance); err != nil {
		return err
	}

	key, _, err := ds.keys.Extract(h.set, h.acc, instance)
	if err != nil {
		return err
	}
	err = h.coll.Replace(ctx, key, instance)
	ds.logger.LogUpdate(ctx, set, key, err)
	return err
}

// ReadRelatedData follows the navigation from source to targetSet.
//
// With an empty targetKeyMap the attached value is returned as stored: the
// slice of a to-many navigation or the reference of a to-one navigation. A
// non-empty targetKeyMap selects the single member of a to-many navigation
// whose key matches. Filtering a to-one navigation is a ValidationError, and
// an unset to-one reference is a NotFoundError.
func (ds *DataSource) ReadRelatedData(ctx context.Context, sourceSet string, source any, targetSet string, targetKeyMap map[string]any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src, err := ds.collections.get(sourceSet)
	if err != nil {
		return nil, err
	}
	if err := src.acc.Check(source); err != nil {
		return nil, err
	}
	nav, err := ds.reg.NavigationFor(sourceSet, targetSet)
	if err != nil {
		return nil, err
	}
	value, err := src.acc.Get(source, nav.Name)
	if err != nil {
		return nil, err
	}

	if !nav.Many {
		if len(targetKeyMap) > 0 {
			return nil, errors.NewValidationError(sourceSet+"."+nav.Name, "to-one navigation cannot be filtered by key")
		}
		if isNil(value) {
			return nil, errors.NewNotFoundError(targetSet, sourceSet+"."+nav.Name)
		}
		return value, nil
	}
	if len(targetKeyMap) == 0 {
		return value, nil
	}

	tgt, err := ds.collections.get(targetSet)
	if err != nil {
		return nil, err
	}
	want, err := ds.keys.FromMap(tgt.set, tgt.acc, targetKeyMap)
	if err != nil {
		return nil, err
	}
	members := reflect.ValueOf(value)
	if members.Kind() != reflect.Slice {
		return nil, errors.NewMetadataError(sourceSet, nav.Name, fmt.Sprintf("to-many navigation holds %T", value))
	}
	for i := 0; i < members.Len(); i++ {
		member := members.Index(i).Interface()
		if isNil(member) {
			continue
		}
		got, _, err := ds.keys.Extract(tgt.set, tgt.acc, member)
		if err != nil {
			return nil, err
		}
		if got.Equal(want) {
			return member, nil
		}
	}
	return nil, errors.NewNotFoundError(targetSet, want.String())
}

// WriteRelation links target to source through the navigation from
// sourceSet to targetSet. Only the source side is written; callers maintain
// back-references with a second call.
func (ds *DataSource) WriteRelation(ctx context.Context, sourceSet string, source any, targetSet string, target any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	src, err := ds.collections.get(sourceSet)
	if err != nil {
		return err
	}
	tgt, err := ds.collections.get(targetSet)
	if err != nil {
		return err
	}
	if err := tgt.acc.Check(target); err != nil {
		return err
	}
	nav, err := ds.reg.NavigationFor(sourceSet, targetSet)
	if err != nil {
		return err
	}
	return src.acc.Attach(source, nav.Name, target)
}

// NewDataObject returns a fresh, unstored instance of set's entity type.
func (ds *DataSource) NewDataObject(set string) (any, error) {
	return ds.reg.NewDataObject(set)
}

// Count returns the number of entities stored in set; 0 for unknown sets.
func (ds *DataSource) Count(set string) int {
	h, ok := ds.collections.peek(set)
	if !ok {
		return 0
	}
	return h.coll.Count()
}

// Describe summarizes the metadata and current state of set.
func (ds *DataSource) Describe(set string) (storagemodels.SetSummary, error) {
	es, err := ds.reg.EntitySet(set)
	if err != nil {
		return storagemodels.SetSummary{}, err
	}
	return storagemodels.SetSummary{
		Name:          es.Name,
		TypeName:      es.TypeName,
		Keys:          es.KeyNames(),
		Generatable:   es.IsGeneratableKey(),
		Count:         ds.Count(set),
		LastGenerated: ds.keys.Counter(es.TypeName).Current(),
	}, nil
}

// Populate creates one entity per row, setting each named property before
// the create. It returns how many rows were stored and the first error.
func (ds *DataSource) Populate(ctx context.Context, set string, rows []map[string]any) (int, error) {
	h, err := ds.collections.get(set)
	if err != nil {
		return 0, err
	}

	stored := 0
	var firstErr error
	for i, row := range rows {
		instance := h.set.New()
		err := func() error {
			for name, value := range row {
				if err := h.acc.Set(instance, name, value); err != nil {
					return err
				}
			}
			return ds.CreateData(ctx, set, instance)
		}()
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("row %d: %w", i, err)
			}
			continue
		}
		stored++
	}
	ds.logger.LogPopulate(ctx, set, len(rows), len(rows)-stored)
	return stored, firstErr
}

// Stream emits a snapshot of set on a channel. The channel is closed after
// the last item or when ctx is done. An unknown set yields a single item
// carrying the error.
func (ds *DataSource) Stream(ctx context.Context, set string, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamItem {
	o := storagemodels.Apply(opts...)

	h, err := ds.collections.get(set)
	var entries []datastore.Entry
	if err == nil {
		entries, err = h.coll.All(ctx)
	}
	if err != nil {
		failed := make(chan storagemodels.StreamItem, 1)
		failed <- storagemodels.StreamItem{Error: err, Meta: storagemodels.StreamMeta{Timestamp: time.Now()}}
		close(failed)
		return failed
	}

	out := make(chan storagemodels.StreamItem, o.BufferSize)
	go func() {
		defer close(out)

		tracker := storagemodels.NewProgressTracker(o, len(entries))
		for i, e := range entries {
			item := storagemodels.StreamItem{
				Item: e.Entity,
				Key:  e.Key,
				Meta: storagemodels.StreamMeta{
					Index:     int64(i),
					Total:     len(entries),
					Timestamp: time.Now(),
				},
			}
			select {
			case <-ctx.Done():
				return
			case out <- item:
			}
			tracker.Add(nil)
		}
		tracker.Finish()
	}()
	return out
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
