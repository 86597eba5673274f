/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memstore

import (
	"context"
	"fmt"

	"github.com/suparena/memstore/errors"
	"github.com/suparena/memstore/storagemodels"
)

// ReadDataAs is ReadData for callers that know the entity type of set.
func ReadDataAs[T any](ctx context.Context, ds *DataSource, set string, keyMap map[string]any) (*T, error) {
	v, err := ds.ReadData(ctx, set, keyMap)
	if err != nil {
		return nil, err
	}
	return as[T](set, v)
}

// ReadAllAs is ReadAll with every entity asserted to *T.
func ReadAllAs[T any](ctx context.Context, ds *DataSource, set string) ([]*T, error) {
	all, err := ds.ReadAll(ctx, set)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(all))
	for _, v := range all {
		item, err := as[T](set, v)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// ReadRelatedManyAs returns the whole to-many navigation from source to targetSet.
func ReadRelatedManyAs[T any](ctx context.Context, ds *DataSource, sourceSet string, source any, targetSet string) ([]*T, error) {
	v, err := ds.ReadRelatedData(ctx, sourceSet, source, targetSet, nil)
	if err != nil {
		return nil, err
	}
	list, ok := v.([]*T)
	if !ok {
		var zero T
		return nil, errors.NewMetadataError(targetSet, "", fmt.Sprintf("expected []*%T, got %T", zero, v))
	}
	return list, nil
}

// ReadRelatedOneAs returns a single related entity: the to-one reference
// when targetKeyMap is empty, otherwise the matching to-many member.
func ReadRelatedOneAs[T any](ctx context.Context, ds *DataSource, sourceSet string, source any, targetSet string, targetKeyMap map[string]any) (*T, error) {
	v, err := ds.ReadRelatedData(ctx, sourceSet, source, targetSet, targetKeyMap)
	if err != nil {
		return nil, err
	}
	return as[T](targetSet, v)
}

// StreamAs is Stream with items asserted to *T. Items of another type are
// delivered with Error set and counted in StreamProgress.Errors; an
// ErrorHandler returning false stops the stream.
func StreamAs[T any](ctx context.Context, ds *DataSource, set string, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[*T] {
	o := storagemodels.Apply(opts...)
	ctx, cancel := context.WithCancel(ctx)
	inner := append(append([]storagemodels.StreamOption(nil), opts...), storagemodels.WithProgressHandler(nil))
	in := ds.Stream(ctx, set, inner...)
	out := make(chan storagemodels.StreamResult[*T], o.BufferSize)

	go func() {
		defer close(out)
		defer cancel()

		tracker := storagemodels.NewProgressTracker(o, 0)
		for item := range in {
			res := storagemodels.StreamResult[*T]{Key: item.Key, Error: item.Error, Meta: item.Meta}
			if res.Error == nil {
				res.Item, res.Error = as[T](set, item.Item)
			}
			select {
			case <-ctx.Done():
				return
			case out <- res:
			}
			tracker.SetTotal(item.Meta.Total)
			tracker.Add(res.Error)
			if res.Error != nil && o.ErrorHandler != nil && !o.ErrorHandler(res.Error) {
				break
			}
		}
		tracker.Finish()
	}()
	return out
}

func as[T any](set string, v any) (*T, error) {
	item, ok := v.(*T)
	if !ok {
		var zero T
		return nil, errors.NewMetadataError(set, "", fmt.Sprintf("expected *%T, got %T", zero, v))
	}
	return item, nil
}
