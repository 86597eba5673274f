/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/memstore"
	"github.com/suparena/memstore/datastore/testmodels"
	"github.com/suparena/memstore/errors"
	"github.com/suparena/memstore/storagemodels"
)

func TestStream(t *testing.T) {
	ctx := context.Background()
	ds := newDataSource(t)
	setupCampus(t, ds)

	var progress []storagemodels.StreamProgress
	var names []string
	for item := range ds.Stream(ctx, "Rooms",
		storagemodels.WithBufferSize(0),
		storagemodels.WithProgressEvery(4),
		storagemodels.WithProgressHandler(func(p storagemodels.StreamProgress) {
			progress = append(progress, p)
		}),
	) {
		require.NoError(t, item.Error)
		assert.Equal(t, 10, item.Meta.Total)
		names = append(names, item.Item.(*testmodels.Room).Name)
	}

	require.Len(t, names, 10)
	assert.Equal(t, "Room 0", names[0])
	require.Len(t, progress, 3, "after 4, after 8 and at the end")
	assert.Equal(t, int64(10), progress[2].ItemsProcessed)
}

func TestStream_UnknownSet(t *testing.T) {
	var items []storagemodels.StreamItem
	for item := range newDataSource(t).Stream(context.Background(), "Unknown", storagemodels.WithBufferSize(0)) {
		items = append(items, item)
	}
	require.Len(t, items, 1)
	assert.True(t, errors.IsMetadataError(items[0].Error))
}

func TestStream_Cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ds := newDataSource(t)
	setupCampus(t, ds)

	ch := ds.Stream(ctx, "Rooms", storagemodels.WithBufferSize(0))
	<-ch
	<-ch
	cancel()

	// The producer exits once it observes cancellation, closing the channel.
	count := 2
	for range ch {
		count++
	}
	assert.LessOrEqual(t, count, 10)
}

func TestStreamAs(t *testing.T) {
	ctx := context.Background()
	ds := newDataSource(t)
	setupCampus(t, ds)

	var ids []string
	for res := range memstore.StreamAs[testmodels.Room](ctx, ds, "Rooms") {
		require.NoError(t, res.Error)
		ids = append(ids, res.Item.ID)
		assert.Equal(t, res.Item.ID, res.Key.Values()[0])
	}
	assert.Len(t, ids, 10)

	stopped := 0
	for res := range memstore.StreamAs[testmodels.Photo](ctx, ds, "Rooms",
		storagemodels.WithErrorHandler(func(error) bool { return false }),
	) {
		assert.True(t, errors.IsMetadataError(res.Error))
		stopped++
	}
	assert.Equal(t, 1, stopped, "error handler stops the stream")
}

func TestStreamAs_ProgressErrors(t *testing.T) {
	ctx := context.Background()
	ds := newDataSource(t)
	setupCampus(t, ds)

	var progress []storagemodels.StreamProgress
	failed := 0
	for res := range memstore.StreamAs[testmodels.Photo](ctx, ds, "Rooms",
		storagemodels.WithProgressEvery(4),
		storagemodels.WithProgressHandler(func(p storagemodels.StreamProgress) {
			progress = append(progress, p)
		}),
	) {
		if res.Error != nil {
			failed++
		}
	}

	assert.Equal(t, 10, failed)
	require.Len(t, progress, 3, "the typed stream reports once per interval, not twice")
	last := progress[2]
	assert.Equal(t, int64(10), last.ItemsProcessed)
	assert.Equal(t, 10, last.Total)
	require.Len(t, last.Errors, 10)
	assert.True(t, errors.IsMetadataError(last.Errors[0]))
	assert.Len(t, progress[0].Errors, 4, "earlier reports are snapshots")
}

func TestProgressTracker(t *testing.T) {
	var reports []storagemodels.StreamProgress
	opts := storagemodels.Apply(
		storagemodels.WithProgressEvery(2),
		storagemodels.WithProgressHandler(func(p storagemodels.StreamProgress) { reports = append(reports, p) }),
	)

	empty := storagemodels.NewProgressTracker(opts, 0)
	empty.Finish()
	require.Len(t, reports, 1, "an empty stream still reports once")

	reports = nil
	tr := storagemodels.NewProgressTracker(opts, 4)
	tr.Add(nil)
	tr.Add(errors.NewValidationError("x", "bad"))
	tr.Add(nil)
	tr.Add(nil)
	tr.Finish()
	require.Len(t, reports, 2, "no duplicate report when the last item closed an interval")
	assert.Len(t, tr.Progress().Errors, 1)
}
