/*
Package datastore defines the per-type storage contract of memstore.

A Collection maps key tuples to entity instances of one type:

	type Collection interface {
	    Get(ctx context.Context, key keys.Tuple) (any, error)
	    Claim(ctx context.Context, key keys.Tuple, entity any) error
	    Replace(ctx context.Context, key keys.Tuple, entity any) error
	    All(ctx context.Context) ([]Entry, error)
	    Count() int
	}

Claim is the reserve-or-fail primitive create relies on: the test for a free
slot and the insert happen under one lock, so two concurrent creators with the
same key never both succeed.

Implementations:
  - memory: map-backed collection guarded by a sync.RWMutex
  - testmodels: entity types shared by tests (not a collection)
*/
package datastore
