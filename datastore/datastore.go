/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/memstore/keys"
)

// Entry is one stored entity together with the key it was stored under.
type Entry struct {
	Key    keys.Tuple
	Entity any
}

// Collection holds the entities of one entity type keyed by their key tuple.
// Implementations must be safe for concurrent use.
type Collection interface {
	// Get returns the entity stored under key or a NotFoundError.
	Get(ctx context.Context, key keys.Tuple) (any, error)

	// Claim stores entity under key only if key is free. It returns an
	// AlreadyExistsError when another entity holds the key.
	Claim(ctx context.Context, key keys.Tuple, entity any) error

	// Replace swaps the entity stored under key for entity. It returns a
	// TargetMissingError when nothing is stored under key.
	Replace(ctx context.Context, key keys.Tuple, entity any) error

	// All returns every entry in insertion order.
	All(ctx context.Context) ([]Entry, error)

	// Count returns the number of stored entities.
	Count() int
}
