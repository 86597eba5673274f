/*
Package memstore provides an in-memory, metadata-driven entity store.

Entity types are plain Go structs described by edm struct tags, or records
declared in a YAML descriptor. The store keeps one collection per entity type,
keyed by the ordered tuple of the type's key properties, and holds the
caller's instances by reference.

Key Features:
  - Caller-supplied or counter-generated keys for single integer and string keys
  - Collision resolution by regeneration, rejection for composite keys
  - Exact-key reads with value conversion ({"Id": 3} matches key "3")
  - Full-replace updates with a distinct target-missing error
  - Navigation reads over already-attached relationships, to-one and to-many
  - Type-safe generic helpers and channel streaming
  - Semantic error types from the errors package

Basic Usage:

	reg := registry.New()
	registry.MustRegister[Building](reg, "Buildings")
	registry.MustRegister[Room](reg, "Rooms")

	ds := memstore.New(reg, memstore.WithLogger(memstore.NewTextLogger(slog.LevelDebug)))

	b := &Building{Name: "Common Building"}
	err := ds.CreateData(ctx, "Buildings", b) // b.ID is now "1"

	got, err := memstore.ReadDataAs[Building](ctx, ds, "Buildings", map[string]any{"Id": 1})

	rooms, err := memstore.ReadRelatedManyAs[Room](ctx, ds, "Buildings", b, "Rooms")
*/
package memstore
