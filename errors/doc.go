/*
Package errors provides semantic error types for memstore.

The package defines the outcomes an entity store operation can report, each with
a typed error that matches a sentinel through errors.Is:

	var (
	    ErrNotFound      = errors.New("entity not found")
	    ErrAlreadyExists = errors.New("entity already exists")
	    ErrInvalidInput  = errors.New("invalid input")
	    ErrTargetMissing = errors.New("update target missing")
	    ErrMetadata      = errors.New("metadata mismatch")
	)

A read miss is a NotFoundError and callers are expected to branch on it.
An update against an absent key is a TargetMissingError, which does not match
ErrNotFound because it signals caller misuse rather than an empty result.

Usage:

	room, err := ds.ReadData(ctx, "Rooms", map[string]any{"Id": "3"})
	if err != nil {
	    if errors.IsNotFound(err) {
	        // no such room
	    }
	    return err
	}
*/
package errors
