/*
Package storagemodels defines the data structures shared by memstore's read paths.

StreamResult:
Results from streaming operations with metadata:

	type StreamResult[T any] struct {
	    Item  T          // The stored entity
	    Key   keys.Tuple // Key the entity is stored under
	    Error error      // Item-specific error, if any
	    Meta  StreamMeta // Metadata about this item
	}

StreamOptions:
Configuration for streaming behavior:

	opts := []StreamOption{
	    WithBufferSize(100),
	    WithProgressEvery(50),
	    WithProgressHandler(progressFunc),
	}

ProgressTracker:
Counts emitted items and per-item errors and calls the ProgressHandler every
ProgressEvery items, plus once at the end of the stream.

SetSummary:
A per-set snapshot (key descriptor, entity count, last generated key) used by
DataSource.Describe and the memstore CLI.
*/
package storagemodels
