/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

// StreamItem is an untyped stream result, as produced by DataSource.Stream.
type StreamItem = StreamResult[any]

// SetSummary describes the state of one entity set in a data source.
type SetSummary struct {
	// Name is the entity set name.
	Name string `json:"name" yaml:"name"`
	// TypeName is the entity type exposed by the set.
	TypeName string `json:"typeName" yaml:"typeName"`
	// Keys is the ordered key descriptor.
	Keys []string `json:"keys" yaml:"keys"`
	// Generatable is true when missing keys are filled from a counter.
	Generatable bool `json:"generatable" yaml:"generatable"`
	// Count is the number of stored entities.
	Count int `json:"count" yaml:"count"`
	// LastGenerated is the last counter value handed out, 0 if none.
	LastGenerated int64 `json:"lastGenerated" yaml:"lastGenerated"`
}
