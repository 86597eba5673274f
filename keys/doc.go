/*
Package keys computes, compares and generates entity identity.

A Tuple holds the key values of one entity in the order of its set's key
descriptor. The Engine extracts tuples through an accessor, assigns the next
value of a per-type Counter when a single generatable key is missing, and
regenerates the key when a create collides with an existing entity.

	eng := keys.NewEngine()
	t, generated, err := eng.ComputeOrAssign(set, acc, building)
*/
package keys
