/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keys

import "sync/atomic"

// Counter hands out monotonically increasing key values starting at 1.
// Values are never reused, even when the entity that received one is rejected.
type Counter struct {
	last atomic.Int64
}

// Next returns the next value. Concurrent callers never observe the same value.
func (c *Counter) Next() int64 {
	return c.last.Add(1)
}

// Current returns the last value handed out, or 0 if none was.
func (c *Counter) Current() int64 {
	return c.last.Load()
}
