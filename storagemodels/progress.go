/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import "time"

// ProgressTracker accumulates StreamProgress and calls the configured
// handler every ProgressEvery items. It is used by a single producer goroutine.
type ProgressTracker struct {
	every    int64
	handler  func(StreamProgress)
	progress StreamProgress
}

// NewProgressTracker starts tracking a stream of total items.
func NewProgressTracker(opts StreamOptions, total int) *ProgressTracker {
	every := int64(opts.ProgressEvery)
	if every <= 0 {
		every = 1
	}
	return &ProgressTracker{
		every:   every,
		handler: opts.ProgressHandler,
		progress: StreamProgress{
			Total:     total,
			StartTime: time.Now(),
		},
	}
}

// SetTotal updates the size of the snapshot being streamed.
func (t *ProgressTracker) SetTotal(total int) {
	t.progress.Total = total
}

// Add records one emitted item and its error, if any.
func (t *ProgressTracker) Add(err error) {
	t.progress.ItemsProcessed++
	if err != nil {
		t.progress.Errors = append(t.progress.Errors, err)
	}
	if t.progress.ItemsProcessed%t.every == 0 {
		t.report()
	}
}

// Finish reports the final state unless the last Add already did.
func (t *ProgressTracker) Finish() {
	if t.progress.ItemsProcessed == 0 || t.progress.ItemsProcessed%t.every != 0 {
		t.report()
	}
}

// Progress returns a copy of the current state.
func (t *ProgressTracker) Progress() StreamProgress {
	p := t.progress
	p.Errors = append([]error(nil), t.progress.Errors...)
	return p
}

func (t *ProgressTracker) report() {
	if t.handler == nil {
		return
	}
	if elapsed := time.Since(t.progress.StartTime).Seconds(); elapsed > 0 {
		t.progress.CurrentRate = float64(t.progress.ItemsProcessed) / elapsed
	}
	t.handler(t.Progress())
}
