package services

import (
	"time"

	"github.com/custodia-labs/geosearch/internal/core/ports/driven"
)

// debouncer runs only the last of a burst of triggers.
// A generation counter drops timers that fired but were already queued on
// the loop when they were superseded.
type debouncer struct {
	scheduler driven.Scheduler
	pending   driven.Timer
	gen       uint64
}

func newDebouncer(scheduler driven.Scheduler) *debouncer {
	return &debouncer{scheduler: scheduler}
}

// Trigger cancels any pending call and schedules fn after delay.
func (d *debouncer) Trigger(delay time.Duration, fn func()) {
	d.Cancel()
	gen := d.gen
	d.pending = d.scheduler.AfterFunc(delay, func() {
		if gen != d.gen {
			return
		}
		d.pending = nil
		fn()
	})
}

// Cancel drops the pending call, if any.
func (d *debouncer) Cancel() {
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
	d.gen++
}

// Pending reports whether a call is scheduled.
func (d *debouncer) Pending() bool {
	return d.pending != nil
}
