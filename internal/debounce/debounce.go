// Package debounce collapses bursts of calls into a single delayed call.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delays invoking fn until no new Call has arrived for delay.
// Only the arguments of the latest Call are delivered.
type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func(T)
	timer   *time.Timer
	gen     uint64 // bumped on every Call/Cancel; a timer only fires if its gen is current
	stopped bool
}

// New creates a debouncer that calls fn after delay of inactivity.
func New[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{
		delay: delay,
		fn:    fn,
	}
}

// Delay returns the configured quiet period.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Call cancels any pending invocation and schedules a new one with v.
// Calls after Stop are ignored.
func (d *Debouncer[T]) Call(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.cancelLocked()
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(gen, v)
	})
}

// Cancel drops the pending invocation, if any.
// Returns true if an invocation was pending.
func (d *Debouncer[T]) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancelLocked()
}

// Stop cancels the pending invocation and disables the debouncer.
// Safe to call multiple times.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}

// Pending reports whether an invocation is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer[T]) cancelLocked() bool {
	d.gen++
	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	return true
}

func (d *Debouncer[T]) fire(gen uint64, v T) {
	d.mu.Lock()
	// A superseded timer may still fire if Stop raced with expiry.
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn(v)
}
