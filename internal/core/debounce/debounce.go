// Package debounce provides a trailing-edge debouncer for a single tracked value.
//
// Current reports the latest value passed to Set. Value reports the settled
// projection, which only catches up once Current has stayed unchanged for the
// full delay.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period used when none is given
const DefaultDelay = 500 * time.Millisecond

// Timer is the cancellable half of *time.Timer
type Timer = interface{ Stop() bool }

// AfterFunc schedules f after d; swapped for a manual clock in tests
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Option configures a Debouncer
type Option[T comparable] func(*Debouncer[T])

// WithAfterFunc overrides the timer scheduler
func WithAfterFunc[T comparable](af AfterFunc) Option[T] {
	return func(d *Debouncer[T]) {
		if af != nil {
			d.after = af
		}
	}
}

// WithOnSettle registers a callback invoked with the value each time it settles
func WithOnSettle[T comparable](fn func(T)) Option[T] {
	return func(d *Debouncer[T]) { d.onSettle = fn }
}

// Debouncer holds one value and its debounced projection
type Debouncer[T comparable] struct {
	mu       sync.Mutex
	delay    time.Duration
	after    AfterFunc
	onSettle func(T)

	current T
	settled T
	timer   Timer
	seq     uint64
	closed  bool
}

// New returns a Debouncer whose current and settled values both start at initial.
// A non-positive delay falls back to DefaultDelay.
func New[T comparable](initial T, delay time.Duration, opts ...Option[T]) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	d := &Debouncer[T]{
		delay:   delay,
		after:   realAfterFunc,
		current: initial,
		settled: initial,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Set records a new raw value and restarts the quiet period.
// Setting the settled value again cancels any pending timer.
func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if v == d.current && (d.timer != nil || v == d.settled) {
		return
	}
	d.current = v
	d.seq++
	d.stopLocked()

	if d.closed || v == d.settled {
		return
	}

	seq := d.seq
	d.timer = d.after(d.delay, func() { d.fire(seq) })
}

func (d *Debouncer[T]) fire(seq uint64) {
	d.mu.Lock()
	if d.closed || seq != d.seq {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.settled = d.current
	v, fn := d.settled, d.onSettle
	d.mu.Unlock()

	if fn != nil {
		fn(v)
	}
}

// Value returns the settled projection
func (d *Debouncer[T]) Value() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.settled
}

// Current returns the latest raw value
func (d *Debouncer[T]) Current() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// Pending reports whether a settle is scheduled
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Flush settles the current value immediately, cancelling any pending timer.
// It reports whether the settled value changed.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	d.seq++
	d.stopLocked()
	if d.closed || d.settled == d.current {
		d.mu.Unlock()
		return false
	}
	d.settled = d.current
	v, fn := d.settled, d.onSettle
	d.mu.Unlock()

	if fn != nil {
		fn(v)
	}
	return true
}

// Close cancels any pending timer; later Set calls only update Current
func (d *Debouncer[T]) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.seq++
	d.stopLocked()
}

func (d *Debouncer[T]) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
