package scrollsync

import "time"

// DefaultQuietPeriod is the resize debounce window.
const DefaultQuietPeriod = 100 * time.Millisecond

// ResizeReactor collapses bursts of resize events into one invalidation that
// fires after a quiet period. It is driven by the frame clock: Notify records
// an event, Tick fires once the burst has been quiet long enough. The
// trailing rebuild is never dropped: the last event of a burst always leads
// to exactly one callback.
type ResizeReactor struct {
	quiet     time.Duration
	pending   bool
	lastEvent time.Duration
	callbacks []func()
	fired     int
}

// NewResizeReactor creates a reactor with the given quiet period. A
// non-positive period uses DefaultQuietPeriod.
func NewResizeReactor(quiet time.Duration) *ResizeReactor {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &ResizeReactor{quiet: quiet}
}

// QuietPeriod returns the debounce window.
func (r *ResizeReactor) QuietPeriod() time.Duration {
	return r.quiet
}

// OnInvalidate registers a callback run on every debounced invalidation,
// in registration order.
func (r *ResizeReactor) OnInvalidate(cb func()) {
	r.callbacks = append(r.callbacks, cb)
}

// Notify records a resize event at time now, restarting the quiet period.
func (r *ResizeReactor) Notify(now time.Duration) {
	r.pending = true
	r.lastEvent = now
}

// Pending reports whether an invalidation is waiting for its quiet period.
func (r *ResizeReactor) Pending() bool {
	return r.pending
}

// Tick fires the callbacks if an event is pending and at least the quiet
// period has elapsed since the last one. It reports whether it fired.
func (r *ResizeReactor) Tick(now time.Duration) bool {
	if !r.pending || now-r.lastEvent < r.quiet {
		return false
	}
	r.pending = false
	r.fired++
	for _, cb := range r.callbacks {
		cb()
	}
	return true
}

// Flush fires a pending invalidation immediately, ignoring the quiet period.
func (r *ResizeReactor) Flush() bool {
	if !r.pending {
		return false
	}
	return r.Tick(r.lastEvent + r.quiet)
}

// Fired returns how many invalidations have run.
func (r *ResizeReactor) Fired() int {
	return r.fired
}
