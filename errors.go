package scrollsync

import "errors"

var (
	// ErrInvalidAnchorSet is returned when fewer than two anchors remain
	// after the synthetic start and end points are injected.
	ErrInvalidAnchorSet = errors.New("scrollsync: path needs at least 2 anchors")

	// ErrUnresolvedPosition is returned by Builder.Build when a segment is
	// positioned relative to a label that has not been defined earlier in
	// the timeline.
	ErrUnresolvedPosition = errors.New("scrollsync: unresolved timeline position")

	// ErrNegativeDuration is returned by Builder.Build for segments with a
	// duration below zero.
	ErrNegativeDuration = errors.New("scrollsync: negative segment duration")

	// ErrNilTimeline is returned when a Scrub, Toggle or Gate binding has
	// neither a timeline nor a scrub callback to drive.
	ErrNilTimeline = errors.New("scrollsync: binding has no timeline")

	// ErrNilTrigger is returned when a binding has no trigger node.
	ErrNilTrigger = errors.New("scrollsync: binding has no trigger")

	// ErrDegenerateScrubRange describes a scrub region whose end is not
	// after its start. Bindings recover by holding progress at 0; the value
	// only surfaces in debug logs and Subscription.Err.
	ErrDegenerateScrubRange = errors.New("scrollsync: scrub range end <= start")
)
